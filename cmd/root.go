package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configFile   string
	portPath     string
	baudRate     int
	verbose      bool
	quiet        bool
	logLevel     string
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sigscope",
	Short: "Serial ADC spectrum monitor",
	Long: `sigscope acquires streaming ADC samples from an external device over a
serial link, transforms each frame into a real FFT spectrum, and renders
the result for live diagnosis.

Key features:
- Delimiter-framed acquisition over a raw serial byte stream
- Pipelined capture triggering to hide device-side latency
- DC-bias removal and real-input FFT with selectable analysis windows
- Most-recent-value handoff between acquisition and rendering
- Spectrum snapshots in json, yaml, csv, or table form
- Optional MQTT publishing of per-frame spectrum summaries`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, viper.GetViper())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/sigscope/sigscope.yaml)")

	rootCmd.PersistentFlags().StringVarP(&portPath, "port", "p", "",
		"serial device path (e.g. /dev/ttyACM0)")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 0,
		"serial baud rate (nominal for USB CDC devices)")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress console output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"output format (json, yaml, csv, table)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("output_format", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("serial.port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("serial.baud_rate", rootCmd.PersistentFlags().Lookup("baud"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if configFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(filepath.Join(home, ".config", "sigscope"))
		viper.AddConfigPath("/etc/sigscope")
		viper.AddConfigPath("./configs")
		viper.SetConfigName("sigscope")
		viper.SetConfigType("yaml")
	}

	// Environment variable support
	viper.SetEnvPrefix("SIGSCOPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}
}

// bindFlags binds each cobra flag to its associated viper configuration
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				lastErr = err
			}
		}

		if err := v.BindPFlag(f.Name, f); err != nil {
			lastErr = err
		}

		if err := v.BindEnv(f.Name, "SIGSCOPE_"+envVarSuffix); err != nil {
			lastErr = err
		}
	})

	return lastErr
}
