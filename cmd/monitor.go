package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sigscope/sigscope/internal/app"
)

var (
	monitorRefresh time.Duration
	monitorWindow  string
	monitorGraph   bool
	monitorBroker  string
	monitorTopic   string
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Continuously acquire frames and render live spectra",
	Long: `Run the continuous acquisition loop against the device and render each
spectrum as it arrives.

Acquisition and rendering run on independent loops joined by a single-slot,
most-recent-value handoff: the renderer always shows the freshest spectrum
and a slow terminal or broker never backpressures the device.

Examples:
  # Monitor the default device with a live readout
  sigscope monitor --port /dev/ttyACM0

  # Render a coarse ASCII spectrum with a Hann analysis window
  sigscope monitor --port /dev/ttyACM0 --graph --window hann

  # Publish spectrum summaries to an MQTT broker as well
  sigscope monitor --port /dev/ttyACM0 --mqtt-broker tcp://broker:1883 --mqtt-topic lab/spectrum`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().DurationVar(&monitorRefresh, "refresh", 100*time.Millisecond,
		"consumer refresh interval")
	monitorCmd.Flags().StringVar(&monitorWindow, "window", "",
		"analysis window (rectangular, hann, hamming, blackman, blackmanharris, flattop)")
	monitorCmd.Flags().BoolVar(&monitorGraph, "graph", false,
		"render a coarse ASCII spectrum under each readout")
	monitorCmd.Flags().StringVar(&monitorBroker, "mqtt-broker", "",
		"MQTT broker URL for publishing spectrum summaries")
	monitorCmd.Flags().StringVar(&monitorTopic, "mqtt-topic", "",
		"MQTT topic for spectrum summaries")

	viper.BindPFlag("display.refresh_interval", monitorCmd.Flags().Lookup("refresh"))
	viper.BindPFlag("display.show_graph", monitorCmd.Flags().Lookup("graph"))
	viper.BindPFlag("acquisition.window", monitorCmd.Flags().Lookup("window"))
	viper.BindPFlag("mqtt.broker", monitorCmd.Flags().Lookup("mqtt-broker"))
	viper.BindPFlag("mqtt.topic", monitorCmd.Flags().Lookup("mqtt-topic"))
}

func runMonitor(cmd *cobra.Command, args []string) error {
	appCtx := &app.Context{
		Port:     portPath,
		BaudRate: baudRate,
		Verbose:  verbose,
		Quiet:    quiet,
	}

	application, err := app.NewApp(appCtx)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return application.RunMonitor(ctx)
}
