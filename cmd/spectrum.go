package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sigscope/sigscope/internal/app"
	"github.com/sigscope/sigscope/internal/output"
)

var (
	spectrumFrames     int
	spectrumWindow     string
	spectrumOutputFile string
)

// spectrumCmd represents the spectrum command
var spectrumCmd = &cobra.Command{
	Use:   "spectrum",
	Short: "Capture frames and emit one spectrum snapshot",
	Long: `Capture a fixed number of frames from the device and emit the last one as
a full per-bin snapshot (frequency, magnitude, dBFS).

Capturing more than one frame gives the analog front end time to settle
after the initial trigger; only the final frame is reported.

Examples:
  # One settled snapshot as an aligned table
  sigscope spectrum --port /dev/ttyACM0 --frames 4

  # Snapshot as JSON written to a file
  sigscope spectrum --port /dev/ttyACM0 --output json --output-file spectrum.json

  # CSV suitable for a plotting tool
  sigscope spectrum --port /dev/ttyACM0 --output csv > spectrum.csv`,
	RunE: runSpectrum,
}

func init() {
	rootCmd.AddCommand(spectrumCmd)

	spectrumCmd.Flags().IntVar(&spectrumFrames, "frames", 2,
		"number of frames to capture (last one is reported)")
	spectrumCmd.Flags().StringVar(&spectrumWindow, "window", "",
		"analysis window (rectangular, hann, hamming, blackman, blackmanharris, flattop)")
	spectrumCmd.Flags().StringVar(&spectrumOutputFile, "output-file", "",
		"write the snapshot to a file instead of stdout")

	viper.BindPFlag("acquisition.window", spectrumCmd.Flags().Lookup("window"))
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	appCtx := &app.Context{
		Port:         portPath,
		BaudRate:     baudRate,
		OutputFormat: outputFormat,
		Verbose:      verbose,
		Quiet:        quiet,
	}

	application, err := app.NewApp(appCtx)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snapshot, err := application.CaptureSnapshot(ctx, spectrumFrames)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(appCtx.Config.OutputFormat)
	if err != nil {
		return err
	}
	data, err := formatter.Format(snapshot)
	if err != nil {
		return fmt.Errorf("failed to format snapshot: %w", err)
	}

	if spectrumOutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(spectrumOutputFile), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		return os.WriteFile(spectrumOutputFile, data, 0644)
	}

	_, err = os.Stdout.Write(data)
	return err
}
