package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sigscope/sigscope/internal/app"
)

var frameTestCount int

// frameTestCmd represents the frame-test command
var frameTestCmd = &cobra.Command{
	Use:   "frame-test",
	Short: "Test the device framing protocol without running the FFT",
	Long: `Read raw frames from the device and report payload and parse statistics.

This command exercises only the wire protocol: trigger, delimiter framing,
and sample parsing. Parse failures are reported per frame instead of
aborting, which makes it the first stop when a device streams garbage.

Examples:
  # Inspect ten frames
  sigscope frame-test --port /dev/ttyACM0 --frames 10

  # Verbose protocol logging for a single frame
  sigscope frame-test --port /dev/ttyACM0 --frames 1 --verbose`,
	RunE: runFrameTest,
}

func init() {
	rootCmd.AddCommand(frameTestCmd)

	frameTestCmd.Flags().IntVar(&frameTestCount, "frames", 5,
		"number of frames to inspect")
}

func runFrameTest(cmd *cobra.Command, args []string) error {
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

	reports, err := application.InspectFrames(ctx, frameTestCount)
	if len(reports) > 0 {
		printFrameReports(reports)
	}
	return err
}

func printFrameReports(reports []app.FrameReport) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tBYTES\tSAMPLES\tMIN\tMAX\tMEAN\tSTATUS")
	for _, r := range reports {
		status := "ok"
		if r.ParseError != "" {
			status = r.ParseError
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%.1f\t%s\n",
			r.Index, r.PayloadBytes, r.Samples, r.Min, r.Max, r.Mean, status)
	}
	w.Flush()
}
