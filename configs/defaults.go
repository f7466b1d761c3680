package configs

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets default configuration values for all components.
func setDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", "table")

	// Serial defaults. The device enumerates as USB CDC, so the baud rate
	// is nominal; the read timeout stands in for a missing keepalive and
	// is set high enough that it never fires under normal device cadence.
	// The POSIX driver waits in slices of at most 25.5s, so serialio
	// re-arms reads until this full budget has elapsed.
	v.SetDefault("serial.baud_rate", 3686400)
	v.SetDefault("serial.read_timeout", 8192*time.Second)

	// Acquisition defaults: one frame is 8192 samples at 96 kHz from a
	// 12-bit ADC. Rectangular window preserves the raw capture.
	v.SetDefault("acquisition.fft_size", 8192)
	v.SetDefault("acquisition.sample_rate", 96000)
	v.SetDefault("acquisition.window", "rectangular")

	// Display defaults
	v.SetDefault("display.refresh_interval", 100*time.Millisecond)
	v.SetDefault("display.show_graph", false)
	v.SetDefault("display.graph_width", 64)

	// MQTT defaults (disabled until a broker is configured)
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "sigscope")
	v.SetDefault("mqtt.topic", "sigscope/spectrum")
	v.SetDefault("mqtt.qos", 0)
}
