package configs

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		LogLevel:     "info",
		OutputFormat: "table",
		Serial: SerialConfig{
			Port:        "/dev/ttyACM0",
			BaudRate:    3686400,
			ReadTimeout: 8192 * time.Second,
		},
		Acquisition: AcquisitionConfig{
			FFTSize:    8192,
			SampleRate: 96000,
			Window:     "rectangular",
		},
		Display: DisplayConfig{
			RefreshInterval: 100 * time.Millisecond,
			GraphWidth:      64,
		},
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8192, cfg.Acquisition.FFTSize)
	assert.Equal(t, 96000.0, cfg.Acquisition.SampleRate)
	assert.Equal(t, "rectangular", cfg.Acquisition.Window)
	assert.Equal(t, 3686400, cfg.Serial.BaudRate)
	assert.Equal(t, 8192*time.Second, cfg.Serial.ReadTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Display.RefreshInterval)
	assert.Empty(t, cfg.MQTT.Broker)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero baud rate", func(c *Config) { c.Serial.BaudRate = 0 }},
		{"negative read timeout", func(c *Config) { c.Serial.ReadTimeout = -time.Second }},
		{"non power of two fft size", func(c *Config) { c.Acquisition.FFTSize = 6000 }},
		{"zero fft size", func(c *Config) { c.Acquisition.FFTSize = 0 }},
		{"zero sample rate", func(c *Config) { c.Acquisition.SampleRate = 0 }},
		{"unknown window", func(c *Config) { c.Acquisition.Window = "kaiser" }},
		{"zero refresh interval", func(c *Config) { c.Display.RefreshInterval = 0 }},
		{"broker without topic", func(c *Config) { c.MQTT.Broker = "tcp://broker:1883"; c.MQTT.Topic = "" }},
		{"invalid qos", func(c *Config) { c.MQTT.QOS = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
