package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/sigscope/sigscope/pkg/dsp"
)

// Config represents the application configuration.
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Serial transport configuration
	Serial SerialConfig `mapstructure:"serial"`

	// Acquisition and transform configuration
	Acquisition AcquisitionConfig `mapstructure:"acquisition"`

	// Consumer/display configuration
	Display DisplayConfig `mapstructure:"display"`

	// Optional MQTT publishing
	MQTT MQTTConfig `mapstructure:"mqtt"`
}

// SerialConfig contains serial device settings. The device is a USB CDC
// endpoint on both sides, so the baud rate is nominal but must be set.
type SerialConfig struct {
	Port        string        `mapstructure:"port"`
	BaudRate    int           `mapstructure:"baud_rate"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
}

// AcquisitionConfig contains frame and transform settings.
type AcquisitionConfig struct {
	FFTSize    int     `mapstructure:"fft_size"`
	SampleRate float64 `mapstructure:"sample_rate"`
	Window     string  `mapstructure:"window"`
}

// DisplayConfig contains consumer loop settings.
type DisplayConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	ShowGraph       bool          `mapstructure:"show_graph"`
	GraphWidth      int           `mapstructure:"graph_width"`
}

// MQTTConfig contains optional broker settings. An empty broker disables
// the MQTT sink entirely.
type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`
	ClientID string `mapstructure:"client_id"`
	Topic    string `mapstructure:"topic"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	QOS      int    `mapstructure:"qos"`
}

// LoadConfig loads the application configuration from viper.
func LoadConfig() (*Config, error) {
	v := viper.GetViper()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Serial.BaudRate <= 0 {
		return fmt.Errorf("serial.baud_rate must be positive, got %d", c.Serial.BaudRate)
	}
	if c.Serial.ReadTimeout <= 0 {
		return fmt.Errorf("serial.read_timeout must be positive, got %v", c.Serial.ReadTimeout)
	}
	if c.Acquisition.FFTSize <= 0 || c.Acquisition.FFTSize&(c.Acquisition.FFTSize-1) != 0 {
		return fmt.Errorf("acquisition.fft_size must be a positive power of two, got %d", c.Acquisition.FFTSize)
	}
	if c.Acquisition.SampleRate <= 0 {
		return fmt.Errorf("acquisition.sample_rate must be positive, got %v", c.Acquisition.SampleRate)
	}
	if _, err := dsp.WindowByName(c.Acquisition.Window); err != nil {
		return fmt.Errorf("invalid acquisition.window: %w", err)
	}
	if c.Display.RefreshInterval <= 0 {
		return fmt.Errorf("display.refresh_interval must be positive, got %v", c.Display.RefreshInterval)
	}
	if c.MQTT.Broker != "" && c.MQTT.Topic == "" {
		return fmt.Errorf("mqtt.topic is required when mqtt.broker is set")
	}
	if c.MQTT.QOS < 0 || c.MQTT.QOS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1, or 2, got %d", c.MQTT.QOS)
	}
	return nil
}
