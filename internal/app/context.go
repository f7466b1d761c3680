package app

import (
	"fmt"

	"github.com/sigscope/sigscope/configs"
	"github.com/sigscope/sigscope/internal/logging"
	"github.com/sigscope/sigscope/pkg/acquisition"
	"github.com/sigscope/sigscope/pkg/dsp"
	"github.com/sigscope/sigscope/pkg/serialio"
)

// Context holds the application context and CLI overrides.
type Context struct {
	// CLI arguments
	Port         string
	BaudRate     int
	OutputFormat string
	Verbose      bool
	Quiet        bool

	// Runtime context
	Logger logging.Logger
	Config *configs.Config
}

// App wires the acquisition pipeline together for the CLI commands.
type App struct {
	ctx    *Context
	config *configs.Config
	logger logging.Logger
}

// NewApp loads configuration, applies CLI overrides, and prepares the
// application.
func NewApp(ctx *Context) (*App, error) {
	logger := setupLogging(ctx)
	ctx.Logger = logger

	config, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if ctx.Port != "" {
		config.Serial.Port = ctx.Port
	}
	if ctx.BaudRate > 0 {
		config.Serial.BaudRate = ctx.BaudRate
	}
	if ctx.OutputFormat != "" {
		config.OutputFormat = ctx.OutputFormat
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if config.Serial.Port == "" {
		return nil, fmt.Errorf("no serial port configured: set --port or serial.port")
	}
	ctx.Config = config

	logger.Debug("application initialized", logging.Fields{
		"port":        config.Serial.Port,
		"baud_rate":   config.Serial.BaudRate,
		"fft_size":    config.Acquisition.FFTSize,
		"sample_rate": config.Acquisition.SampleRate,
		"window":      config.Acquisition.Window,
	})

	return &App{
		ctx:    ctx,
		config: config,
		logger: logger,
	}, nil
}

// setupLogging configures logging based on context.
func setupLogging(ctx *Context) logging.Logger {
	level := "info"
	if ctx.Verbose {
		level = "debug"
	} else if ctx.Quiet {
		level = "error"
	}
	return logging.NewLogger(level)
}

// pipeline bundles the live pipeline pieces behind one Close.
type pipeline struct {
	port        *serialio.Port
	framer      *acquisition.Framer
	transformer *dsp.Transformer
}

func (p *pipeline) Close() error {
	return p.port.Close()
}

// openPipeline opens the serial device and builds the framer and
// transformer from configuration.
func (a *App) openPipeline() (*pipeline, error) {
	win, err := dsp.WindowByName(a.config.Acquisition.Window)
	if err != nil {
		return nil, err
	}

	transformer, err := dsp.NewTransformer(a.config.Acquisition.FFTSize, a.config.Acquisition.SampleRate, win)
	if err != nil {
		return nil, err
	}

	port, err := serialio.Open(serialio.PortConfig{
		Path:        a.config.Serial.Port,
		BaudRate:    a.config.Serial.BaudRate,
		ReadTimeout: a.config.Serial.ReadTimeout,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info("serial port opened", logging.Fields{
		"port":      a.config.Serial.Port,
		"baud_rate": a.config.Serial.BaudRate,
	})

	return &pipeline{
		port:        port,
		framer:      acquisition.NewFramer(port, a.logger),
		transformer: transformer,
	}, nil
}
