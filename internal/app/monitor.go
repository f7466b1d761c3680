package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/sigscope/sigscope/internal/logging"
	"github.com/sigscope/sigscope/internal/sink"
	"github.com/sigscope/sigscope/pkg/acquisition"
	"github.com/sigscope/sigscope/pkg/dsp"
)

// RunMonitor runs continuous acquisition alongside the consumer loop until
// ctx is cancelled or the pipeline hits a fatal error. The two loops share
// nothing but the single-slot handoff, so a slow console or broker never
// stalls the device.
func (a *App) RunMonitor(ctx context.Context) error {
	pipe, err := a.openPipeline()
	if err != nil {
		return err
	}
	defer pipe.Close()

	sinks, err := a.buildSinks()
	if err != nil {
		return err
	}
	defer func() {
		for _, s := range sinks {
			s.Close()
		}
	}()

	handoff := acquisition.NewHandoff[*dsp.Spectrum]()
	loop := acquisition.NewLoop(pipe.framer, pipe.transformer, handoff, a.logger)
	cons := &consumer{
		in:      handoff,
		sinks:   sinks,
		refresh: a.config.Display.RefreshInterval,
		logger:  a.logger,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(gctx) })
	g.Go(func() error { return cons.run(gctx) })

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// buildSinks assembles the consumer-side outputs: the console readout and,
// when a broker is configured, the MQTT publisher.
func (a *App) buildSinks() ([]sink.Sink, error) {
	var sinks []sink.Sink

	if !a.ctx.Quiet {
		sinks = append(sinks, sink.NewConsoleSink(os.Stdout, a.config.Display.ShowGraph, a.config.Display.GraphWidth))
	}

	if a.config.MQTT.Broker != "" {
		mq, err := sink.NewMQTTSink(sink.MQTTConfig{
			Broker:   a.config.MQTT.Broker,
			ClientID: a.config.MQTT.ClientID,
			Topic:    a.config.MQTT.Topic,
			Username: a.config.MQTT.Username,
			Password: a.config.MQTT.Password,
			QOS:      byte(a.config.MQTT.QOS),
		}, a.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to set up MQTT sink: %w", err)
		}
		sinks = append(sinks, mq)
	}

	if len(sinks) == 0 {
		a.logger.Warn("no sinks configured, spectra will be dropped", logging.Fields{})
	}
	return sinks, nil
}
