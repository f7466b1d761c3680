package sink

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/sigscope/sigscope/internal/logging"
)

// MQTTConfig holds the broker connection settings for the MQTT sink.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Topic    string
	Username string
	Password string
	QOS      byte
}

// MQTTSink publishes spectrum summaries as JSON to an MQTT topic so other
// bench instruments can follow the device remotely. Publish failures are
// reported to the caller but are expected to be treated as non-fatal;
// acquisition must not stop because the broker went away.
type MQTTSink struct {
	client mqtt.Client
	topic  string
	qos    byte
	logger logging.Logger
}

// NewMQTTSink connects to the broker and returns a ready sink.
func NewMQTTSink(cfg MQTTConfig, logger logging.Logger) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", logging.Fields{"error": err.Error()})
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", cfg.Broker, token.Error())
	}

	logger.Info("connected to MQTT broker", logging.Fields{
		"broker": cfg.Broker,
		"topic":  cfg.Topic,
	})

	return &MQTTSink{
		client: client,
		topic:  cfg.Topic,
		qos:    cfg.QOS,
		logger: logger,
	}, nil
}

func (m *MQTTSink) Publish(s *Summary) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode spectrum summary: %w", err)
	}
	token := m.client.Publish(m.topic, m.qos, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to publish to %s: %w", m.topic, token.Error())
	}
	return nil
}

func (m *MQTTSink) Close() error {
	m.client.Disconnect(250)
	return nil
}
