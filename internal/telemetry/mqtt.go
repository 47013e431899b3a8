package telemetry

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// DefaultTopic is the MQTT topic for telemetry records.
const DefaultTopic = "blinkband/telemetry"

// MQTTSender publishes records to an MQTT broker, for deployments where the
// collector subscribes instead of running an HTTP ingest endpoint.
type MQTTSender struct {
	client paho.Client
	topic  string
}

// NewMQTTSender creates a sender connected to the given broker.
func NewMQTTSender(broker, topic string) (*MQTTSender, error) {
	if topic == "" {
		topic = DefaultTopic
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("blinkband").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &MQTTSender{
		client: client,
		topic:  topic,
	}, nil
}

// Send publishes the record. MQTT has no per-message status code, so a
// successful publish reports 200.
func (p *MQTTSender) Send(rec Record) (SendResult, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return SendResult{}, fmt.Errorf("marshal record: %w", err)
	}

	// QoS 0 (at-most-once): the next cycle supersedes a lost record anyway.
	token := p.client.Publish(p.topic, 0, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return SendResult{}, fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return SendResult{}, fmt.Errorf("publish: %w", err)
	}

	return SendResult{Status: http.StatusOK}, nil
}

// Close disconnects from the broker.
func (p *MQTTSender) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
