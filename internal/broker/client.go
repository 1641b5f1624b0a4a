// Package broker connects ledremote to an MQTT broker. Remote codes and
// ESP-NOW packets forwarded by gateways arrive on subscriptions, and
// state-updated notifications are published back.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// Publisher publishes MQTT messages.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) error
}

// Options configures a Client.
type Options struct {
	Broker         string
	User           string
	Password       string
	ClientID       string
	TopicPrefix    string
	ConnectTimeout time.Duration
}

// Client wraps a paho client with the topic layout used by ledremote.
type Client struct {
	client mqtt.Client
	prefix string
	opts   Options

	subs []subscription
}

type subscription struct {
	topic   string
	qos     byte
	handler mqtt.MessageHandler
}

// NewClient creates a client. Subscriptions registered before Connect are
// restored on every reconnect.
func NewClient(opts Options) *Client {
	c := &Client{prefix: opts.TopicPrefix, opts: opts}

	mo := mqtt.NewClientOptions()
	mo.AddBroker(opts.Broker)
	mo.SetUsername(opts.User)
	mo.SetPassword(opts.Password)
	mo.SetClientID(opts.ClientID)
	mo.SetAutoReconnect(true)
	mo.SetConnectRetry(true)
	mo.SetConnectRetryInterval(5 * time.Second)
	mo.SetCleanSession(true)
	mo.SetWill(c.AvailabilityTopic(), "offline", 0, true)
	mo.SetOnConnectHandler(c.onConnect)
	mo.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("MQTT connection lost")
	})

	c.client = mqtt.NewClient(mo)
	return c
}

// Connect connects to the broker, waiting at most ConnectTimeout.
func (c *Client) Connect(ctx context.Context) error {
	token := c.client.Connect()
	timeout := c.opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	select {
	case <-token.Done():
	case <-time.After(timeout):
		return fmt.Errorf("MQTT connection to %s timed out", c.opts.Broker)
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("MQTT connection failed: %w", err)
	}
	return nil
}

func (c *Client) onConnect(client mqtt.Client) {
	log.Info().Str("broker", c.opts.Broker).Msg("Connected to MQTT")
	client.Publish(c.AvailabilityTopic(), 0, true, "online")

	for _, s := range c.subs {
		token := client.Subscribe(s.topic, s.qos, s.handler)
		token.Wait()
		if err := token.Error(); err != nil {
			log.Error().Err(err).Str("topic", s.topic).Msg("MQTT subscribe failed")
			continue
		}
		log.Debug().Str("topic", s.topic).Msg("MQTT subscribed")
	}
}

// Subscribe registers a handler. It takes effect on the next (re)connect and
// immediately if the client is already connected.
func (c *Client) Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error {
	c.subs = append(c.subs, subscription{topic: topic, qos: qos, handler: handler})
	if !c.client.IsConnected() {
		return nil
	}
	token := c.client.Subscribe(topic, qos, handler)
	token.Wait()
	return token.Error()
}

// Publish implements Publisher. Payloads that are neither string nor
// []byte are encoded as JSON.
func (c *Client) Publish(topic string, qos byte, retained bool, payload interface{}) error {
	data, err := encodePayload(payload)
	if err != nil {
		return err
	}
	token := c.client.Publish(topic, qos, retained, data)
	token.Wait()
	return token.Error()
}

func encodePayload(payload interface{}) ([]byte, error) {
	switch v := payload.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		return data, nil
	}
}

// IsConnected reports whether the client is connected.
func (c *Client) IsConnected() bool {
	return c.client.IsConnected()
}

// TopicPrefix returns the configured topic prefix.
func (c *Client) TopicPrefix() string {
	return c.prefix
}

// AvailabilityTopic is where "online" and "offline" are published.
func (c *Client) AvailabilityTopic() string {
	return fmt.Sprintf("%s/status", c.prefix)
}

// Close publishes "offline" and disconnects.
func (c *Client) Close() {
	if !c.client.IsConnected() {
		return
	}
	token := c.client.Publish(c.AvailabilityTopic(), 0, true, "offline")
	token.WaitTimeout(time.Second)
	c.client.Disconnect(250)
}
