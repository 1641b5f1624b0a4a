package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/ledremote/internal/broker"
	"github.com/dokzlo13/ledremote/internal/config"
	"github.com/dokzlo13/ledremote/internal/eventbus"
)

// MQTTService feeds remote input from MQTT topics and publishes the strip state.
type MQTTService struct {
	cfg       config.MQTTConfig
	Client    *broker.Client
	publisher *broker.StatePublisher
}

// NewMQTTService creates the client, registers the input topics and, when
// enabled, the state publisher. Nothing is sent before Start.
func NewMQTTService(cfg config.MQTTConfig, bus *eventbus.Bus, inputs broker.Inputs) (*MQTTService, error) {
	client := broker.NewClient(broker.Options{
		Broker:         cfg.Broker,
		User:           cfg.User,
		Password:       cfg.Password,
		ClientID:       cfg.ClientID,
		TopicPrefix:    cfg.TopicPrefix,
		ConnectTimeout: cfg.ConnectTimeout.Duration(),
	})
	if err := broker.SubscribeInputs(client, cfg.TopicPrefix, inputs); err != nil {
		return nil, err
	}

	s := &MQTTService{cfg: cfg, Client: client}
	if cfg.PublishState {
		s.publisher = broker.NewStatePublisher(client, cfg.TopicPrefix, cfg.StateRateLimit)
		s.publisher.Subscribe(bus)
	}
	return s, nil
}

// Start connects to the broker. A failed first connection is logged and
// left to the client's reconnect logic.
func (s *MQTTService) Start(ctx context.Context) {
	if err := s.Client.Connect(ctx); err != nil {
		log.Warn().Err(err).Str("broker", s.cfg.Broker).Msg("MQTT not connected yet, retrying in background")
	}
	if s.publisher != nil {
		go s.publisher.Run(ctx)
	}
}

// Ready reports whether the broker connection is up.
func (s *MQTTService) Ready() bool {
	return s.Client.IsConnected()
}

// Close disconnects from the broker.
func (s *MQTTService) Close() {
	s.Client.Close()
}
