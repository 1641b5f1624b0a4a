package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/ledremote/internal/config"
	"github.com/dokzlo13/ledremote/internal/eventbus"
	"github.com/dokzlo13/ledremote/internal/webhook"
)

// WebhookService wraps the code injection HTTP server.
type WebhookService struct {
	cfg    *config.Config
	server *webhook.Server
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(cfg *config.Config, bus *eventbus.Bus, sinks webhook.Sinks) *WebhookService {
	server := webhook.NewServer(cfg.Webhook.Host, cfg.Webhook.Port, sinks)
	server.Subscribe(bus)
	return &WebhookService{
		cfg:    cfg,
		server: server,
	}
}

// Start begins the webhook server.
func (s *WebhookService) Start(ctx context.Context) {
	go func() {
		if err := s.server.Run(ctx, s.cfg.ShutdownTimeout.Duration()); err != nil {
			log.Error().Err(err).Msg("Webhook server error")
		}
	}()
}
