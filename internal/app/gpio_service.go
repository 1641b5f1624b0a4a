package app

import (
	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/ledremote/internal/config"
	"github.com/dokzlo13/ledremote/internal/gpio"
)

// GPIOService owns the local push buttons.
type GPIOService struct {
	cfg     config.GPIOConfig
	presser gpio.Presser
	buttons *gpio.Buttons
}

// NewGPIOService creates a new GPIOService.
func NewGPIOService(cfg config.GPIOConfig, presser gpio.Presser) *GPIOService {
	return &GPIOService{cfg: cfg, presser: presser}
}

// Start requests the button lines. Presses are delivered from gpiocdev's
// event goroutine straight into the presser.
func (s *GPIOService) Start() error {
	buttons := make([]gpio.Button, 0, len(s.cfg.Buttons))
	for _, b := range s.cfg.Buttons {
		buttons = append(buttons, gpio.Button{
			Name:     b.Name,
			Pin:      b.Pin,
			ID:       b.Button,
			PullUp:   b.PullUp,
			Inverted: b.Inverted,
		})
	}
	opened, err := gpio.Open(s.cfg.Chip, buttons, s.cfg.Debounce.Duration(), s.presser)
	if err != nil {
		return err
	}
	s.buttons = opened
	return nil
}

// Close releases the lines.
func (s *GPIOService) Close() {
	if s.buttons == nil {
		return
	}
	if err := s.buttons.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to release GPIO lines")
	}
}
