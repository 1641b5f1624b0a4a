package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/ledremote/internal/config"
)

// App runs the remote daemon: it builds the strip and its inputs from the
// config, starts the main loop and tears everything down on shutdown.
type App struct {
	cfg      *config.Config
	services *Services
	ctx      context.Context
	cancel   context.CancelFunc
}

// New builds the strip, inputs and outputs described by cfg. Nothing runs
// until Start.
func New(cfg *config.Config) (*App, error) {
	services, err := NewServices(cfg)
	if err != nil {
		return nil, err
	}
	return &App{cfg: cfg, services: services}, nil
}

// Start starts the outputs, then the inputs' main loop. ctx cancels both.
func (a *App) Start(ctx context.Context) error {
	a.ctx, a.cancel = context.WithCancel(ctx)

	if err := a.services.Start(a.ctx); err != nil {
		a.cancel()
		return err
	}

	log.Info().
		Str("remote", a.services.Decoder.Remote().String()).
		Strs("inputs", a.services.Inputs()).
		Int("segments", a.services.Strip.SegmentCount()).
		Msg("ledremote started")
	return nil
}

// Stop cancels the main loop and waits for it before closing storage and
// connections.
func (a *App) Stop() error {
	log.Info().Msg("Shutting down...")
	if a.cancel != nil {
		a.cancel()
	}
	if a.services == nil {
		return nil
	}
	return a.services.Stop()
}

// Wait blocks until a shutdown signal or a fatal error cancels the app.
func (a *App) Wait() {
	if a.ctx != nil {
		<-a.ctx.Done()
	}
}

// ClearPresets deletes all stored presets. Used by --clear-presets before Start.
func (a *App) ClearPresets() error {
	if a.services == nil {
		return nil
	}
	return a.services.ClearPresets()
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Warn().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	return ctx
}
