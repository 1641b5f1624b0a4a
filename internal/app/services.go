package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/dokzlo13/ledremote/internal/action"
	"github.com/dokzlo13/ledremote/internal/broker"
	"github.com/dokzlo13/ledremote/internal/config"
	"github.com/dokzlo13/ledremote/internal/db"
	"github.com/dokzlo13/ledremote/internal/decoder"
	"github.com/dokzlo13/ledremote/internal/eventbus"
	"github.com/dokzlo13/ledremote/internal/jsoncmd"
	"github.com/dokzlo13/ledremote/internal/ledger"
	"github.com/dokzlo13/ledremote/internal/preset"
	"github.com/dokzlo13/ledremote/internal/remote"
	"github.com/dokzlo13/ledremote/internal/stateapi"
	"github.com/dokzlo13/ledremote/internal/strip"
	"github.com/dokzlo13/ledremote/internal/targeting"
	"github.com/dokzlo13/ledremote/internal/transport"
	"github.com/dokzlo13/ledremote/internal/webhook"
)

// Services is a container for all application services.
// It manages service initialization order and dependencies.
type Services struct {
	cfg *config.Config

	// Core infrastructure
	DB      *db.DB
	Bus     *eventbus.Bus
	Ledger  *ledger.Ledger
	Presets *preset.SQLiteStore

	// Strip model and the layers that change it
	Strip    *strip.Strip
	State    *stateapi.API
	Commands *jsoncmd.Runtime
	Decoder  *decoder.Decoder
	Remote   *remote.Adapter

	// Input queues, nil when the input is disabled
	IRQueue *transport.QueueReceiver
	RFQueue *transport.QueueReceiver

	Loop *Loop

	// Optional services
	Lua       *LuaService
	LedgerSvc *LedgerService
	MQTT      *MQTTService
	GPIO      *GPIOService
	Health    *HealthService
	Webhook   *WebhookService

	notifier  *eventbus.StateNotifier
	loopDone  sync.WaitGroup
	closeOnce sync.Once
}

// NewServices creates all services with proper dependency injection.
func NewServices(cfg *config.Config) (*Services, error) {
	s := &Services{cfg: cfg, Loop: &Loop{}}

	remoteType, err := decoder.ParseRemoteType(cfg.Remote.Type)
	if err != nil {
		return nil, err
	}

	s.Strip, err = newStrip(cfg.Strip)
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	s.DB = database

	s.Bus = eventbus.NewWithConfig(cfg.EventBus.GetWorkers(), cfg.EventBus.GetQueueSize())
	s.notifier = eventbus.NewStateNotifier(s.Bus, s.Strip, "init")

	s.Presets = preset.NewSQLiteStore(database.DB)
	s.State = stateapi.New(s.Strip, s.Presets, s.notifier.WithSource("preset"))

	// Every input gets its own engine tagged with its source; they share
	// the night mode and color cycle session.
	session := action.NewSession()
	engine := func(source string) *action.Engine {
		return action.New(s.Strip, s.State, s.notifier.WithSource(source), session, action.Options{
			Scope:              targeting.FollowGlobalSetting,
			ApplyToAllSelected: cfg.Remote.ApplyToAllSelected,
		})
	}

	commandFS := afero.NewBasePathFs(afero.NewOsFs(), cfg.Remote.DataDir)
	s.Commands = jsoncmd.New(commandFS, jsoncmd.NewBufferLock(), s.Strip, s.State, engine("command"),
		s.notifier.WithSource("command"), session.Intn, jsoncmd.Options{
			ApplyToAllSelected: cfg.Remote.ApplyToAllSelected,
			BusWait:            cfg.Remote.BusWait.Duration(),
		})

	var program decoder.Program
	switch remoteType {
	case decoder.RemoteJSON:
		program = decoder.NewIRJSONProgram(s.Commands)
	case decoder.RemoteLua:
		s.Lua = NewLuaService(afero.NewOsFs(), cfg.Script, engine("lua"), s.Strip, s.Commands.Lock())
		program = s.Lua.Runtime
	}
	s.Decoder = decoder.New(remoteType, engine("ir"), program)

	var (
		mqttInputs broker.Inputs
		httpSinks  webhook.Sinks
		buttons    *buttonTap
	)

	if cfg.IR.Enabled && remoteType != decoder.RemoteNone {
		s.IRQueue = transport.NewQueueReceiver(cfg.IR.QueueSize)
		s.Loop.ir = transport.NewIRPoller(&codeTap{rx: s.IRQueue, bus: s.Bus, source: "ir"}, s.Decoder, s.Strip)
		mqttInputs.IR, httpSinks.IR = s.IRQueue, s.IRQueue
	}
	if cfg.RF.Enabled {
		s.RFQueue = transport.NewQueueReceiver(cfg.RF.QueueSize)
		s.Loop.rf = transport.NewRFPoller(&codeTap{rx: s.RFQueue, bus: s.Bus, source: "rf433"}, decoder.NewRFProgram(s.Commands), s.Strip)
		mqttInputs.RF, httpSinks.RF = s.RFQueue, s.RFQueue
	}
	if cfg.ESPNow.Enabled || cfg.GPIO.Enabled {
		s.Remote = remote.New(s.Commands, engine("espnow"), remote.Options{LinkedRemote: cfg.ESPNow.LinkedRemote})
		s.Loop.remote = s.Remote
		buttons = &buttonTap{next: s.Remote, bus: s.Bus}
		mqttInputs.ESPNow, httpSinks.ESPNow = buttons, buttons
	}

	if cfg.Ledger.Enabled {
		s.Ledger = ledger.New(database.DB)
		retention := time.Duration(cfg.Ledger.RetentionDays) * 24 * time.Hour
		s.LedgerSvc = NewLedgerService(s.Ledger, cfg.Ledger.CleanupInterval.Duration(), retention)
		s.LedgerSvc.Subscribe(s.Bus)
	}

	if cfg.MQTT.Enabled {
		s.MQTT, err = NewMQTTService(cfg.MQTT, s.Bus, mqttInputs)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("mqtt: %w", err)
		}
	}

	if cfg.GPIO.Enabled {
		s.GPIO = NewGPIOService(cfg.GPIO, buttons)
	}

	if cfg.Webhook.Enabled {
		s.Webhook = NewWebhookService(cfg, s.Bus, httpSinks)
	}

	if cfg.Healthcheck.Enabled {
		var ready func() bool
		if s.MQTT != nil {
			ready = s.MQTT.Ready
		}
		s.Health = NewHealthService(cfg.Healthcheck.Host, cfg.Healthcheck.Port, cfg.ShutdownTimeout.Duration(), ready)
	}

	return s, nil
}

// Start starts all services in the correct order. The main loop starts last.
func (s *Services) Start(ctx context.Context) error {
	// Load Lua script before starting worker
	if s.Lua != nil {
		if err := s.Lua.LoadScript(); err != nil {
			return err
		}
		s.Lua.Start(ctx)
	}

	if s.LedgerSvc != nil {
		s.LedgerSvc.Start(ctx)
	}
	if s.MQTT != nil {
		s.MQTT.Start(ctx)
	}
	if s.GPIO != nil {
		if err := s.GPIO.Start(); err != nil {
			return fmt.Errorf("gpio: %w", err)
		}
	}
	if s.Webhook != nil {
		s.Webhook.Start(ctx)
	}
	if s.Health != nil {
		s.Health.Start(ctx)
	}

	// Publish the boot state before the loop takes ownership of the strip.
	s.notifier.StateUpdated(strip.CallModeInit)

	s.loopDone.Add(1)
	go func() {
		defer s.loopDone.Done()
		s.Loop.Run(ctx, s.cfg.LoopInterval.Duration())
	}()
	return nil
}

// Inputs names the enabled inputs.
func (s *Services) Inputs() []string {
	var in []string
	if s.Loop.ir != nil {
		in = append(in, "ir")
	}
	if s.Loop.rf != nil {
		in = append(in, "rf433")
	}
	if s.Remote != nil && s.cfg.ESPNow.Enabled {
		in = append(in, "espnow")
	}
	if s.GPIO != nil {
		in = append(in, "gpio")
	}
	if s.MQTT != nil {
		in = append(in, "mqtt")
	}
	if s.Webhook != nil {
		in = append(in, "http")
	}
	return in
}

// ClearPresets deletes every stored preset.
func (s *Services) ClearPresets() error {
	presets, err := s.Presets.List()
	if err != nil {
		return err
	}
	for _, p := range presets {
		if err := s.Presets.Delete(p.ID); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(presets)).Msg("Cleared presets")
	return nil
}

// Stop waits for the main loop to exit and releases all resources. The
// context passed to Start must be cancelled first.
func (s *Services) Stop() error {
	s.loopDone.Wait()
	s.Close()
	return nil
}

// Close releases all resources.
func (s *Services) Close() {
	s.closeOnce.Do(func() {
		if s.GPIO != nil {
			s.GPIO.Close()
		}
		if s.Lua != nil {
			s.Lua.Close()
		}
		if s.MQTT != nil {
			s.MQTT.Close()
		}
		if s.Bus != nil {
			ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout.Duration())
			s.Bus.Close(ctx)
			cancel()
		}
		if s.DB != nil {
			s.DB.Close()
		}
	})
}
