package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Log             LogConfig         `yaml:"log"`
	Database        DatabaseConfig    `yaml:"database"`
	Remote          RemoteConfig      `yaml:"remote"`
	IR              IRConfig          `yaml:"ir"`
	RF              RFConfig          `yaml:"rf"`
	ESPNow          ESPNowConfig      `yaml:"espnow"`
	GPIO            GPIOConfig        `yaml:"gpio"`
	MQTT            MQTTConfig        `yaml:"mqtt"`
	Strip           StripConfig       `yaml:"strip"`
	Webhook         WebhookConfig     `yaml:"webhook"`
	Healthcheck     HealthcheckConfig `yaml:"healthcheck"`
	EventBus        EventBusConfig    `yaml:"eventbus"`
	Ledger          LedgerConfig      `yaml:"ledger"`
	Script          string            `yaml:"script"`        // Lua remote script, used when remote.type is "lua"
	LoopInterval    Duration          `yaml:"loop_interval"` // Main loop tick
	ShutdownTimeout Duration          `yaml:"shutdown_timeout"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level   string `yaml:"level"`
	Colors  bool   `yaml:"colors"`
	UseJSON bool   `yaml:"json"`
}

// GetLevel returns the log level with default
func (c *LogConfig) GetLevel() string {
	if c.Level == "" {
		return "info"
	}
	return c.Level
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// RemoteConfig selects the IR remote family and command file location
type RemoteConfig struct {
	Type               string   `yaml:"type"`                  // none, ir24, ir24ct, ir40, ir44, ir21, ir6, ir9, json, lua
	ApplyToAllSelected bool     `yaml:"apply_to_all_selected"` // Actions target all selected segments instead of the main one
	DataDir            string   `yaml:"data_dir"`              // Directory holding ir.json, remote.json, remote433.json
	BusWait            Duration `yaml:"bus_wait"`              // Max wait for an in-flight frame before reading command files
}

// IRConfig contains IR receiver settings
type IRConfig struct {
	Enabled   bool `yaml:"enabled"`
	QueueSize int  `yaml:"queue_size"`
}

// RFConfig contains 433 MHz receiver settings
type RFConfig struct {
	Enabled   bool `yaml:"enabled"`
	QueueSize int  `yaml:"queue_size"`
}

// ESPNowConfig contains WiZmote settings
type ESPNowConfig struct {
	Enabled      bool   `yaml:"enabled"`
	LinkedRemote string `yaml:"linked_remote"` // Sender MAC, empty accepts any
}

// GPIOConfig contains local push-button settings
type GPIOConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Chip     string         `yaml:"chip"`
	Debounce Duration       `yaml:"debounce"`
	Buttons  []ButtonConfig `yaml:"buttons"`
}

// ButtonConfig maps a GPIO line to a WiZmote button id
type ButtonConfig struct {
	Name     string `yaml:"name"`
	Pin      int    `yaml:"pin"`
	Button   uint8  `yaml:"button"`
	PullUp   bool   `yaml:"pull_up"`
	Inverted bool   `yaml:"inverted"` // Active low
}

// MQTTConfig contains MQTT broker settings
type MQTTConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Broker         string   `yaml:"broker"`
	User           string   `yaml:"user"`
	Password       string   `yaml:"password"`
	ClientID       string   `yaml:"client_id"`
	TopicPrefix    string   `yaml:"topic_prefix"`
	PublishState   bool     `yaml:"publish_state"`
	StateRateLimit float64  `yaml:"state_rate_limit"` // Max state publishes per second
	ConnectTimeout Duration `yaml:"connect_timeout"`
}

// MaxEngineCount bounds strip.mode_count and strip.palette_count.
const MaxEngineCount = 256

// StripConfig describes the strip model
type StripConfig struct {
	Brightness   uint8           `yaml:"brightness"`
	MainSegment  int             `yaml:"main_segment"`
	ModeCount    int             `yaml:"mode_count"`
	PaletteCount int             `yaml:"palette_count"`
	Segments     []SegmentConfig `yaml:"segments"`
}

// SegmentConfig describes one segment
type SegmentConfig struct {
	Color     string `yaml:"color"` // hex RRGGBB or WWRRGGBB
	Mode      uint8  `yaml:"mode"`
	Palette   uint8  `yaml:"palette"`
	Speed     uint8  `yaml:"speed"`
	Intensity uint8  `yaml:"intensity"`
	RGB       bool   `yaml:"rgb"`
	White     bool   `yaml:"white"`
	CCT       bool   `yaml:"cct"`
	AutoWhite bool   `yaml:"auto_white"`
	Selected  *bool  `yaml:"selected"`
}

// IsSelected returns whether the segment starts selected (default: true)
func (c *SegmentConfig) IsSelected() bool {
	return c.Selected == nil || *c.Selected
}

// WebhookConfig contains the code injection HTTP server settings
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// HealthcheckConfig contains health check server settings
type HealthcheckConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// EventBusConfig contains event bus settings
type EventBusConfig struct {
	Workers   int `yaml:"workers"`    // Number of worker goroutines (default: 4)
	QueueSize int `yaml:"queue_size"` // Event queue size (default: 100)
}

// GetWorkers returns worker count with default
func (c *EventBusConfig) GetWorkers() int {
	if c.Workers <= 0 {
		return 4
	}
	return c.Workers
}

// GetQueueSize returns queue size with default
func (c *EventBusConfig) GetQueueSize() int {
	if c.QueueSize <= 0 {
		return 100
	}
	return c.QueueSize
}

// LedgerConfig contains event ledger settings
type LedgerConfig struct {
	Enabled         bool     `yaml:"enabled"`
	CleanupInterval Duration `yaml:"cleanup_interval"`
	RetentionDays   int      `yaml:"retention_days"`
}

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses configuration data and applies defaults
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./ledremote.sqlite"
	}
	if cfg.Script == "" {
		cfg.Script = "remote.lua"
	}

	// Remote defaults
	if cfg.Remote.Type == "" {
		cfg.Remote.Type = "none"
	}
	if cfg.Remote.DataDir == "" {
		cfg.Remote.DataDir = "./data"
	}
	if cfg.Remote.BusWait == 0 {
		cfg.Remote.BusWait = Duration(24 * time.Millisecond)
	}
	if cfg.IR.QueueSize == 0 {
		cfg.IR.QueueSize = 16
	}
	if cfg.RF.QueueSize == 0 {
		cfg.RF.QueueSize = 16
	}

	// GPIO defaults
	if cfg.GPIO.Chip == "" {
		cfg.GPIO.Chip = "gpiochip0"
	}
	if cfg.GPIO.Debounce == 0 {
		cfg.GPIO.Debounce = Duration(50 * time.Millisecond)
	}

	// MQTT defaults
	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = "ledremote"
	}
	if cfg.MQTT.TopicPrefix == "" {
		cfg.MQTT.TopicPrefix = "ledremote"
	}
	if cfg.MQTT.StateRateLimit == 0 {
		cfg.MQTT.StateRateLimit = 5.0
	}
	if cfg.MQTT.ConnectTimeout == 0 {
		cfg.MQTT.ConnectTimeout = Duration(10 * time.Second)
	}
	if cfg.MQTT.Enabled && cfg.MQTT.Broker == "" {
		return nil, fmt.Errorf("mqtt.broker is required when mqtt is enabled")
	}

	// Strip defaults. Mode and palette ids are 8-bit; zero counts use the
	// engine defaults.
	if cfg.Strip.ModeCount < 0 || cfg.Strip.ModeCount > MaxEngineCount {
		return nil, fmt.Errorf("strip.mode_count must be between 0 (default) and %d", MaxEngineCount)
	}
	if cfg.Strip.PaletteCount < 0 || cfg.Strip.PaletteCount > MaxEngineCount {
		return nil, fmt.Errorf("strip.palette_count must be between 0 (default) and %d", MaxEngineCount)
	}
	if cfg.Strip.Brightness == 0 {
		cfg.Strip.Brightness = 128
	}

	// Webhook defaults
	if cfg.Webhook.Port == 0 {
		cfg.Webhook.Port = 8081
	}
	if cfg.Webhook.Host == "" {
		cfg.Webhook.Host = "0.0.0.0"
	}

	// Ledger defaults
	if cfg.Ledger.CleanupInterval == 0 {
		cfg.Ledger.CleanupInterval = Duration(24 * time.Hour)
	}
	if cfg.Ledger.RetentionDays == 0 {
		cfg.Ledger.RetentionDays = 30
	}

	// Healthcheck defaults
	if cfg.Healthcheck.Port == 0 {
		cfg.Healthcheck.Port = 9090
	}
	if cfg.Healthcheck.Host == "" {
		cfg.Healthcheck.Host = "0.0.0.0"
	}

	if cfg.LoopInterval == 0 {
		cfg.LoopInterval = Duration(10 * time.Millisecond)
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = Duration(5 * time.Second)
	}

	return &cfg, nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
func expandEnvVars(input string) string {
	re := regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultVal := ""
		if len(parts) >= 3 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}

// ExpandEnvString expands a single string with environment variables
func ExpandEnvString(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return expandEnvVars(s)
	}
	return s
}
