// Package config assembles the runtime configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aishield/shield-backend/internal/autonomous"
	"github.com/aishield/shield-backend/internal/narrative"
	"github.com/aishield/shield-backend/util"
	"gopkg.in/yaml.v2"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Debounce holds the per panel debounce delays
type Debounce struct {
	Default    time.Duration `yaml:"default"`
	Comparison time.Duration `yaml:"comparison"`
	Simulation time.Duration `yaml:"simulation"`
}

// Kafka configures the KPI event topic
type Kafka struct {
	Brokers   []string `yaml:"brokers"`
	Topic     string   `yaml:"topic"`
	GroupID   string   `yaml:"group_id"`
	APIKey    string   `yaml:"-"`
	APISecret string   `yaml:"-"`
}

// Enabled reports whether KPI events are shared over Kafka
func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 }

// Arango configures the journal database
type Arango struct {
	URL      string `yaml:"url"`
	User     string `yaml:"user"`
	Pass     string `yaml:"-"`
	Database string `yaml:"database"`
}

// Enabled reports whether the ArangoDB journal is used
func (a Arango) Enabled() bool { return a.URL != "" }

// Auth configures operator authentication for engine actions
type Auth struct {
	JWTSecret            string        `yaml:"-"`
	OperatorUser         string        `yaml:"operator_user"`
	OperatorPasswordHash string        `yaml:"-"`
	TokenTTL             time.Duration `yaml:"token_ttl"`
}

// Enabled reports whether engine actions require a token
func (a Auth) Enabled() bool { return a.JWTSecret != "" }

// Config is the full runtime configuration
type Config struct {
	Port             string            `yaml:"port"`
	InstanceID       string            `yaml:"instance_id"`
	APIKey           string            `yaml:"-"`
	Models           narrative.Models  `yaml:"models"`
	NarrativeTimeout time.Duration     `yaml:"narrative_timeout"`
	Debounce         Debounce          `yaml:"debounce"`
	Engine           autonomous.Config `yaml:"engine"`
	FeedInterval     time.Duration     `yaml:"feed_interval"`
	CatalogPath      string            `yaml:"catalog_path"`
	Kafka            Kafka             `yaml:"kafka"`
	Arango           Arango            `yaml:"arango"`
	Auth             Auth              `yaml:"auth"`
}

// Default returns the built-in configuration
func Default() Config {
	host, _ := os.Hostname()
	return Config{
		Port:             "8080",
		InstanceID:       util.GetStringOrDefault(host, "shield"),
		Models:           narrative.DefaultModels(),
		NarrativeTimeout: 20 * time.Second,
		Debounce: Debounce{
			Default:    800 * time.Millisecond,
			Comparison: 600 * time.Millisecond,
			Simulation: 1200 * time.Millisecond,
		},
		Engine:       autonomous.DefaultConfig(),
		FeedInterval: 3 * time.Second,
		Kafka: Kafka{
			Topic:   "kpi-events",
			GroupID: "shield-backend",
		},
		Arango: Arango{
			User:     "root",
			Database: "aishield",
		},
		Auth: Auth{
			OperatorUser: "operator",
			TokenTTL:     12 * time.Hour,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// SHIELD_CONFIG when set, then environment overrides
func Load() (Config, error) {
	cfg := Default()

	if path := util.GetEnvDefault("SHIELD_CONFIG", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = util.GetEnvDefault("MS_PORT", cfg.Port)
	cfg.InstanceID = util.GetEnvDefault("SHIELD_INSTANCE_ID", cfg.InstanceID)
	cfg.APIKey = util.GetEnvFirst(cfg.APIKey, "GEMINI_API_KEY", "API_KEY")

	cfg.Models.Fast = util.GetEnvDefault("SHIELD_MODEL_FAST", cfg.Models.Fast)
	cfg.Models.Pro = util.GetEnvDefault("SHIELD_MODEL_PRO", cfg.Models.Pro)
	cfg.Models.Image = util.GetEnvDefault("SHIELD_MODEL_IMAGE", cfg.Models.Image)
	cfg.NarrativeTimeout = util.GetEnvDuration("NARRATIVE_TIMEOUT", cfg.NarrativeTimeout)

	cfg.Debounce.Default = util.GetEnvDuration("DEBOUNCE_DEFAULT", cfg.Debounce.Default)
	cfg.Debounce.Comparison = util.GetEnvDuration("DEBOUNCE_COMPARISON", cfg.Debounce.Comparison)
	cfg.Debounce.Simulation = util.GetEnvDuration("DEBOUNCE_SIMULATION", cfg.Debounce.Simulation)

	cfg.Engine.MinIdle = util.GetEnvDuration("ENGINE_MIN_IDLE", cfg.Engine.MinIdle)
	cfg.Engine.MaxIdle = util.GetEnvDuration("ENGINE_MAX_IDLE", cfg.Engine.MaxIdle)
	cfg.Engine.Deploy = util.GetEnvDuration("ENGINE_DEPLOY", cfg.Engine.Deploy)
	cfg.Engine.Secured = util.GetEnvDuration("ENGINE_SECURED", cfg.Engine.Secured)

	cfg.FeedInterval = util.GetEnvDuration("FEED_INTERVAL", cfg.FeedInterval)
	cfg.CatalogPath = util.GetEnvDefault("SHIELD_CATALOG", cfg.CatalogPath)

	cfg.Kafka.Brokers = util.GetEnvList("KAFKA_BROKERS", cfg.Kafka.Brokers)
	cfg.Kafka.Topic = util.GetEnvDefault("KAFKA_TOPIC", cfg.Kafka.Topic)
	cfg.Kafka.GroupID = util.GetEnvDefault("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.APIKey = util.GetEnvDefault("KAFKA_API_KEY", cfg.Kafka.APIKey)
	cfg.Kafka.APISecret = util.GetEnvDefault("KAFKA_API_SECRET", cfg.Kafka.APISecret)

	cfg.Arango.URL = util.GetEnvDefault("ARANGO_URL", cfg.Arango.URL)
	cfg.Arango.User = util.GetEnvDefault("ARANGO_USER", cfg.Arango.User)
	cfg.Arango.Pass = util.GetEnvDefault("ARANGO_PASS", cfg.Arango.Pass)
	cfg.Arango.Database = util.GetEnvDefault("ARANGO_DATABASE", cfg.Arango.Database)

	cfg.Auth.JWTSecret = util.GetEnvDefault("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.OperatorUser = util.GetEnvDefault("OPERATOR_USER", cfg.Auth.OperatorUser)
	cfg.Auth.OperatorPasswordHash = util.GetEnvDefault("OPERATOR_PASSWORD_HASH", cfg.Auth.OperatorPasswordHash)
	cfg.Auth.TokenTTL = util.GetEnvDuration("JWT_TTL", cfg.Auth.TokenTTL)
}

// Validate rejects inverted ranges and non-positive durations
func (c Config) Validate() error {
	if util.IsEmpty(c.Port) {
		return fmt.Errorf("%w: port is required", ErrInvalidConfig)
	}
	positive := map[string]time.Duration{
		"narrative_timeout":   c.NarrativeTimeout,
		"debounce.default":    c.Debounce.Default,
		"debounce.comparison": c.Debounce.Comparison,
		"debounce.simulation": c.Debounce.Simulation,
		"engine.min_idle":     c.Engine.MinIdle,
		"engine.max_idle":     c.Engine.MaxIdle,
		"engine.deploy":       c.Engine.Deploy,
		"engine.secured":      c.Engine.Secured,
		"feed_interval":       c.FeedInterval,
	}
	for name, d := range positive {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidConfig, name, d)
		}
	}
	if c.Engine.MaxIdle < c.Engine.MinIdle {
		return fmt.Errorf("%w: engine.max_idle %s is below engine.min_idle %s", ErrInvalidConfig, c.Engine.MaxIdle, c.Engine.MinIdle)
	}
	if c.Kafka.Enabled() && util.IsEmpty(c.Kafka.Topic) {
		return fmt.Errorf("%w: kafka topic is required when brokers are set", ErrInvalidConfig)
	}
	if c.Auth.Enabled() && util.IsEmpty(c.Auth.OperatorPasswordHash) {
		return fmt.Errorf("%w: OPERATOR_PASSWORD_HASH is required when JWT_SECRET is set", ErrInvalidConfig)
	}
	return nil
}
