package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"traveltime-service/internal/models"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

// Std returns the value as a standard time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements custom YAML unmarshaling for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(str)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", str, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config represents the main configuration structure
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Retry     RetryConfig     `yaml:"retry"`
	Cache     CacheConfig     `yaml:"cache"`
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// AssociationOverrides carries per-association deviations from the transport
// defaults. Referee associations differ in whether the travel-time feature is
// rolled out and in how much slack referees want before a match start.
type AssociationOverrides struct {
	Enabled              *bool `yaml:"enabled"`
	ArrivalBufferMinutes *int  `yaml:"arrival_buffer_minutes" validate:"omitempty,gte=0"`
}

// TransportConfig is the read-only settings snapshot consumed by the resolver
// and batch engine.
type TransportConfig struct {
	Enabled              bool                            `yaml:"enabled"`
	DemoMode             bool                            `yaml:"demo_mode"`
	HomeLocation         *models.Coordinates             `yaml:"home_location"`
	ArrivalBufferMinutes int                             `yaml:"arrival_buffer_minutes" validate:"gte=0"`
	MaxTravelTimeMinutes int                             `yaml:"max_travel_time_minutes" validate:"gt=0"`
	FilterEnabled        bool                            `yaml:"filter_enabled"`
	Associations         map[string]AssociationOverrides `yaml:"associations"`
	Provider             ProviderConfig                  `yaml:"provider"`
}

// ProviderConfig configures the external journey-planner backend
type ProviderConfig struct {
	BaseURL        string   `yaml:"base_url" validate:"omitempty,url"`
	APIKey         string   `yaml:"api_key"`
	RequestTimeout Duration `yaml:"request_timeout"`
}

// RetryConfig tunes the bounded retry policy for transport calls. The
// defaults are deliberately configurable rather than baked-in constants.
type RetryConfig struct {
	MaxAttempts    int      `yaml:"max_attempts" validate:"gte=1,lte=10"`
	InitialBackoff Duration `yaml:"initial_backoff"`
	MaxBackoff     Duration `yaml:"max_backoff"`
	JitterFactor   float64  `yaml:"jitter_factor" validate:"gte=0,lte=1"`
}

// MemoryCacheConfig configures the in-process cache tier
type MemoryCacheConfig struct {
	Enabled bool `yaml:"enabled"`
	SizeMB  int  `yaml:"size_mb" validate:"gte=0"`
}

// RedisCacheConfig configures the persistent cache tier
type RedisCacheConfig struct {
	Enabled      bool     `yaml:"enabled"`
	Addr         string   `yaml:"addr"`
	Password     string   `yaml:"password"`
	DB           int      `yaml:"db"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
}

// CacheConfig configures both cache tiers and the shared retention window
type CacheConfig struct {
	// TTL is the retention window for cached travel times. Transit schedules
	// change infrequently, so the production value is tens of days.
	TTL           Duration          `yaml:"ttl"`
	PropagateHits bool              `yaml:"propagate_hits"`
	Memory        MemoryCacheConfig `yaml:"memory"`
	Redis         RedisCacheConfig  `yaml:"redis"`
}

// EnabledFor reports whether the travel-time feature is on for the given
// association, falling back to the global flag when no override exists.
func (t *TransportConfig) EnabledFor(associationID string) bool {
	if associationID != "" {
		if o, ok := t.Associations[associationID]; ok && o.Enabled != nil {
			return *o.Enabled
		}
	}
	return t.Enabled
}

// ArrivalBufferFor returns the arrival buffer in minutes for the given
// association, falling back to the global value when no override exists.
func (t *TransportConfig) ArrivalBufferFor(associationID string) int {
	if associationID != "" {
		if o, ok := t.Associations[associationID]; ok && o.ArrivalBufferMinutes != nil {
			return *o.ArrivalBufferMinutes
		}
	}
	return t.ArrivalBufferMinutes
}

// LoadConfig loads configuration from file path
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ApplyDefaults sets default values for missing configuration
func (c *Config) ApplyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8090"
	}
	if c.Transport.ArrivalBufferMinutes == 0 {
		c.Transport.ArrivalBufferMinutes = 15
	}
	if c.Transport.MaxTravelTimeMinutes == 0 {
		c.Transport.MaxTravelTimeMinutes = 90
	}
	if c.Transport.Provider.RequestTimeout == 0 {
		c.Transport.Provider.RequestTimeout = Duration(10 * time.Second)
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.InitialBackoff == 0 {
		c.Retry.InitialBackoff = Duration(200 * time.Millisecond)
	}
	if c.Retry.MaxBackoff == 0 {
		c.Retry.MaxBackoff = Duration(5 * time.Second)
	}
	if c.Retry.JitterFactor == 0 {
		c.Retry.JitterFactor = 0.2
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = Duration(720 * time.Hour) // 30 days
	}
	if c.Cache.Memory.SizeMB == 0 {
		c.Cache.Memory.SizeMB = 32
	}
	if c.Cache.Redis.ReadTimeout == 0 {
		c.Cache.Redis.ReadTimeout = Duration(2 * time.Second)
	}
	if c.Cache.Redis.WriteTimeout == 0 {
		c.Cache.Redis.WriteTimeout = Duration(2 * time.Second)
	}
}
