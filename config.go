package flexgp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/flexgp/flexgp/strategy"
)

// Selection strategy names accepted in Config.Strategy.
const (
	StrategyWindowed = "windowed"
	StrategyHashRank = "hash-rank"
)

// Resolver backends accepted in Config.Resolver.
const (
	ResolverNone   = "none"
	ResolverSQLite = "sqlite"
	ResolverKV     = "kv"
)

// SQLiteConfig configures the SQLite resolver.
type SQLiteConfig struct {
	// Path is the database file (e.g. track_metadata.db).
	Path string `yaml:"path"`

	// Query returns (group id, sort key) for one record id. Defaults to
	// source.DefaultSQLiteQuery.
	Query string `yaml:"query"`
}

// KVConfig configures the NATS JetStream KV resolver.
type KVConfig struct {
	// URL is the NATS server URL.
	URL string `yaml:"url"`

	// Bucket is the KV bucket holding record metadata.
	Bucket string `yaml:"bucket"`

	// Create creates the bucket when it does not exist (used when loading records).
	Create bool `yaml:"create"`

	// ConnectTimeout bounds the initial NATS connection.
	ConnectTimeout time.Duration `yaml:"connectTimeout"`

	// OperationTimeout bounds opening the bucket.
	OperationTimeout time.Duration `yaml:"operationTimeout"`
}

// LookupConfig controls how resolver calls are retried and cached.
type LookupConfig struct {
	// MaxAttempts is the number of attempts per lookup for transient errors.
	// 1 disables retries.
	MaxAttempts int `yaml:"maxAttempts"`

	// BaseBackoff is the delay before the first retry; it doubles per attempt.
	BaseBackoff time.Duration `yaml:"baseBackoff"`

	// MaxBackoff caps the retry delay.
	MaxBackoff time.Duration `yaml:"maxBackoff"`

	// Cache memoizes lookups in memory for the lifetime of the resolver.
	Cache bool `yaml:"cache"`
}

// LogConfig controls the command-line logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// MetricsConfig controls Prometheus metrics.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace"`

	// TextfilePath, when set, receives the metrics in text exposition format
	// after each run (for the node_exporter textfile collector).
	TextfilePath string `yaml:"textfilePath"`
}

// Config is the configuration for a split run.
//
// All duration fields accept standard Go duration strings like "500ms", "2s".
type Config struct {
	// Target is the split size: a fraction in (0,1) or a record count.
	Target Target `yaml:"target"`

	// Seed makes runs reproducible. Integers are used as is, other strings are hashed.
	// Leave empty for a fresh random split on every run.
	Seed Seed `yaml:"seed"`

	// Strategy selects the groups: "windowed" (default) or "hash-rank".
	Strategy string `yaml:"strategy"`

	// Resolver is the metadata backend: "none" (ungrouped), "sqlite" or "kv".
	Resolver string `yaml:"resolver"`

	// SQLite configures the sqlite resolver.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// KV configures the kv resolver.
	KV KVConfig `yaml:"kv"`

	// Lookup controls retries and caching of resolver calls.
	Lookup LookupConfig `yaml:"lookup"`

	// Logging controls the logger.
	Logging LogConfig `yaml:"logging"`

	// Metrics controls Prometheus export.
	Metrics MetricsConfig `yaml:"metrics"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// The target is left unset; callers must provide one.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		Strategy: StrategyWindowed,
		Resolver: ResolverNone,
		KV: KVConfig{
			URL:              "nats://127.0.0.1:4222",
			Bucket:           "flexgp-records",
			ConnectTimeout:   5 * time.Second,
			OperationTimeout: 10 * time.Second,
		},
		Lookup: LookupConfig{
			MaxAttempts: 3,
			BaseBackoff: 50 * time.Millisecond,
			MaxBackoff:  2 * time.Second,
		},
		Logging: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Namespace: "flexgp",
		},
	}
}

// SetDefaults fills in missing configuration values with defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Strategy == "" {
		cfg.Strategy = defaults.Strategy
	}
	if cfg.Resolver == "" {
		cfg.Resolver = defaults.Resolver
	}
	if cfg.KV.URL == "" {
		cfg.KV.URL = defaults.KV.URL
	}
	if cfg.KV.Bucket == "" {
		cfg.KV.Bucket = defaults.KV.Bucket
	}
	if cfg.KV.ConnectTimeout == 0 {
		cfg.KV.ConnectTimeout = defaults.KV.ConnectTimeout
	}
	if cfg.KV.OperationTimeout == 0 {
		cfg.KV.OperationTimeout = defaults.KV.OperationTimeout
	}
	if cfg.Lookup.MaxAttempts == 0 {
		cfg.Lookup.MaxAttempts = defaults.Lookup.MaxAttempts
	}
	if cfg.Lookup.BaseBackoff == 0 {
		cfg.Lookup.BaseBackoff = defaults.Lookup.BaseBackoff
	}
	if cfg.Lookup.MaxBackoff == 0 {
		cfg.Lookup.MaxBackoff = defaults.Lookup.MaxBackoff
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaults.Logging.Format
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = defaults.Metrics.Namespace
	}
	// Target and Seed have no defaults: an unset seed means a random split.
}

// Validate checks configuration constraints and returns an error wrapping
// ErrInvalidConfig for invalid values.
//
// Rules:
//   - Target must be set and valid
//   - Strategy must be windowed or hash-rank
//   - Resolver must be none, sqlite or kv, with its section filled in
//   - Lookup.MaxAttempts >= 1 and BaseBackoff <= MaxBackoff
//   - Logging.Format must be text or json
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.Target.IsZero() {
		return fmt.Errorf("%w: target is required", ErrInvalidConfig)
	}
	if err := cfg.Target.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch cfg.Strategy {
	case StrategyWindowed, StrategyHashRank:
	default:
		return fmt.Errorf("%w: unknown strategy %q (expected %s or %s)",
			ErrInvalidConfig, cfg.Strategy, StrategyWindowed, StrategyHashRank)
	}

	switch cfg.Resolver {
	case ResolverNone:
	case ResolverSQLite:
		if cfg.SQLite.Path == "" {
			return fmt.Errorf("%w: sqlite.path is required for the sqlite resolver", ErrInvalidConfig)
		}
	case ResolverKV:
		if cfg.KV.URL == "" || cfg.KV.Bucket == "" {
			return fmt.Errorf("%w: kv.url and kv.bucket are required for the kv resolver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown resolver %q (expected %s, %s or %s)",
			ErrInvalidConfig, cfg.Resolver, ResolverNone, ResolverSQLite, ResolverKV)
	}

	if cfg.Lookup.MaxAttempts < 1 {
		return fmt.Errorf("%w: lookup.maxAttempts must be >= 1, got %d", ErrInvalidConfig, cfg.Lookup.MaxAttempts)
	}
	if cfg.Lookup.BaseBackoff > cfg.Lookup.MaxBackoff {
		return fmt.Errorf("%w: lookup.baseBackoff (%v) must be <= lookup.maxBackoff (%v)",
			ErrInvalidConfig, cfg.Lookup.BaseBackoff, cfg.Lookup.MaxBackoff)
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format must be text or json, got %q", ErrInvalidConfig, cfg.Logging.Format)
	}

	return nil
}

// ValidateWithWarnings logs warnings for valid but questionable settings.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if !cfg.Seed.IsSet() {
		logger.Warn("no seed configured, the split will not be reproducible")
	}

	if !cfg.Target.IsCount() {
		p := cfg.Target.Value()
		if p < 0.01 || p > 0.99 {
			logger.Warn(
				"target fraction is extreme, small inputs may yield an empty side",
				"target", cfg.Target.String(),
			)
		}
	}

	if cfg.Resolver == ResolverNone && (cfg.SQLite.Path != "") {
		logger.Warn("sqlite section is ignored because resolver is none", "path", cfg.SQLite.Path)
	}

	if cfg.Resolver == ResolverKV && !cfg.Lookup.Cache && cfg.Lookup.MaxAttempts > 1 {
		logger.Warn(
			"kv lookups are retried but not cached, repeated runs will query NATS again",
			"maxAttempts", cfg.Lookup.MaxAttempts,
		)
	}
}

// SelectionStrategy builds the strategy named by cfg.Strategy.
//
// The hash-rank strategy is keyed by the configured seed so its membership is
// reproducible too.
//
// Returns:
//   - SelectionStrategy: Strategy instance
//   - error: ErrInvalidConfig for unknown names
func (cfg *Config) SelectionStrategy() (SelectionStrategy, error) {
	switch cfg.Strategy {
	case "", StrategyWindowed:
		return strategy.NewWindowed(), nil
	case StrategyHashRank:
		if cfg.Seed.IsSet() {
			return strategy.NewHashRank(strategy.WithHashSeed(cfg.Seed.Uint64())), nil
		}

		return strategy.NewHashRank(), nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, cfg.Strategy)
	}
}

// LoadConfig reads a YAML configuration file, applies defaults and validates it.
//
// Unknown keys are rejected so typos surface immediately.
//
// Parameters:
//   - path: YAML file path
//
// Returns:
//   - Config: Loaded configuration
//   - error: Read, decode or validation error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration, applies defaults and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg, err := DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DecodeConfig decodes YAML configuration and applies defaults without
// validating, for callers that override fields (e.g. from flags) first.
//
// An empty document yields DefaultConfig().
func DecodeConfig(r io.Reader) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	SetDefaults(&cfg)

	return cfg, nil
}

// TestConfig returns a configuration for fast, reproducible tests.
//
// Returns:
//   - Config: Seeded configuration with a 0.5 target and fast retries
//
// Example:
//
//	cfg := flexgp.TestConfig()
//	cfg.Target = flexgp.Fraction(0.2)
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.Target = Fraction(0.5)
	cfg.Seed = SeedFromInt(1)
	cfg.Lookup.BaseBackoff = time.Millisecond
	cfg.Lookup.MaxBackoff = 10 * time.Millisecond
	cfg.KV.ConnectTimeout = time.Second
	cfg.KV.OperationTimeout = 2 * time.Second

	return cfg
}
