package geochrono

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/hupe1980/geochrono/index/spatial"
	"github.com/hupe1980/geochrono/index/temporal"
	"gopkg.in/yaml.v3"
)

// Config is the file form of the index options.
//
//	spatial:
//	  backend: rtree
//	  minChildren: 25
//	  maxChildren: 50
//	temporal:
//	  degree: 32
//	query:
//	  nearestOverfetch: 2
//	logging:
//	  level: info
//	  format: text
type Config struct {
	Spatial  SpatialConfig  `yaml:"spatial"`
	Temporal TemporalConfig `yaml:"temporal"`
	Query    QueryConfig    `yaml:"query"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SpatialConfig selects and tunes the spatial backend.
type SpatialConfig struct {
	// Backend is "rtree" or "flat".
	Backend     string `yaml:"backend"`
	MinChildren int    `yaml:"minChildren"`
	MaxChildren int    `yaml:"maxChildren"`
}

// TemporalConfig tunes the temporal backend.
type TemporalConfig struct {
	Degree int `yaml:"degree"`
}

// QueryConfig tunes query execution.
type QueryConfig struct {
	NearestOverfetch int `yaml:"nearestOverfetch"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error or off.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration New uses without options.
func DefaultConfig() *Config {
	return &Config{
		Spatial: SpatialConfig{
			Backend:     "rtree",
			MinChildren: spatial.DefaultMinChildren,
			MaxChildren: spatial.DefaultMaxChildren,
		},
		Temporal: TemporalConfig{
			Degree: temporal.DefaultDegree,
		},
		Query: QueryConfig{
			NearestOverfetch: DefaultNearestOverfetch,
		},
		Logging: LoggingConfig{
			Level:  "off",
			Format: "text",
		},
	}
}

// LoadConfig reads a YAML config file (if provided) and applies
// GEOCHRONO_* environment overrides. Missing values keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parsing config file %s: %w", ErrInvalidConfig, path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfig decodes YAML over the defaults and validates the result.
// Environment overrides are not applied.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and returns an error wrapping
// ErrInvalidConfig for the first bad one.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Spatial.Backend) {
	case "", "rtree", "flat":
	default:
		return fmt.Errorf("%w: unknown spatial backend %q", ErrInvalidConfig, c.Spatial.Backend)
	}
	if c.Spatial.MinChildren < 1 {
		return fmt.Errorf("%w: spatial.minChildren must be at least 1, got %d", ErrInvalidConfig, c.Spatial.MinChildren)
	}
	if c.Spatial.MaxChildren < 2*c.Spatial.MinChildren {
		return fmt.Errorf("%w: spatial.maxChildren must be at least twice minChildren, got %d/%d",
			ErrInvalidConfig, c.Spatial.MinChildren, c.Spatial.MaxChildren)
	}
	if c.Temporal.Degree < 2 {
		return fmt.Errorf("%w: temporal.degree must be at least 2, got %d", ErrInvalidConfig, c.Temporal.Degree)
	}
	if c.Query.NearestOverfetch < 1 {
		return fmt.Errorf("%w: query.nearestOverfetch must be at least 1, got %d", ErrInvalidConfig, c.Query.NearestOverfetch)
	}
	if _, _, err := c.Logging.level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown logging format %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// Options converts the config into index options. Call Validate first;
// invalid fields fall back to the option defaults. The returned slice may be
// passed to any number of New and FromItems calls.
func (c *Config) Options() []Option {
	opts := []Option{
		WithBTreeDegree(c.Temporal.Degree),
		WithNearestOverfetch(c.Query.NearestOverfetch),
	}

	if strings.EqualFold(c.Spatial.Backend, "flat") {
		opts = append(opts, WithSpatialBackendFunc(func() spatial.Backend { return spatial.NewFlat() }))
	} else {
		opts = append(opts, WithNodeCapacity(c.Spatial.MinChildren, c.Spatial.MaxChildren))
	}

	if level, on, err := c.Logging.level(); err == nil && on {
		if strings.EqualFold(c.Logging.Format, "json") {
			opts = append(opts, WithLogger(NewJSONLogger(level)))
		} else {
			opts = append(opts, WithLogger(NewTextLogger(level)))
		}
	}
	return opts
}

// level parses Level. on is false for "off" and the empty string.
func (l LoggingConfig) level() (level slog.Level, on bool, err error) {
	switch strings.ToLower(l.Level) {
	case "", "off", "none":
		return 0, false, nil
	case "debug":
		return slog.LevelDebug, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "warn", "warning":
		return slog.LevelWarn, true, nil
	case "error":
		return slog.LevelError, true, nil
	default:
		return 0, false, fmt.Errorf("%w: unknown logging level %q", ErrInvalidConfig, l.Level)
	}
}

// applyEnvOverrides reads GEOCHRONO_* environment variables and overrides
// the corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GEOCHRONO_SPATIAL_BACKEND"); v != "" {
		cfg.Spatial.Backend = v
	}
	if v := os.Getenv("GEOCHRONO_SPATIAL_MIN_CHILDREN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Spatial.MinChildren = n
		}
	}
	if v := os.Getenv("GEOCHRONO_SPATIAL_MAX_CHILDREN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Spatial.MaxChildren = n
		}
	}
	if v := os.Getenv("GEOCHRONO_TEMPORAL_DEGREE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Temporal.Degree = n
		}
	}
	if v := os.Getenv("GEOCHRONO_QUERY_NEAREST_OVERFETCH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Query.NearestOverfetch = n
		}
	}
	if v := os.Getenv("GEOCHRONO_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("GEOCHRONO_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
