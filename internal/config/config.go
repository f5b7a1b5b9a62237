package config

import (
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"github.com/magnetde/starlark-grep/engine"
	"github.com/magnetde/starlark-grep/internal/logger"
)

const (
	DefaultLogLevel  = "warning"
	DefaultLogConfig = "console"
	DefaultCacheSize = 32
)

// Config holds the settings of sgrep, that can be stored in a YAML file.
type Config struct {
	LogLevel     string        `yaml:"log_level" mapstructure:"log_level"`
	LogConfig    string        `yaml:"log_config" mapstructure:"log_config"`
	Engine       string        `yaml:"engine" mapstructure:"engine"`
	MatchTimeout time.Duration `yaml:"match_timeout" mapstructure:"match_timeout"`
	IgnoreCase   bool          `yaml:"ignore_case" mapstructure:"ignore_case"`
	CacheSize    int           `yaml:"cache_size" mapstructure:"cache_size"`
}

// Default returns the config, that is used without config file.
func Default() *Config {
	return &Config{
		LogLevel:  DefaultLogLevel,
		LogConfig: DefaultLogConfig,
		Engine:    engine.BackendAuto.String(),
		CacheSize: DefaultCacheSize,
	}
}

// Load reads the YAML file at the given path.
// Missing fields keep their default values.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("unable to read yaml config file: %w", err)
	}

	cfg, err := Parse(raw)
	if err != nil {
		return nil, xerrors.Errorf("unable to parse yaml config %s: %w", path, err)
	}

	logger.Log.Debug("config loaded", zap.String("path", path))
	return cfg, nil
}

// Parse parses a YAML document into a config.
// Environment variables in string values (`${VAR}`) are substituted and unknown fields are rejected.
func Parse(rawData []byte) (*Config, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(rawData, &raw); err != nil {
		return nil, xerrors.Errorf("unable to parse yaml: %w", err)
	}

	cfg := Default()
	if raw == nil {
		return cfg, nil
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(StringToDurationHookFunc()),
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to prepare decoder: %w", err)
	}

	if err := decoder.Decode(substituteEnv(raw)); err != nil {
		return nil, xerrors.Errorf("failed to decode: %w", err)
	}

	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		return nil, xerrors.Errorf("unknown fields: %s", strings.Join(md.Unused, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values of the config.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return xerrors.Errorf("invalid log_level: %w", err)
	}
	if err := logger.ApplyLogConfig(new(zap.Config), c.LogConfig); err != nil {
		return xerrors.Errorf("invalid log_config: %w", err)
	}
	if _, err := c.Backend(); err != nil {
		return xerrors.Errorf("invalid engine: %w", err)
	}
	if c.MatchTimeout < 0 {
		return xerrors.Errorf("match_timeout must not be negative, got %s", c.MatchTimeout)
	}
	if c.CacheSize < 0 {
		return xerrors.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}

	return nil
}

// Backend returns the configured regex engine.
func (c *Config) Backend() (engine.Backend, error) {
	return engine.ParseBackend(c.Engine)
}

// EngineOptions converts the config into options for `engine.Compile`.
func (c *Config) EngineOptions() ([]engine.Option, error) {
	b, err := c.Backend()
	if err != nil {
		return nil, err
	}

	return []engine.Option{
		engine.WithBackend(b),
		engine.WithMatchTimeout(c.MatchTimeout),
		engine.WithIgnoreCase(c.IgnoreCase),
	}, nil
}

// StringToDurationHookFunc decodes strings like "1s" into `time.Duration`.
func StringToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		// Check if the source is a string and the target is time.Duration
		if f.Kind() == reflect.String && t == reflect.TypeOf(time.Duration(0)) {
			return time.ParseDuration(data.(string))
		}
		return data, nil
	}
}

// substituteEnv recursively iterates over an interface{} (which might be a string,
// a map, or a slice) and applies os.ExpandEnv to all string values.
func substituteEnv(val interface{}) interface{} {
	switch v := val.(type) {
	case string:
		return os.ExpandEnv(v)
	case map[string]interface{}:
		for key, inner := range v {
			v[key] = substituteEnv(inner)
		}
		return v
	case []interface{}:
		for i, inner := range v {
			v[i] = substituteEnv(inner)
		}
		return v
	default:
		return v
	}
}
