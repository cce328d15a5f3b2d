package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Pipeline versions understood by the loan scorer.
const (
	PipelineManualOrdinal = "manual-ordinal"
	PipelineDerivedLetter = "derived-letter"
)

// ModelVariant binds a selectable model name to its asset file and pipeline version.
// Encoder and Scaler override the shared assets; a derived-letter variant must name
// its own encoder and is unscaled unless it names a scaler.
type ModelVariant struct {
	Name     string `yaml:"name"`
	File     string `yaml:"file"`
	Pipeline string `yaml:"pipeline" default:"manual-ordinal"`
	Encoder  string `yaml:"encoder"`
	Scaler   string `yaml:"scaler"`
}

// EncoderFile returns the encoder asset used by the variant.
func (c *Config) EncoderFile(m ModelVariant) string {
	if m.Encoder != "" || m.Pipeline == PipelineDerivedLetter {
		return m.Encoder
	}
	return c.Assets.Encoder
}

// ScalerFile returns the scaler asset used by the variant, or "" when it has none.
func (c *Config) ScalerFile(m ModelVariant) string {
	if m.Scaler != "" || m.Pipeline == PipelineDerivedLetter {
		return m.Scaler
	}
	return c.Assets.Scaler
}

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"500ms"`
		CORSOrigins     string        `yaml:"cors_origins" default:"*"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Assets struct {
		Dir           string         `yaml:"dir" default:"assets"`
		Encoder       string         `yaml:"encoder" default:"ohe_encoder.json"`
		Scaler        string         `yaml:"scaler" default:"scaler.json"`
		DefaultModel  string         `yaml:"default_model"`
		Models        []ModelVariant `yaml:"models"`
		BanknoteModel string         `yaml:"banknote_model" default:"rf_model.json"`
	} `yaml:"assets"`
	Remote struct {
		Timeout time.Duration `yaml:"timeout" default:"3s"`
	} `yaml:"remote"`
	Cache struct {
		Enabled    bool          `yaml:"enabled" default:"true"`
		Backend    string        `yaml:"backend" default:"memory"`
		TTL        time.Duration `yaml:"ttl" default:"5m"`
		MaxEntries int           `yaml:"max_entries" default:"10000"`
		Redis      struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"creditlens:"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	RateLimit struct {
		Capacity     float64 `yaml:"capacity" default:"20"`
		RefillPerSec float64 `yaml:"refill_per_sec" default:"10"`
	} `yaml:"rate_limit"`
}

// Default returns a configuration populated only from struct defaults.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	return &c
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes, applies defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// slice elements are not covered by the first pass
	for i := range c.Assets.Models {
		if err := defaults.Set(&c.Assets.Models[i]); err != nil {
			return nil, fmt.Errorf("config defaults: %w", err)
		}
	}
	if c.Assets.DefaultModel == "" && len(c.Assets.Models) > 0 {
		c.Assets.DefaultModel = c.Assets.Models[0].Name
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CREDITLENS_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("CREDITLENS_ASSETS_DIR"); v != "" {
		c.Assets.Dir = v
	}
	if v := os.Getenv("CREDITLENS_DEFAULT_MODEL"); v != "" {
		c.Assets.DefaultModel = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		c.Server.CORSOrigins = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	return nil
}

// Variant returns the configured model variant by name.
func (c *Config) Variant(name string) (ModelVariant, bool) {
	for _, m := range c.Assets.Models {
		if m.Name == name {
			return m, true
		}
	}
	return ModelVariant{}, false
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Assets.Dir == "" {
		return fmt.Errorf("assets.dir is required")
	}
	if c.Assets.Encoder == "" {
		return fmt.Errorf("assets.encoder is required")
	}
	if len(c.Assets.Models) == 0 {
		return fmt.Errorf("assets.models cannot be empty")
	}
	seen := make(map[string]bool, len(c.Assets.Models))
	for i, m := range c.Assets.Models {
		if m.Name == "" || m.File == "" {
			return fmt.Errorf("assets.models[%d]: name and file are required", i)
		}
		if seen[m.Name] {
			return fmt.Errorf("assets.models[%d]: duplicate name '%s'", i, m.Name)
		}
		seen[m.Name] = true
		if m.Pipeline != PipelineManualOrdinal && m.Pipeline != PipelineDerivedLetter {
			return fmt.Errorf("assets.models[%d].pipeline must be '%s' or '%s', got '%s'",
				i, PipelineManualOrdinal, PipelineDerivedLetter, m.Pipeline)
		}
		if m.Pipeline == PipelineDerivedLetter && m.Encoder == "" {
			return fmt.Errorf("assets.models[%d]: %s variant '%s' needs its own encoder", i, PipelineDerivedLetter, m.Name)
		}
	}
	if c.Assets.DefaultModel != "" && !seen[c.Assets.DefaultModel] {
		return fmt.Errorf("assets.default_model '%s' is not a configured model", c.Assets.DefaultModel)
	}
	switch c.Cache.Backend {
	case "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.backend must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Backend)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}
