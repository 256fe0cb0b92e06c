package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Gmaps     GmapsConfig     `yaml:"gmaps" mapstructure:"gmaps"`
	Reddit    RedditConfig    `yaml:"reddit" mapstructure:"reddit"`
	Scout     ScoutConfig     `yaml:"scout" mapstructure:"scout"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// GmapsConfig holds Google Maps Platform settings.
type GmapsConfig struct {
	Key       string  `yaml:"key" mapstructure:"key"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// RedditConfig holds Reddit API settings.
type RedditConfig struct {
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// ScoutConfig tunes the recommendation pipeline.
type ScoutConfig struct {
	SearchRadiusM      int `yaml:"search_radius_m" mapstructure:"search_radius_m"`
	MaxPlacePages      int `yaml:"max_place_pages" mapstructure:"max_place_pages"`
	MaxRecommendations int `yaml:"max_recommendations" mapstructure:"max_recommendations"`
	DisplayAmenityCap  int `yaml:"display_amenity_cap" mapstructure:"display_amenity_cap"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Secrets default to empty so AutomaticEnv can bind them.
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("gmaps.key", "")
	v.SetDefault("gmaps.rate_limit", 5.0)
	v.SetDefault("reddit.user_agent", "hoodscout/1.0 (neighborhood research)")
	v.SetDefault("scout.search_radius_m", 8000)
	v.SetDefault("scout.max_place_pages", 3)
	v.SetDefault("scout.max_recommendations", 5)
	v.SetDefault("scout.display_amenity_cap", 10)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Dump renders the effective configuration as YAML with secrets redacted.
func (c Config) Dump() (string, error) {
	redacted := c
	if redacted.Anthropic.Key != "" {
		redacted.Anthropic.Key = "[redacted]"
	}
	if redacted.Gmaps.Key != "" {
		redacted.Gmaps.Key = "[redacted]"
	}

	out, err := yaml.Marshal(redacted)
	if err != nil {
		return "", eris.Wrap(err, "config: marshal yaml")
	}
	return string(out), nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
