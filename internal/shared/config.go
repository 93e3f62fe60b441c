package shared

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv        string `mapstructure:"APP_ENV"`
	HTTPAddr      string `mapstructure:"HTTP_ADDR"`
	AssistantAddr string `mapstructure:"ASSISTANT_ADDR"`
	MetricsAddr   string `mapstructure:"METRICS_ADDR"`

	ToolsMode   string        `mapstructure:"TOOLS_MODE"` // remote|local
	ToolsURL    string        `mapstructure:"TOOLS_URL"`
	ToolTimeout time.Duration `mapstructure:"TOOL_TIMEOUT"`

	LLMProvider  string        `mapstructure:"LLM_PROVIDER"` // ollama|gemini|static
	OllamaURL    string        `mapstructure:"OLLAMA_URL"`
	OllamaModel  string        `mapstructure:"OLLAMA_MODEL"`
	GeminiAPIKey string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string        `mapstructure:"GEMINI_MODEL"`
	LLMTimeout   time.Duration `mapstructure:"LLM_TIMEOUT"`
	LLMRPS       int           `mapstructure:"LLM_RPS"`

	HistoryStore string        `mapstructure:"HISTORY_STORE"` // memory|redis
	HistoryTTL   time.Duration `mapstructure:"HISTORY_TTL"`
	RedisAddr    string        `mapstructure:"REDIS_ADDR"`
	RedisPass    string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB      int           `mapstructure:"REDIS_DB"`

	BookingStore string `mapstructure:"BOOKING_STORE"` // memory|mysql
	MySQLDSN     string `mapstructure:"MYSQL_DSN"`

	AssistantMode string `mapstructure:"ASSISTANT_MODE"` // cli|web
	RateLimitRPM  int    `mapstructure:"RATE_LIMIT_RPM"`
}

var defaults = map[string]any{
	"APP_ENV":        "prod",
	"HTTP_ADDR":      ":5000",
	"ASSISTANT_ADDR": ":8501",
	"METRICS_ADDR":   ":9100",
	"TOOLS_MODE":     "remote",
	"TOOLS_URL":      "http://localhost:5000/mcp",
	"TOOL_TIMEOUT":   60 * time.Second,
	"LLM_PROVIDER":   "ollama",
	"OLLAMA_URL":     "http://localhost:11434",
	"OLLAMA_MODEL":   "gemma3",
	"GEMINI_API_KEY": "",
	"GEMINI_MODEL":   "gemini-1.5-flash",
	"LLM_TIMEOUT":    60 * time.Second,
	"LLM_RPS":        2,
	"HISTORY_STORE":  "memory",
	"HISTORY_TTL":    24 * time.Hour,
	"REDIS_ADDR":     "localhost:6379",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       0,
	"BOOKING_STORE":  "memory",
	"MYSQL_DSN":      "root:root@tcp(localhost:3306)/concierge?parseTime=true&charset=utf8mb4&loc=UTC",
	"ASSISTANT_MODE": "cli",
	"RATE_LIMIT_RPM": 120,
}

// Load reads config.yaml (if present, from . or ./config) overlaid by the environment.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		log.Debug().Msg("no config file found, using environment only")
	}
	return FromViper(v)
}

// FromViper applies defaults and the environment to v and decodes the result.
func FromViper(v *viper.Viper) (Config, error) {
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	if c.LLMProvider == "gemini" && c.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty")
	}
	return c, nil
}

func (c Config) validate() error {
	oneOf := func(key, val string, allowed ...string) error {
		for _, a := range allowed {
			if val == a {
				return nil
			}
		}
		return fmt.Errorf("%s=%q: want one of %v", key, val, allowed)
	}
	return errors.Join(
		oneOf("TOOLS_MODE", c.ToolsMode, "remote", "local"),
		oneOf("LLM_PROVIDER", c.LLMProvider, "ollama", "gemini", "static"),
		oneOf("HISTORY_STORE", c.HistoryStore, "memory", "redis"),
		oneOf("BOOKING_STORE", c.BookingStore, "memory", "mysql"),
		oneOf("ASSISTANT_MODE", c.AssistantMode, "cli", "web"),
	)
}

func (c Config) IsDev() bool { return c.AppEnv == "dev" || c.AppEnv == "development" }
