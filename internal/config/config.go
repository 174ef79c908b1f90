package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"`       // current application environment (local, dev, production etc)
	TelegramAPIToken string    `mapstructure:"-"`         // Telegram API token loaded from environment
	Telegram         Telegram  `mapstructure:"telegram"`  // bot delivery section
	Countries        Countries `mapstructure:"countries"` // country data source section
	Quiz             Quiz      `mapstructure:"quiz"`      // quiz sizes
	HTTP             HTTP      `mapstructure:"http"`      // JSON API section
}

// Telegram contains bot delivery settings.
type Telegram struct {
	Enabled bool `mapstructure:"enabled"` // run the bot update loop
	Debug   bool `mapstructure:"debug"`   // log raw bot API traffic
}

// Countries contains country data source settings.
type Countries struct {
	URL             string        `mapstructure:"url"`              // REST Countries endpoint
	SourceFile      string        `mapstructure:"source_file"`      // JSON snapshot used instead of the URL when set
	Timeout         time.Duration `mapstructure:"timeout"`          // HTTP client timeout for one fetch
	RefreshSchedule string        `mapstructure:"refresh_schedule"` // cron spec for reloads, empty disables
}

// Quiz contains game sizing.
type Quiz struct {
	PoolSize      int `mapstructure:"pool_size"`      // countries offered per game
	QuestionCount int `mapstructure:"question_count"` // questions per quiz
}

// HTTP contains JSON API settings.
type HTTP struct {
	Enabled        bool     `mapstructure:"enabled"`         // serve the API
	Addr           string   `mapstructure:"addr"`            // listen address
	AllowedOrigins []string `mapstructure:"allowed_origins"` // CORS origins
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Pick up a local .env file when there is one.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("telegram.enabled", true)
	v.SetDefault("telegram.debug", false)
	v.SetDefault("countries.url", "https://restcountries.com/v3.1/all?fields=name,cca2,capital,population,area,region,languages,currencies,timezones,flags")
	v.SetDefault("countries.source_file", "")
	v.SetDefault("countries.timeout", "15s")
	v.SetDefault("countries.refresh_schedule", "@every 6h")
	v.SetDefault("quiz.pool_size", 10)
	v.SetDefault("quiz.question_count", 10)
	v.SetDefault("http.enabled", true)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{"*"})

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.Telegram.Enabled && cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
