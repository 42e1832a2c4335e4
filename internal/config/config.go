package config

import (
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Extract  ExtractConfig  `yaml:"extract"`
	DeepSeek DeepSeekConfig `yaml:"deepseek"`
	DeepAI   DeepAIConfig   `yaml:"deepai"`
	Download DownloadConfig `yaml:"download"`
	Settings SettingsConfig `yaml:"settings"`
	History  HistoryConfig  `yaml:"history"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `yaml:"host" envconfig:"SERVER_HOST" default:"127.0.0.1"`
	Port         int           `yaml:"port" envconfig:"SERVER_PORT" default:"5000"`
	AccessKey    string        `yaml:"access_key" envconfig:"ACCESS_KEY"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"5m"`
}

// LogConfig controls the process-wide slog handler.
type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT" default:"json"` // json or text
}

// ExtractConfig holds blog scraping configuration.
type ExtractConfig struct {
	Timeout      time.Duration `yaml:"timeout" envconfig:"EXTRACT_TIMEOUT" default:"10s"`
	MaxChars     int           `yaml:"max_chars" envconfig:"EXTRACT_MAX_CHARS" default:"5000"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" envconfig:"EXTRACT_MAX_BODY_BYTES" default:"10485760"` // 10MB
	UserAgent    string        `yaml:"user_agent" envconfig:"EXTRACT_USER_AGENT" default:"Mozilla/5.0 (compatible; postcraft/1.0)"`
}

// DeepSeekConfig holds text generation API configuration.
type DeepSeekConfig struct {
	APIKey  string        `yaml:"api_key" envconfig:"DEEPSEEK_API_KEY"`
	BaseURL string        `yaml:"base_url" envconfig:"DEEPSEEK_BASE_URL" default:"https://api.deepseek.com/v1"`
	Model   string        `yaml:"model" envconfig:"DEEPSEEK_MODEL" default:"deepseek-chat"`
	Timeout time.Duration `yaml:"timeout" envconfig:"DEEPSEEK_TIMEOUT" default:"60s"`
}

// DeepAIConfig holds image generation API configuration.
type DeepAIConfig struct {
	APIKey  string        `yaml:"api_key" envconfig:"DEEPAI_API_KEY"`
	BaseURL string        `yaml:"base_url" envconfig:"DEEPAI_BASE_URL" default:"https://api.deepai.org"`
	Timeout time.Duration `yaml:"timeout" envconfig:"DEEPAI_TIMEOUT" default:"30s"`
}

// DownloadConfig holds generated image download configuration.
type DownloadConfig struct {
	Timeout   time.Duration `yaml:"timeout" envconfig:"DOWNLOAD_TIMEOUT" default:"30s"`
	MaxBytes  int64         `yaml:"max_bytes" envconfig:"DOWNLOAD_MAX_BYTES" default:"26214400"` // 25MB
	UserAgent string        `yaml:"user_agent" envconfig:"DOWNLOAD_USER_AGENT" default:"postcraft/1.0"`
}

// SettingsConfig holds the provider key store configuration.
type SettingsConfig struct {
	Path string `yaml:"path" envconfig:"SETTINGS_PATH" default:"app_settings.json"`
	// Secret enables encryption of the settings file at rest when non-empty.
	Secret string `yaml:"secret" envconfig:"SETTINGS_SECRET"`
}

// HistoryConfig holds the run history log configuration.
type HistoryConfig struct {
	Path       string `yaml:"path" envconfig:"HISTORY_PATH" default:"data/history.jsonl"`
	MaxEntries int    `yaml:"max_entries" envconfig:"HISTORY_MAX_ENTRIES" default:"200"`
}

// Load reads configuration from defaults, then the optional YAML file, then
// environment variables. Only variables that are actually set override the
// file.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	// Fills every default, plus whatever the environment sets.
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}

		// The file replaced env values too; put the set ones back.
		env := &Config{}
		if err := envconfig.Process("", env); err != nil {
			return nil, fmt.Errorf("process environment: %w", err)
		}
		overlaySetEnv(reflect.ValueOf(cfg).Elem(), reflect.ValueOf(env).Elem())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// overlaySetEnv copies into dst each field of src whose envconfig variable
// is present in the environment.
func overlaySetEnv(dst, src reflect.Value) {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Struct {
			overlaySetEnv(dst.Field(i), src.Field(i))
			continue
		}
		key := f.Tag.Get("envconfig")
		if key == "" {
			continue
		}
		if _, ok := os.LookupEnv(key); ok {
			dst.Field(i).Set(src.Field(i))
		}
	}
}

// Validate checks that structural configuration values are usable.
// Provider API keys are optional here since requests may supply their own.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Settings.Path == "" {
		return fmt.Errorf("SETTINGS_PATH is required")
	}
	if c.DeepSeek.BaseURL == "" {
		return fmt.Errorf("DEEPSEEK_BASE_URL is required")
	}
	if c.DeepAI.BaseURL == "" {
		return fmt.Errorf("DEEPAI_BASE_URL is required")
	}
	if c.Extract.MaxChars <= 0 {
		return fmt.Errorf("EXTRACT_MAX_CHARS must be positive")
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Log.Format)
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
