package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingAPIToken is returned when no LLM provider token is configured.
var ErrMissingAPIToken = errors.New("no API token found, set LLM_API_TOKEN (or REPLICATE_API_TOKEN) in your .env file")

type Config struct {
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	UploadDir      string        `mapstructure:"upload_dir"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	UploadsToken   string        `mapstructure:"uploads_token"`
	ExposeErrors   bool          `mapstructure:"expose_errors"`
	LogLevel       string        `mapstructure:"log_level"`
	LLM            LLMConfig     `mapstructure:"llm"`
	Chunking       ChunkConfig   `mapstructure:"chunking"`
	Prompt         PromptConfig  `mapstructure:"prompt"`
	ShutdownGrace  time.Duration `mapstructure:"shutdown_grace"`
}

type LLMConfig struct {
	Provider     string        `mapstructure:"provider"`
	BaseURL      string        `mapstructure:"base_url"`
	Model        string        `mapstructure:"model"`
	APIToken     string        `mapstructure:"api_token"`
	MaxNewTokens int           `mapstructure:"max_new_tokens"`
	Temperature  float32       `mapstructure:"temperature"`
	TopK         int           `mapstructure:"top_k"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type ChunkConfig struct {
	Size      int    `mapstructure:"size"`
	Overlap   int    `mapstructure:"overlap"`
	Separator string `mapstructure:"separator"`
}

type PromptConfig struct {
	ExcerptChars int `mapstructure:"excerpt_chars"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("max_upload_bytes", 16<<20)
	v.SetDefault("uploads_token", "")
	v.SetDefault("expose_errors", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("shutdown_grace", 10*time.Second)

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.max_new_tokens", 100)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.top_k", 50)
	v.SetDefault("llm.timeout", 0)

	v.SetDefault("chunking.size", 1000)
	v.SetDefault("chunking.overlap", 0)
	v.SetDefault("chunking.separator", "\n\n")

	v.SetDefault("prompt.excerpt_chars", 500)
}

// LoadConfig reads configuration from the optional yaml file at configPath and
// from the environment. An empty configPath skips the file.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// nested keys map to env names like LLM_MAX_NEW_TOKENS
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("host", "HOST")
	v.BindEnv("port", "PORT")
	v.BindEnv("upload_dir", "UPLOAD_DIR")
	v.BindEnv("uploads_token", "UPLOADS_TOKEN")
	v.BindEnv("expose_errors", "EXPOSE_ERRORS")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("llm.provider", "LLM_PROVIDER")
	v.BindEnv("llm.base_url", "LLM_BASE_URL")
	v.BindEnv("llm.model", "LLM_MODEL")
	v.BindEnv("llm.api_token", "LLM_API_TOKEN", "REPLICATE_API_TOKEN")
	v.BindEnv("llm.timeout", "LLM_TIMEOUT")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.LLM.APIToken == "" {
		return ErrMissingAPIToken
	}
	switch c.LLM.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported llm provider: %q", c.LLM.Provider)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.Chunking.Size <= 0 {
		return fmt.Errorf("chunking.size must be positive, got %d", c.Chunking.Size)
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		return fmt.Errorf("chunking.overlap must be in [0, %d), got %d", c.Chunking.Size, c.Chunking.Overlap)
	}
	if c.Prompt.ExcerptChars <= 0 {
		return fmt.Errorf("prompt.excerpt_chars must be positive, got %d", c.Prompt.ExcerptChars)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}
