package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Seed   SeedConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host            string        `mapstructure:"HOST"`
	Port            int           `mapstructure:"PORT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	Environment     string        `mapstructure:"ENVIRONMENT"` // development, staging, production
	AllowedOrigins  string        `mapstructure:"ALLOWED_ORIGINS"`
}

// LLMConfig holds text-generation provider configuration. With no key or
// host set the service runs entirely on the local heuristic.
type LLMConfig struct {
	DefaultProvider string `mapstructure:"LLM_DEFAULT_PROVIDER"`
	GoogleAPIKey    string `mapstructure:"GOOGLE_AI_API_KEY"`
	GoogleModel     string `mapstructure:"GOOGLE_AI_MODEL"`
	AnthropicAPIKey string `mapstructure:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `mapstructure:"ANTHROPIC_MODEL"`
	OpenAIAPIKey    string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel     string `mapstructure:"OPENAI_MODEL"`
	OllamaHost      string `mapstructure:"OLLAMA_HOST"`
	OllamaModel     string `mapstructure:"OLLAMA_MODEL"`
}

// Configured reports whether any provider is set up
func (c *LLMConfig) Configured() bool {
	return c.GoogleAPIKey != "" || c.AnthropicAPIKey != "" || c.OpenAIAPIKey != "" || c.OllamaHost != ""
}

// SeedConfig controls demo-data loading
type SeedConfig struct {
	DemoData bool `mapstructure:"SEED_DEMO_DATA"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/allocate/")

	// Ignore error if config file doesn't exist
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideFromEnv(&config)

	return &config, nil
}

// overrideFromEnv reads common environment variables and overrides config
// values (safety net for viper key mismatches on PaaS platforms)
func overrideFromEnv(config *Config) {
	if val := os.Getenv("ENVIRONMENT"); val != "" {
		config.Server.Environment = val
	}
	if val := os.Getenv("ALLOWED_ORIGINS"); val != "" {
		config.Server.AllowedOrigins = val
	}
	if val := os.Getenv("LLM_DEFAULT_PROVIDER"); val != "" {
		config.LLM.DefaultProvider = val
	}
	if val := os.Getenv("GOOGLE_AI_API_KEY"); val != "" {
		config.LLM.GoogleAPIKey = val
	}
	if val := os.Getenv("ANTHROPIC_API_KEY"); val != "" {
		config.LLM.AnthropicAPIKey = val
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		config.LLM.OpenAIAPIKey = val
	}
	if val := os.Getenv("OLLAMA_HOST"); val != "" {
		config.LLM.OllamaHost = val
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.HOST", "0.0.0.0")
	v.SetDefault("Server.PORT", 8080)
	v.SetDefault("Server.SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("Server.ENVIRONMENT", "development")
	v.SetDefault("Server.ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("LLM.GOOGLE_AI_MODEL", "gemini-2.0-flash")
	v.SetDefault("LLM.ANTHROPIC_MODEL", "claude-sonnet-4-20250514")
	v.SetDefault("LLM.OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("LLM.OLLAMA_MODEL", "llama3.2")
	v.SetDefault("Seed.SEED_DEMO_DATA", true)
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// loadEnvFile loads .env from the working dir or a parent (for running
// from cmd/)
func loadEnvFile() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for i := 0; i < 4; i++ {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			_ = godotenv.Load(candidate)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
