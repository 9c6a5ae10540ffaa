package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        App        `mapstructure:"app"`
	AI         AI         `mapstructure:"ai"`
	Search     Search     `mapstructure:"search"`
	Email      Email      `mapstructure:"email"`
	GoogleDocs GoogleDocs `mapstructure:"google_docs"`
	Ontraport  Ontraport  `mapstructure:"ontraport"`
	Server     Server     `mapstructure:"server"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	LogLevel   string `mapstructure:"log_level"`
	ConfigFile string `mapstructure:"config_file"`
}

// AI holds AI/LLM configuration
type AI struct {
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Perplexity PerplexityConfig `mapstructure:"perplexity"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

// PerplexityConfig holds Perplexity (OpenAI-compatible) configuration
type PerplexityConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Search holds search provider configuration
type Search struct {
	DefaultProvider string          `mapstructure:"default_provider"`
	MaxResults      int             `mapstructure:"max_results"`
	Timeout         string          `mapstructure:"timeout"`
	Providers       SearchProviders `mapstructure:"providers"`
}

// SearchProviders holds configuration for all search providers
type SearchProviders struct {
	Tavily  TavilyConfig  `mapstructure:"tavily"`
	SerpAPI SerpAPIConfig `mapstructure:"serpapi"`
}

// TavilyConfig holds Tavily search configuration
type TavilyConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// SerpAPIConfig holds SerpAPI configuration
type SerpAPIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Email holds SMTP delivery configuration
type Email struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	FromName string `mapstructure:"from_name"`
}

// GoogleDocs holds Google Docs export configuration
type GoogleDocs struct {
	CredentialsJSON string `mapstructure:"credentials_json"`
	FolderID        string `mapstructure:"folder_id"`
}

// Ontraport holds CRM push configuration
type Ontraport struct {
	AppID     string   `mapstructure:"app_id"`
	APIKey    string   `mapstructure:"api_key"`
	FromEmail string   `mapstructure:"from_email"`
	FromName  string   `mapstructure:"from_name"`
	ObjectIDs []string `mapstructure:"object_ids"`
}

// Server holds HTTP server configuration
type Server struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

var globalConfig *Config

// Load loads the configuration from .env, config file, and environment.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".brief")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if configFile != "" {
		config.App.ConfigFile = viper.ConfigFileUsed()
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.max_tokens", 8192)
	viper.SetDefault("ai.gemini.temperature", 0.7)
	viper.SetDefault("ai.perplexity.model", "sonar-pro")
	viper.SetDefault("ai.perplexity.base_url", "https://api.perplexity.ai")

	viper.SetDefault("search.default_provider", "tavily")
	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.timeout", "30s")

	viper.SetDefault("email.smtp_host", "smtp.gmail.com")
	viper.SetDefault("email.smtp_port", 587)
	viper.SetDefault("email.from_name", "BriteCo Brief")

	viper.SetDefault("ontraport.from_email", "agent@brite.co")
	viper.SetDefault("ontraport.from_name", "BriteCo Brief")
	viper.SetDefault("ontraport.object_ids", []string{"10004", "10007"})

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})
	bindEnvKeys("ai.perplexity.api_key", []string{"PERPLEXITY_API_KEY"})

	bindEnvKeys("search.providers.tavily.api_key", []string{"TAVILY_API_KEY"})
	bindEnvKeys("search.providers.serpapi.api_key", []string{"SERPAPI_API_KEY", "SERP_API_KEY"})

	bindEnvKeys("email.smtp_host", []string{"SMTP_SERVER", "SMTP_HOST"})
	bindEnvKeys("email.smtp_port", []string{"SMTP_PORT"})
	bindEnvKeys("email.username", []string{"SMTP_USER"})
	bindEnvKeys("email.password", []string{"SMTP_PASSWORD"})

	bindEnvKeys("google_docs.credentials_json", []string{"GOOGLE_DOCS_CREDENTIALS"})
	bindEnvKeys("google_docs.folder_id", []string{"GOOGLE_DOCS_FOLDER_ID"})

	bindEnvKeys("ontraport.app_id", []string{"ONTRAPORT_APP_ID"})
	bindEnvKeys("ontraport.api_key", []string{"ONTRAPORT_API_KEY"})

	bindEnvKeys("server.port", []string{"PORT"})
}

// bindEnvKeys binds the first matching environment variable to a config key
func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(configKey, value)
			return
		}
	}
}
