// internal/common/config/loader.go
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

// DefaultPrompt is the system instruction used when the request body carries
// no ai_prompt override.
const DefaultPrompt = "Summarize the following support ticket, including its articles, " +
	"in a few short paragraphs. Focus on the customer's request and the current state of the conversation."

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like KIX_PASSWORD, AZURE_OPENAI_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or the project root so
// that running from cmd/server or from tests picks up the same file.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string config values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills credentials from plain environment variables when
// the config file left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.KIX.BaseURL == "" {
		if val := os.Getenv("KIX_BASE_URL"); val != "" {
			cfg.KIX.BaseURL = val
		}
	}
	if cfg.KIX.Username == "" {
		if val := os.Getenv("KIX_USERNAME"); val != "" {
			cfg.KIX.Username = val
		}
	}
	if cfg.KIX.Password == "" {
		if val := os.Getenv("KIX_PASSWORD"); val != "" {
			cfg.KIX.Password = val
		}
	}

	if cfg.AzureOpenAI.Endpoint == "" {
		if val := os.Getenv("AZURE_OPENAI_ENDPOINT"); val != "" {
			cfg.AzureOpenAI.Endpoint = val
		}
	}
	if cfg.AzureOpenAI.APIKey == "" {
		if val := os.Getenv("AZURE_OPENAI_API_KEY"); val != "" {
			cfg.AzureOpenAI.APIKey = val
		}
	}
	if cfg.AzureOpenAI.Deployment == "" {
		if val := os.Getenv("AZURE_OPENAI_DEPLOYMENT"); val != "" {
			cfg.AzureOpenAI.Deployment = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.KIX.SummaryField == "" {
		cfg.KIX.SummaryField = "AISummary"
	}
	if cfg.KIX.Timeout == 0 {
		cfg.KIX.Timeout = 30000
	}

	if cfg.AzureOpenAI.APIVersion == "" {
		cfg.AzureOpenAI.APIVersion = "2024-02-01"
	}
	// Zero is a meaningful temperature, so absence is detected through viper
	// rather than through the zero value.
	if !viper.IsSet("azure_openai.temperature") && cfg.AzureOpenAI.Temperature == 0 {
		cfg.AzureOpenAI.Temperature = 0.2
	}
	if cfg.AzureOpenAI.Prompt == "" {
		cfg.AzureOpenAI.Prompt = DefaultPrompt
	}
	if cfg.AzureOpenAI.Timeout == 0 {
		cfg.AzureOpenAI.Timeout = 60000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields. The process refuses
// to start when any required value is missing.
func validateConfig(cfg *Config) error {
	if cfg.KIX.BaseURL == "" {
		return fmt.Errorf("kix.base_url is required")
	}
	if cfg.KIX.Username == "" {
		return fmt.Errorf("kix.username is required")
	}
	if cfg.KIX.Password == "" {
		return fmt.Errorf("kix.password is required")
	}

	if cfg.AzureOpenAI.Endpoint == "" {
		return fmt.Errorf("azure_openai.endpoint is required")
	}
	if cfg.AzureOpenAI.APIKey == "" {
		return fmt.Errorf("azure_openai.api_key is required")
	}
	if cfg.AzureOpenAI.Deployment == "" {
		return fmt.Errorf("azure_openai.deployment is required")
	}

	if cfg.AzureOpenAI.Temperature < 0 {
		return fmt.Errorf("azure_openai.temperature must be >= 0")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
