// internal/common/config/config.go
package config

// Config is the main application configuration struct. It is built once at
// startup and passed explicitly into each component's constructor.
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	KIX         KIXConfig         `mapstructure:"kix"`
	AzureOpenAI AzureOpenAIConfig `mapstructure:"azure_openai"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the inbound HTTP listener settings.
type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

// KIXConfig holds credentials and defaults for the KIX ticketing REST API.
type KIXConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	SummaryField string `mapstructure:"summary_field"`
	Timeout      int    `mapstructure:"timeout"` // milliseconds
}

// AzureOpenAIConfig holds the completion endpoint settings and the request
// defaults that the analyze body may override per call.
type AzureOpenAIConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	APIKey     string `mapstructure:"api_key"`
	Deployment string `mapstructure:"deployment"`
	APIVersion string `mapstructure:"api_version"`
	// Temperature defaults to 0.2 only when the key is absent from the
	// config; an explicit 0 is kept as-is.
	Temperature float64 `mapstructure:"temperature"`
	Prompt      string  `mapstructure:"prompt"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
	// MaxInputTokens bounds the serialized ticket payload sent to the
	// completion endpoint. 0 disables the check and passes the payload
	// through whole.
	MaxInputTokens int `mapstructure:"max_input_tokens"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
