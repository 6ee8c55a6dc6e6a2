// Package config loads process-lifetime configuration once at startup.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Report struct {
	// BaseURL of the OpenAI-compatible chat-completions endpoint.
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	// TimeoutSeconds bounds the single blocking report call.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Analysis struct {
	TopN  int     `mapstructure:"top_n"`
	Sigma float64 `mapstructure:"sigma"`
}

type Config struct {
	Server   Server   `mapstructure:"server"`
	Report   Report   `mapstructure:"report"`
	Analysis Analysis `mapstructure:"analysis"`
}

// Load reads the yaml config at path, falling back to defaults for every
// key the file omits. The report API key is deliberately not part of the
// file; it comes from the REPORT_API_KEY environment variable.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("report.base_url", "https://api.openai.com/v1")
	v.SetDefault("report.model", "gpt-4o-mini")
	v.SetDefault("report.timeout_seconds", 60)
	v.SetDefault("analysis.top_n", 5)
	v.SetDefault("analysis.sigma", 2.0)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// APIKey returns the report collaborator credential from the environment.
func APIKey() string {
	return os.Getenv("REPORT_API_KEY")
}
