package config

import (
	"os"
)

// Config holds every runtime setting the server reads from the environment.
type Config struct {
	Port          string
	AllowedOrigin string
	DBPath        string
	LLMAPIKey     string
	LLMBaseURL    string
	LLMModel      string
	AppEnv        string
}

const (
	defaultPort    = "3000"
	defaultOrigin  = "http://localhost:5173"
	defaultDBPath  = "supportchat.db"
	defaultModel   = "gpt-4o-mini"
	defaultBaseURL = "https://api.openai.com/v1/"
)

// Load reads the configuration from environment variables, filling in
// defaults for everything except the LLM credential. A missing credential
// is not an error: the chat endpoint degrades to a fixed fallback reply.
func Load() *Config {
	cfg := &Config{
		Port:          os.Getenv("PORT"),
		AllowedOrigin: os.Getenv("FRONTEND_URL"),
		DBPath:        os.Getenv("DB_PATH"),
		LLMAPIKey:     os.Getenv("LLM_API_KEY"),
		LLMBaseURL:    os.Getenv("LLM_BASE_URL"),
		LLMModel:      os.Getenv("LLM_MODEL"),
		AppEnv:        os.Getenv("APP_ENV"),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = defaultOrigin
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = defaultModel
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = defaultBaseURL
	}
	return cfg
}

// IsDev reports whether error details should be included in 500 responses.
func (c *Config) IsDev() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

// LLMEnabled reports whether a completion credential is configured.
func (c *Config) LLMEnabled() bool {
	return c.LLMAPIKey != ""
}
