package config

import "os"

type Config struct {
	Port          string
	GinMode       string
	DatabaseURL   string
	SessionSecret string
	SMTP          SMTPConfig
	LLM           LLMConfig
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type LLMConfig struct {
	BaseURL string
	Token   string
	Model   string
}

// Load reads configuration from the process environment. godotenv runs in
// main before this, so .env values are visible here.
func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "8080"),
		GinMode:       getenv("GIN_MODE", "debug"),
		DatabaseURL:   getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=truefeedback port=5432 sslmode=disable"),
		SessionSecret: getenv("SESSION_SECRET", "secret_key_change_me"),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     os.Getenv("SMTP_PORT"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     os.Getenv("SMTP_FROM"),
		},
		LLM: LLMConfig{
			BaseURL: getenv("LLM_BASE_URL", "https://api.perplexity.ai"),
			Token:   os.Getenv("LLM_TOKEN"),
			Model:   getenv("LLM_MODEL", "sonar-pro"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
