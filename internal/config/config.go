package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port        string
	LogLevel    string
	LogFormat   string
	OMDbAPIKey  string
	OMDbBaseURL string
	SiteBaseURL string
}

// Load reads optional .env files (".env" when no paths are given) into the
// environment and builds a Config from it. Missing files are ignored; variables
// already set in the environment win over file values.
func Load(paths ...string) *Config {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	_ = godotenv.Load(paths...)

	return &Config{
		Port:        GetEnv("PORT", "7000"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		LogFormat:   GetEnv("LOG_FORMAT", "json"),
		OMDbAPIKey:  GetEnv("OMDB_API_KEY", ""),
		OMDbBaseURL: GetEnv("OMDB_BASE_URL", "https://www.omdbapi.com/"),
		SiteBaseURL: GetEnv("SITE_BASE_URL", "https://www.subtitrari-noi.ro"),
	}
}

// GetEnv returns the value of the environment variable named by key, or fallback
// if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}
