package config

import (
	"os"
	"strconv"
)

type Config struct {
	LogLevel     string
	LogFormat    string
	DatabaseURL  string
	SettingsPath string
	ReportDir    string
	Seeds        int
	SweepKind    string
}

func Load() *Config {
	return &Config{
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		SettingsPath: getEnv("SETTINGS_PATH", "settings.json"),
		ReportDir:    getEnv("REPORT_DIR", "reports"),
		Seeds:        getEnvInt("SWEEP_SEEDS", 6),
		SweepKind:    getEnv("SWEEP_KIND", "grid"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
