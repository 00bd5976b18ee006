package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string
	HTTPPort        string
	DatabaseDSN     string
	JWTSecret       string
	CORSOrigins     string
	LogLevel        string
	OverdueInterval int // minutes between overdue-order scans; 0 disables the scheduler
}

// Load reads configuration from environment variables, with an optional .env
// file for local development. Env vars win over the file.
func Load() *Config {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // file is optional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=wms port=5432 sslmode=disable")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OVERDUE_SCAN_MINUTES", 15)

	cfg := &Config{
		Env:             v.GetString("APP_ENV"),
		HTTPPort:        v.GetString("HTTP_PORT"),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		CORSOrigins:     v.GetString("CORS_ALLOWED_ORIGINS"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		OverdueInterval: v.GetInt("OVERDUE_SCAN_MINUTES"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set, refusing to start")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}

	return cfg
}
