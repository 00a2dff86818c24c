package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config es el estado de arranque del proceso: se carga una vez en main
// y se pasa explícitamente a quien lo necesite (token service, storage).
type Config struct {
	Addr        string
	Environment string
	DBDSN       string
	JWTSecret   string
}

func Load() (*Config, error) {
	// .env es opcional; si no existe usamos las env vars del proceso.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:        ":8080",
		Environment: os.Getenv("ENV"),
		DBDSN:       os.Getenv("DB_DSN"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Ambos son fatales al arranque: sin DSN no hay storage,
	// sin secret no se puede firmar ni validar tokens.
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}
