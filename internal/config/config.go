package config

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	// Parámetros de facturación por defecto (el request puede sobreescribirlos)
	TasaImpuesto    float64
	DiasVencimiento int
}

func Load() *Config {
	// .env es opcional; en producción las variables vienen del entorno
	if err := godotenv.Load(); err != nil {
		log.Debug("no se encontró archivo .env, usando variables de entorno")
	}

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=taller port=5432 sslmode=disable"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		TasaImpuesto:    0.12,
		DiasVencimiento: 30,
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET no está definido; es obligatorio")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("JWT_SECRET debe tener al menos 32 caracteres")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Warn("CORS_ALLOWED_ORIGINS usa el valor por defecto; define tu dominio en producción")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
