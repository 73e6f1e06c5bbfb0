package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort             string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL          string `env:"DATABASE_URL,required"`
	JWTSecret            string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes  int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`
	JWTRefreshTTLMinutes int    `env:"JWT_REFRESH_TTL_MINUTES" envDefault:"43200"`

	ModelPath string `env:"MODEL_PATH" envDefault:"model.onnx"`
	ModelType string `env:"MODEL_TYPE" envDefault:"onnx"`

	// Política clínica: umbral de confianza para resultados benignos y
	// confianza por defecto cuando el modelo no expone probabilidades.
	BenignConfidenceThreshold float64 `env:"BENIGN_CONFIDENCE_THRESHOLD" envDefault:"0.70"`
	FallbackConfidence        float64 `env:"FALLBACK_CONFIDENCE" envDefault:"0.9"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
