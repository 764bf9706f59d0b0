package config

import (
	"log"
	"os"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Access modes. Gated is the login-required deployment: listings are
// per-owner, edit/delete check ownership and /admin sits behind is_admin.
// Open is the guest-default deployment: everything is reachable without a
// session and anonymous submissions are owned by the seeded guest user.
const (
	ModeGated = "gated"
	ModeOpen  = "open"
)

type Config struct {
	Addr        string        `env:"SERVER_ADDRESS" validate:"hostname_port"`
	DatabaseDSN string        `env:"DATABASE_URL" validate:"required"`
	RedisDSN    string        `env:"REDIS_URL" validate:"required"`
	LogLevel    string        `env:"LOG_LEVEL" validate:"loglevel"`
	Mode        string        `env:"ACCESS_MODE" validate:"oneof=gated open"`
	SessionTTL  time.Duration `env:"SESSION_TTL"`
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	switch fieldLevel.Field().String() {
	case "debug", "info", "warn", "error", "fatal":
		return true
	}
	return false
}

func validate(cfg Config) error {
	v := validator.New()
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}
	return v.Struct(cfg)
}

// Load reads configuration from the environment, with a .env file as
// fallback outside production.
func Load() (Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, continuing")
		}
	}

	cfg := Config{
		Addr:       ":8080",
		LogLevel:   "info",
		Mode:       ModeGated,
		SessionTTL: 24 * time.Hour,
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
