package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const DEFAULT_ENV_FILE string = ".env"

// Config is loaded once at start and passed by value afterwards.
type Config struct {
	Port string `env:"PORT" envDefault:"5000"`

	MongoURI        string `env:"MONGODB_URI,required,notEmpty"`
	MongoDatabase   string `env:"MONGODB_DATABASE" envDefault:"event-registration"`
	MongoCollection string `env:"MONGODB_COLLECTION" envDefault:"events"`

	JWTSecret         string        `env:"JWT_SECRET" envDefault:"dev_secret"`
	AdminUsername     string        `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword     string        `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	AdminTokenTTL     time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"8h"`

	SeedSampleEvents bool   `env:"SEED_SAMPLE_EVENTS" envDefault:"false"`
	StaticDir        string `env:"STATIC_DIR"`
}

// LoadEnvFile exports the variables of a dotenv file into the process environment.
// A missing file is not an error; variables already set are left untouched.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load env file %v: %w", path, err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AdminTokenTTL <= 0 {
		return Config{}, fmt.Errorf("ADMIN_TOKEN_TTL must be positive, got %v", cfg.AdminTokenTTL)
	}
	return cfg, nil
}

func (c Config) ListenAddr() string {
	return ":" + c.Port
}
