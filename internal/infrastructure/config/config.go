package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	Admin AdminConfig
	Login LoginConfig
	Mongo MongoConfig
	Redis RedisConfig
	GenAI GenAIConfig
}

// AdminConfig describes the bootstrap admin account recreated at startup
// whenever it is missing from the user collection.
type AdminConfig struct {
	Username string `env:"BOOTSTRAP_ADMIN_USERNAME, default=gwjsvzv"`
	Password string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

// LoginConfig bounds login attempts per username.
type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=10"`
	Window      time.Duration `env:"LOGIN_WINDOW,       default=5m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=community_hub"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// GenAIConfig configures the generative content client. An empty APIKey is
// valid: generation endpoints then serve fallback content.
type GenAIConfig struct {
	APIKey  string        `env:"GENAI_API_KEY"`
	Model   string        `env:"GENAI_MODEL,   default=gemini-2.5-flash"`
	Timeout time.Duration `env:"GENAI_TIMEOUT, default=20s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger *slog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error("Failed to load configuration", "error", err)
		panic(err)
	}
	return &cfg
}
