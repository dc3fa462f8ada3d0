package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Server struct {
	Port            string        `envconfig:"PORT" default:"5000"`
	Debug           bool          `envconfig:"DEBUG" default:"false"`
	LogPath         string        `envconfig:"LOG_PATH" default:"logs/"`
	AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

func (s Server) Addr() string {
	return ":" + s.Port
}

type Client struct {
	APIURL         string        `envconfig:"BOOKING_API_URL" default:"http://localhost:5000"`
	Timeout        time.Duration `envconfig:"CLIENT_TIMEOUT" default:"10s"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	LookupCacheTTL time.Duration `envconfig:"LOOKUP_CACHE_TTL" default:"5m"`
	Debug          bool          `envconfig:"DEBUG" default:"false"`
	LogPath        string        `envconfig:"CLIENT_LOG_PATH"`
}

// LoadDotEnv loads the given files, or .env when none are given, into the
// process environment. Variables already set are left untouched.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	return nil
}

func LoadServer() (Server, error) {
	var cfg Server
	if err := envconfig.Process("", &cfg); err != nil {
		return Server{}, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}

func LoadClient() (Client, error) {
	var cfg Client
	if err := envconfig.Process("", &cfg); err != nil {
		return Client{}, fmt.Errorf("failed to load client config: %w", err)
	}

	return cfg, nil
}
