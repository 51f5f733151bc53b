package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// EnvFileLoaded reports whether a .env file was read; it is logged once the logger exists.
	EnvFileLoaded bool

	Log        Log
	HTTP       HTTP
	Postgres   Postgres
	Redis      Redis
	MarketData MarketData
	Auth       Auth
	Jobs       Jobs
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

type HTTP struct {
	Addr         string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
}

type Postgres struct {
	ConnectionString string        `env:"DB_CONNECTION_STRING,notEmpty"`
	MaxOpenConns     int           `env:"PG_MAX_OPEN_CONNS" envDefault:"50"`
	MaxIdleConns     int           `env:"PG_MAX_IDLE_CONNS" envDefault:"25"`
	ConnMaxLifetime  time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"5m"`
	RunMigrations    bool          `env:"PG_RUN_MIGRATIONS" envDefault:"true"`
}

// Redis is optional; an empty Addr disables the quote cache.
type Redis struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:""`
	Password string        `env:"REDIS_PASSWORD" envDefault:""`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	QuoteTTL time.Duration `env:"REDIS_QUOTE_TTL" envDefault:"15m"`
}

type MarketData struct {
	URL     string        `env:"MARKET_DATA_URL" envDefault:"http://localhost:9090"`
	APIKey  string        `env:"MARKET_DATA_API_KEY" envDefault:""`
	Timeout time.Duration `env:"MARKET_DATA_TIMEOUT" envDefault:"10s"`
	Debug   bool          `env:"MARKET_DATA_DEBUG" envDefault:"false"`
}

type Auth struct {
	JWTSecret      string        `env:"JWT_SECRET,notEmpty"`
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TTL" envDefault:"30m"`
}

type Jobs struct {
	QuotesRefreshInterval time.Duration `env:"QUOTES_REFRESH_INTERVAL" envDefault:"5m"`
	QuotesMaxAge          time.Duration `env:"QUOTES_MAX_AGE" envDefault:"6h"`
}

// Load reads an optional .env file and parses the environment into a Config.
// Fields without a default are required.
func Load() (*Config, error) {
	cfg := &Config{EnvFileLoaded: godotenv.Load() == nil}
	opts := env.Options{RequiredIfNoDef: true}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Missing configuration, update to start server")
	}
	return cfg
}
