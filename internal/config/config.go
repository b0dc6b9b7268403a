package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

// Config is the process-wide configuration. It is loaded once at startup and
// passed by pointer to the components that need it; nothing mutates it after Load.
type Config struct {
	Server   Server
	Database Database
	Redis    Redis
	JWT      JWT
	Kafka    Kafka
	Consul   Consul
	Log      Log
}

// Server holds HTTP server settings
type Server struct {
	Host         string        `env:"BLOG_SERVICE_HOST" envDefault:"localhost"`
	Port         int           `env:"PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	AllowOrigins []string      `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:5173,http://localhost:3000"`
}

// Database holds PostgreSQL settings
type Database struct {
	URL      string `env:"DATABASE_URL"`
	MaxConns int32  `env:"DB_MAX_CONNS" envDefault:"10"`
}

// Redis holds cache settings. An empty Addr disables caching.
type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL time.Duration `env:"REDIS_CACHE_TTL" envDefault:"2m"`
}

// JWT holds token signing settings.
// ExpirationMs is in milliseconds.
type JWT struct {
	Secret       string `env:"JWT_SECRET"`
	ExpirationMs int64  `env:"JWT_EXPIRATION_MS" envDefault:"604800000"`
	HeaderPrefix string `env:"JWT_HEADER_PREFIX" envDefault:"Bearer "`
}

// Expiration returns the configured token lifetime
func (j JWT) Expiration() time.Duration {
	return time.Duration(j.ExpirationMs) * time.Millisecond
}

// Kafka holds comment event publishing settings
type Kafka struct {
	Enabled bool   `env:"ENABLE_KAFKA" envDefault:"false"`
	Brokers string `env:"KAFKA_BROKERS"`
	Topic   string `env:"KAFKA_TOPIC_COMMENT_EVENTS" envDefault:"comment-events"`
	Acks    string `env:"KAFKA_ACKS" envDefault:"all"`
}

// BrokersList returns the trimmed, non-empty entries of Brokers
func (k Kafka) BrokersList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// Consul holds service registration settings
type Consul struct {
	Enabled bool   `env:"ENABLE_CONSUL" envDefault:"false"`
	Addr    string `env:"CONSUL_HTTP_ADDR" envDefault:"localhost:8500"`
	Token   string `env:"CONSUL_HTTP_TOKEN"`
}

// Log holds logger settings
type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load parses the environment (and a .env file if present) into a Config
// and checks the variables the service cannot start without.
func Load() (*Config, error) {
	if err := ValidateEnv(RequiredVars); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Migration is the part of the configuration the migrate command reads
type Migration struct {
	Database Database
	Log      Log
}

// LoadMigration parses only the database and logger settings
func LoadMigration() (*Migration, error) {
	if err := ValidateEnv(MigrateVars); err != nil {
		return nil, err
	}

	cfg, err := env.ParseAs[Migration]()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.ExpirationMs <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_MS must be positive, got %d", c.JWT.ExpirationMs)
	}
	if c.Kafka.Enabled && len(c.Kafka.BrokersList()) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when ENABLE_KAFKA is set")
	}
	return nil
}
