package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Checkout CheckoutConfig
	Kitchen  KitchenConfig
	Session  SessionConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig is optional: an empty Addr keeps sessions in process memory and
// disables cross-instance change-event fan-out.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig is optional: no brokers disables the order-event log.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// CheckoutConfig picks the backend-failure policy: "degraded" never blocks a
// customer (backend failures fall back to local-only orders and demo data),
// "strict" surfaces them as errors instead.
type CheckoutConfig struct {
	Mode string
}

const (
	ModeStrict   = "strict"
	ModeDegraded = "degraded"
)

func (c CheckoutConfig) Strict() bool {
	return c.Mode == ModeStrict
}

type KitchenConfig struct {
	UrgentAfter time.Duration
}

type SessionConfig struct {
	TTL time.Duration
}

type LogConfig struct {
	Level string
}

// Defaults returns the built-in configuration. Callers layer file values and
// then the environment on top.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            3306,
			User:            "radhecafe",
			Password:        "secret",
			Name:            "radhecafe",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Kafka: KafkaConfig{
			Topic: "order_events",
		},
		Checkout: CheckoutConfig{
			Mode: ModeDegraded,
		},
		Kitchen: KitchenConfig{
			UrgentAfter: 15 * time.Minute,
		},
		Session: SessionConfig{
			TTL: 12 * time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyEnv overlays environment variables onto cfg. Only variables that are
// actually set override the current values, so env wins over anything already
// layered in while untouched settings survive.
func ApplyEnv(cfg *Config) error {
	v := viper.New()
	v.AutomaticEnv()

	if v.IsSet("SERVER_PORT") {
		cfg.Server.Port = v.GetInt("SERVER_PORT")
	}
	if v.IsSet("DB_HOST") {
		cfg.Database.Host = v.GetString("DB_HOST")
	}
	if v.IsSet("DB_PORT") {
		cfg.Database.Port = v.GetInt("DB_PORT")
	}
	if v.IsSet("DB_USER") {
		cfg.Database.User = v.GetString("DB_USER")
	}
	if v.IsSet("DB_PASSWORD") {
		cfg.Database.Password = v.GetString("DB_PASSWORD")
	}
	if v.IsSet("DB_NAME") {
		cfg.Database.Name = v.GetString("DB_NAME")
	}
	if v.IsSet("DB_MAX_OPEN_CONNS") {
		cfg.Database.MaxOpenConns = v.GetInt("DB_MAX_OPEN_CONNS")
	}
	if v.IsSet("DB_MAX_IDLE_CONNS") {
		cfg.Database.MaxIdleConns = v.GetInt("DB_MAX_IDLE_CONNS")
	}
	if v.IsSet("DB_CONN_MAX_LIFETIME") {
		d, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
		if err != nil {
			return err
		}
		cfg.Database.ConnMaxLifetime = d
	}
	if v.IsSet("REDIS_ADDR") {
		cfg.Redis.Addr = v.GetString("REDIS_ADDR")
	}
	if v.IsSet("REDIS_PASSWORD") {
		cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	}
	if v.IsSet("REDIS_DB") {
		cfg.Redis.DB = v.GetInt("REDIS_DB")
	}
	if v.IsSet("KAFKA_BROKERS") {
		cfg.Kafka.Brokers = splitBrokers(v.GetString("KAFKA_BROKERS"))
	}
	if v.IsSet("KAFKA_TOPIC") {
		cfg.Kafka.Topic = v.GetString("KAFKA_TOPIC")
	}
	if v.IsSet("CHECKOUT_MODE") {
		cfg.Checkout.Mode = v.GetString("CHECKOUT_MODE")
	}
	if v.IsSet("KITCHEN_URGENT_AFTER") {
		d, err := time.ParseDuration(v.GetString("KITCHEN_URGENT_AFTER"))
		if err != nil {
			return err
		}
		cfg.Kitchen.UrgentAfter = d
	}
	if v.IsSet("SESSION_TTL") {
		d, err := time.ParseDuration(v.GetString("SESSION_TTL"))
		if err != nil {
			return err
		}
		cfg.Session.TTL = d
	}
	if v.IsSet("LOG_LEVEL") {
		cfg.Log.Level = v.GetString("LOG_LEVEL")
	}

	return nil
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func Load() (*Config, error) {
	cfg := Defaults()
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
