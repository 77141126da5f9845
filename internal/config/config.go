package config

import (
	"log"

	"github.com/ilyakaznacheev/cleanenv"
)

type key string

const (
	KeyLogger  = key("logger")
	KeyMetrics = key("metrics")
	KeyUUID    = key("uuid")
)

type Config struct {
	Service    Service
	Platform   Platform
	Logger     Logger
	Metrics    Metrics
	Postgres   Postgres
	Kafka      Kafka
	Redis      Redis
	Channel    Channel
	Nats       Nats
	Session    Session
	Socket     Socket
	Attachment Attachment
	User       UserService
}

type Service struct {
	Name         string `env:"SERVICE_NAME" env-default:"dialog-service"`
	Port         string `env:"SERVICE_PORT" env-default:"8080"`
	ClientOrigin string `env:"CLIENT_ORIGIN" env-default:""`
}

type Platform struct {
	Env string `env:"ENV" env-default:"dev"`
}

type Logger struct {
	Host string `env:"LOGGER_SERVICE_HOST"`
	Port string `env:"LOGGER_SERVICE_PORT"`
}

type Metrics struct {
	Host string `env:"GRAFANA_HOST"`
	Port int    `env:"GRAFANA_PORT"`
}

type Postgres struct {
	User     string `env:"DIALOG_SERVICE_POSTGRES_USER" env-required:"true"`
	Password string `env:"DIALOG_SERVICE_POSTGRES_PASSWORD" env-required:"true"`
	Database string `env:"DIALOG_SERVICE_POSTGRES_DB" env-required:"true"`
	Host     string `env:"DIALOG_SERVICE_POSTGRES_HOST" env-default:"localhost"`
	Port     string `env:"DIALOG_SERVICE_POSTGRES_PORT" env-default:"5432"`
}

type Kafka struct {
	Host      string `env:"KAFKA_HOST"`
	Port      string `env:"KAFKA_PORT"`
	UserTopic string `env:"KAFKA_USER_TOPIC" env-default:"user_updates"`
}

type Redis struct {
	Host     string `env:"REDIS_HOST" env-default:"localhost"`
	Port     string `env:"REDIS_PORT" env-default:"6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
}

// Channel selects the delivery fan-out implementation: "memory" keeps
// all subscriptions in-process, "nats" shares them across instances.
type Channel struct {
	Driver string `env:"CHANNEL_DRIVER" env-default:"memory"`
}

type Nats struct {
	URL string `env:"NATS_URL" env-default:"nats://localhost:4222"`
}

type Session struct {
	Secret string `env:"SESSION_SECRET" env-required:"true"`
}

type Socket struct {
	JWTSecret string `env:"SOCKET_JWT_SECRET" env-required:"true"`
}

type Attachment struct {
	Dir            string `env:"ATTACHMENT_DIR" env-default:"uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" env-default:"52428800"`
}

type UserService struct {
	BaseURL string `env:"USER_SERVICE_URL"`
}

func MustLoad() *Config {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		log.Fatalf("failed to read config: %v", err)
	}
	return cfg
}
