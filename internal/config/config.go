package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env          string `env:"ENV" env-required:"true"`
	LogLevel     string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer   HttpServer
	Database     Database
	Cache        Cache
	SMTP         SMTPConfig
	SMS          SMSConfig
	Push         PushConfig
	Verification VerificationConfig
	Dispatcher   DispatcherConfig
	RateLimit    RateLimitConfig
	Limiter      Limiter
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
}

type Database struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER" env-required:"true"`
	DBName             string        `env:"DB_NAME" env-required:"true"`
	User               string        `env:"DB_USER" env-required:"true"`
	Password           string        `env:"DB_PASSWORD" env-required:"true"`
	TimeZone           string        `env:"DB_TIMEZONE"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"40"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"40"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-required:"true" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST" env-required:"true"`
	Port int    `env:"SMTP_PORT" env-required:"true"`
	From string `env:"SMTP_FROM" env-required:"true"`
	Pass string `env:"SMTP_PASS" env-required:"true"`
}

type SMSConfig struct {
	APIURL  string        `env:"SMS_API_URL" env-required:"true"`
	APIKey  string        `env:"SMS_API_KEY" env-required:"true"`
	Sender  string        `env:"SMS_SENDER" env-default:"roadassist"`
	Timeout time.Duration `env:"SMS_TIMEOUT" env-default:"10s"`
}

type PushConfig struct {
	APIURL    string        `env:"PUSH_API_URL" env-required:"true"`
	ServerKey string        `env:"PUSH_SERVER_KEY" env-required:"true"`
	Timeout   time.Duration `env:"PUSH_TIMEOUT" env-default:"10s"`
}

type VerificationConfig struct {
	CodeLength      int           `env:"VERIFICATION_CODE_LENGTH" env-default:"6"`
	CodeTTL         time.Duration `env:"VERIFICATION_CODE_TTL" env-default:"10m"`
	ResendCooldown  time.Duration `env:"VERIFICATION_RESEND_COOLDOWN" env-default:"60s"`
	MaxAttempts     int           `env:"VERIFICATION_MAX_ATTEMPTS" env-default:"3"`
	Retention       time.Duration `env:"VERIFICATION_RETENTION" env-default:"24h"`
	CleanupInterval time.Duration `env:"VERIFICATION_CLEANUP_INTERVAL" env-default:"10m"`
}

type DispatcherConfig struct {
	HighInterval   time.Duration `env:"DISPATCHER_HIGH_INTERVAL" env-default:"1s"`
	MediumInterval time.Duration `env:"DISPATCHER_MEDIUM_INTERVAL" env-default:"5s"`
	LowInterval    time.Duration `env:"DISPATCHER_LOW_INTERVAL" env-default:"30s"`
	MaxRetries     int           `env:"DISPATCHER_MAX_RETRIES" env-default:"3"`
}

type RateLimitConfig struct {
	Store          string        `env:"RATE_LIMIT_STORE" env-default:"memory" env-description:"one of memory/redis"`
	Window         time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"60s"`
	EmailPerWindow int           `env:"RATE_LIMIT_EMAIL" env-default:"5"`
	SMSPerWindow   int           `env:"RATE_LIMIT_SMS" env-default:"3"`
	PushPerWindow  int           `env:"RATE_LIMIT_PUSH" env-default:"10"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
