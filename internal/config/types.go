package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName       string   `env:"DB_NAME" envDefault:"footle.db"`
	Port         string   `env:"PORT" envDefault:"8080"`
	LogLevel     string   `env:"LOG_LEVEL" envDefault:"info"`
	GameTimezone string   `env:"GAME_TIMEZONE" envDefault:"Local"`
	CORSOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	// AdminUsers are the token subjects allowed to trigger daily summaries.
	AdminUsers []string `env:"ADMIN_USERS" envSeparator:","`
	Turso        TursoConfig
	JWT          JWTConfig
	Slack        SlackConfig
	Redis        RedisConfig
}

type TursoConfig struct {
	PrimaryURL string `env:"TURSO_PRIMARY_URL"`
	AuthToken  string `env:"TURSO_AUTH_TOKEN"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET,required,notEmpty"`
	Issuer string        `env:"JWT_ISSUER" envDefault:"footle"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"336h"`
}

// SlackConfig is optional; daily summaries go to the log without it.
type SlackConfig struct {
	Token     string `env:"SLACK_BOT_TOKEN"`
	ChannelID string `env:"SLACK_CHANNEL_ID"`
}

func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

// RedisConfig switches per-user locking to Redis when URL is set, so several
// replicas can share one database.
type RedisConfig struct {
	URL     string        `env:"REDIS_URL"`
	LockTTL time.Duration `env:"REDIS_LOCK_TTL" envDefault:"5s"`
	Retries int           `env:"REDIS_LOCK_RETRIES" envDefault:"50"`
	Backoff time.Duration `env:"REDIS_LOCK_BACKOFF" envDefault:"20ms"`
}
