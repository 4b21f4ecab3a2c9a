package config

import "time"

// SessionConfig представляет конфигурацию сессий.
// Secret не имеет значения по умолчанию и обязан задаваться извне.
type SessionConfig struct {
	Secret     string        `yaml:"secret" env:"ACCOUNTS_SESSION_SECRET" env-required:"true"`
	CookieName string        `yaml:"cookie_name" env:"ACCOUNTS_SESSION_COOKIE_NAME" env-default:"session_id"`
	TTL        time.Duration `yaml:"ttl" env:"ACCOUNTS_SESSION_TTL" env-default:"24h"`
}
