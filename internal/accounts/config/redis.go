package config

import (
	"strconv"
	"time"
)

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host           string        `yaml:"host" env:"ACCOUNTS_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"ACCOUNTS_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"ACCOUNTS_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"ACCOUNTS_REDIS_DB" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"ACCOUNTS_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"ACCOUNTS_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"ACCOUNTS_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize       int           `yaml:"pool_size" env:"ACCOUNTS_REDIS_POOL_SIZE" env-default:"10"`
}

// GetAddress возвращает адрес Redis строкой.
func (c *RedisConfig) GetAddress() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
