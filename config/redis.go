package config

import (
	"fmt"
	"time"
)

// Redis 目前只給 rate limiter 使用
type Redis struct {
	Host               string `mapstructure:"HOST" json:"host" yaml:"host"`
	Port               int    `mapstructure:"PORT" json:"port" yaml:"port"`
	Password           string `mapstructure:"PASSWORD" json:"password" yaml:"password"`
	DB                 int    `mapstructure:"DB" json:"db" yaml:"db"`
	PoolSize           int    `mapstructure:"POOL_SIZE" json:"poolSize" yaml:"poolSize"`
	DialTimeoutSeconds int    `mapstructure:"DIAL_TIMEOUT_SECONDS" json:"dialTimeoutSeconds" yaml:"dialTimeoutSeconds"`
}

func (r Redis) Addr() string {
	port := r.Port
	if port == 0 {
		port = 6379
	}
	return fmt.Sprintf("%s:%d", r.Host, port)
}

func (r Redis) DialTimeout() time.Duration {
	if r.DialTimeoutSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(r.DialTimeoutSeconds) * time.Second
}
