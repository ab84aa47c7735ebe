package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all runtime settings. Values come from defaults, an optional
// healthbook.yaml and HEALTHBOOK_* environment variables, in rising priority.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Auth    AuthConfig    `mapstructure:"auth" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
}

type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	BindAddr string `mapstructure:"bind_addr" validate:"required,ip|hostname"`
	Timezone string `mapstructure:"timezone" validate:"required"`
}

type StorageConfig struct {
	Driver        string        `mapstructure:"driver" validate:"required,oneof=sqlite memory redis"`
	DBPath        string        `mapstructure:"db_path" validate:"required_if=Driver sqlite"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl" validate:"min=0"`
	RedisAddr     string        `mapstructure:"redis_addr" validate:"required_if=Driver redis"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" validate:"min=0,max=15"`
	RedisPrefix   string        `mapstructure:"redis_prefix"`
}

type AuthConfig struct {
	LoginAttemptLimit  int           `mapstructure:"login_attempt_limit" validate:"required,gt=0"`
	LoginAttemptWindow time.Duration `mapstructure:"login_attempt_window" validate:"required"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json console"`
}

func (cfg *Config) ListenAddr() string {
	return net.JoinHostPort(cfg.Server.BindAddr, strconv.Itoa(cfg.Server.Port))
}
