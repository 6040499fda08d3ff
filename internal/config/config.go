package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7777"`
	Socket     Socket `yaml:"socket"`
	Redis      Redis  `yaml:"redis"`
	Stats      Stats  `yaml:"stats"`
}

type Socket struct {
	ReadBuffer     int           `yaml:"read-buffer" env-default:"1024"`
	WriteBuffer    int           `yaml:"write-buffer" env-default:"1024"`
	SendQueue      int           `yaml:"send-queue" env-default:"256"`
	PongWait       time.Duration `yaml:"pong-wait" env-default:"60s"`
	WriteWait      time.Duration `yaml:"write-wait" env-default:"10s"`
	AllowedOrigins []string      `yaml:"allowed-origins" env:"SOCKET_ALLOWED_ORIGINS" env-separator:","`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Stats - where finished matches are reported. Disabled means results are dropped.
type Stats struct {
	Enabled   bool          `yaml:"enabled" env:"STATS_ENABLED" env-default:"false"`
	KeyPrefix string        `yaml:"key-prefix" env-default:"playerstats:"`
	Timeout   time.Duration `yaml:"timeout" env-default:"5s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
