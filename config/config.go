package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	ServerPort    string `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL   string `envconfig:"DATABASE_URL" required:"true"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`

	GatewaySendURL   string `envconfig:"GATEWAY_SEND_URL" required:"true"`
	GatewayImageURL  string `envconfig:"GATEWAY_IMAGE_URL" required:"true"`
	GatewayStatusURL string `envconfig:"GATEWAY_STATUS_URL" default:""`
	GatewayAPIKey    string `envconfig:"GATEWAY_API_KEY" default:""`

	// Poll cadences are policy values; rule evaluation tolerates
	// arbitrary tick delay.
	AutomationInterval time.Duration `envconfig:"AUTOMATION_INTERVAL" default:"10s"`
	ScheduleInterval   time.Duration `envconfig:"SCHEDULE_INTERVAL" default:"10s"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
