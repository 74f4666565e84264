package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Database     DatabaseConfigs     `toml:"database"`
	ApiServer    ServerConfigs       `toml:"api_server"`
	Auth         AuthConfigs         `toml:"auth"`
	Redis        RedisConfigs        `toml:"redis"`
	Kafka        KafkaConfigs        `toml:"kafka"`
	Achievement  AchievementConfigs  `toml:"achievement"`
	Notification NotificationConfigs `toml:"notification"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`

	AllowCORS []string `toml:"allow_cors"`
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr              string `toml:"addr"`
	NotificationTopic string `toml:"notification_topic"`
}

type AchievementConfigs struct {
	// TransientWindow is how long an unlock toast stays visible before it
	// expires on its own.
	TransientWindow time.Duration `toml:"transient_window"`

	// MaxShowcased bounds how many unlocked achievements a user can pin to
	// their profile.
	MaxShowcased int `toml:"max_showcased"`

	// RecentLimit is the number of entries returned by the recent-unlocks
	// query.
	RecentLimit int `toml:"recent_limit"`
}

type NotificationConfigs struct {
	// MaxLimit caps the page size of notification listings.
	MaxLimit     int `toml:"max_limit"`
	DefaultLimit int `toml:"default_limit"`
}

// Load reads the toml configuration file referenced by CONFIG_PATH. When
// the variable is unset, defaults suitable for local development apply.
func Load() (Configs, error) {
	cfg := Configs{
		Env:      "local",
		LogLevel: "INFO",
		Database: DatabaseConfigs{
			Host: "localhost",
			Port: "3306",
		},
		ApiServer: ServerConfigs{Port: "8080"},
		Auth: AuthConfigs{
			TokenSecret: "secret",
			AccessToken: TokenConfigs{Name: "access_token", Expiration: time.Hour},
		},
		Redis: RedisConfigs{Addr: "localhost:6379"},
		Kafka: KafkaConfigs{Addr: "localhost:9092", NotificationTopic: "notifications"},
		Achievement: AchievementConfigs{
			TransientWindow: 5 * time.Second,
			MaxShowcased:    5,
			RecentLimit:     5,
		},
		Notification: NotificationConfigs{MaxLimit: 50, DefaultLimit: 20},
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
	}

	return cfg, nil
}
