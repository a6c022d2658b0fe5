package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config - конфигурация приложения
type Config struct {
	Relay struct {
		Addr string `yaml:"addr"`
		URL  string `yaml:"url"`
	} `yaml:"relay"`
	Channel struct {
		Name string `yaml:"name"`
	} `yaml:"channel"`
	Notifications struct {
		TTLSeconds int `yaml:"ttl_seconds"`
	} `yaml:"notifications"`
	AI struct {
		Model string `yaml:"model"`
	} `yaml:"ai"`
}

// Load читает конфигурацию из yaml-файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл конфигурации: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("не удалось разобрать конфигурацию: %w", err)
	}

	if cfg.Relay.Addr == "" {
		cfg.Relay.Addr = ":8085"
	}
	if cfg.Relay.URL == "" {
		cfg.Relay.URL = "ws://localhost:8085/channel"
	}
	if cfg.Channel.Name == "" {
		cfg.Channel.Name = "kioteca-realtime-channel"
	}
	if cfg.Notifications.TTLSeconds <= 0 {
		cfg.Notifications.TTLSeconds = 5
	}

	return cfg, nil
}

// NotificationTTL возвращает время жизни уведомления
func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.Notifications.TTLSeconds) * time.Second
}
