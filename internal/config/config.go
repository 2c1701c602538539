// Package config loads the client configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	NATSURL        string `yaml:"nats_url"`
	Lobby          int    `yaml:"lobby"`
	PlayerName     string `yaml:"player_name"`
	CallTimeoutSec int    `yaml:"call_timeout_sec"`
	LogLevel       string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		NATSURL:        "nats://localhost:4222",
		Lobby:          0,
		PlayerName:     "Anonymous",
		CallTimeoutSec: 10,
		LogLevel:       "info",
	}
}

// Load reads the YAML file at path over the defaults. A missing path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// FromEnv applies environment overrides on top of cfg.
func FromEnv(cfg Config) Config {
	cfg.NATSURL = getEnv("EUCHRE_NATS_URL", getEnv("NATS_URL", cfg.NATSURL))
	cfg.Lobby = getEnvAsInt("EUCHRE_LOBBY", cfg.Lobby)
	cfg.PlayerName = getEnv("EUCHRE_NAME", cfg.PlayerName)
	cfg.CallTimeoutSec = getEnvAsInt("EUCHRE_CALL_TIMEOUT_SEC", cfg.CallTimeoutSec)
	cfg.LogLevel = getEnv("EUCHRE_LOG_LEVEL", cfg.LogLevel)
	return cfg
}

func (c Config) CallTimeout() time.Duration {
	return time.Duration(c.CallTimeoutSec) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
