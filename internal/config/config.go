package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration. Values come from config.yaml with
// environment variable overrides, so containers can tweak single settings
// without shipping a file.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	MySQL struct {
		// DSN empty means run on the in-memory store.
		DSN string `yaml:"dsn"`
	} `yaml:"mysql"`
	Kafka struct {
		// Broker empty means notifications go to the log sink.
		Broker string `yaml:"broker"`
		Topic  string `yaml:"topic"`
	} `yaml:"kafka"`
	Reaper struct {
		GraceMinutes  int `yaml:"grace_minutes"`
		SweepInterval int `yaml:"sweep_interval_minutes"`
	} `yaml:"reaper"`
}

// Load reads the yaml file at path (skipped when missing) and applies env
// overrides: PORT, MYSQL_DSN, KAFKA_BROKER, KAFKA_TOPIC, REAPER_GRACE_MINUTES.
func Load(path string) (Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT %q: %w", p, err)
		}
		cfg.Server.Port = port
	}
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		cfg.MySQL.DSN = dsn
	}
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		cfg.Kafka.Broker = broker
	}
	if topic := os.Getenv("KAFKA_TOPIC"); topic != "" {
		cfg.Kafka.Topic = topic
	}
	if g := os.Getenv("REAPER_GRACE_MINUTES"); g != "" {
		grace, err := strconv.Atoi(g)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REAPER_GRACE_MINUTES %q: %w", g, err)
		}
		cfg.Reaper.GraceMinutes = grace
	}

	return cfg, nil
}

func defaults() Config {
	var cfg Config
	cfg.Server.Port = 8080
	cfg.Kafka.Topic = "notifications"
	cfg.Reaper.GraceMinutes = 720
	cfg.Reaper.SweepInterval = 60
	return cfg
}
