package main

import (
	"log"

	"collections-backend/internal/shared/utils"
)

// Config holds the worker's own configuration.
type Config struct {
	RedisAddr     string
	RedisPassword string
	HealthPort    string
}

func loadConfig() *Config {
	cfg := &Config{
		RedisAddr:     utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		RedisPassword: utils.GetEnvVariable("REDIS_PASSWORD", ""),
		HealthPort:    utils.GetEnvVariable("WORKER_HEALTH_PORT", "9999"),
	}

	log.Printf("[Config] Redis: %s", cfg.RedisAddr)

	return cfg
}
