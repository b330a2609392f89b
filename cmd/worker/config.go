package main

import "os"

// Config is the worker-specific configuration. The shared application
// config still comes from the container.
type Config struct {
	RedisAddr   string
	Concurrency int
}

func loadConfig() *Config {
	return &Config{
		RedisAddr:   getEnv("REDIS_HOST", "localhost:6379"),
		Concurrency: 10,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
