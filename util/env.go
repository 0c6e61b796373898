package util

import (
	"log"
	"os"
	"strconv"
	"time"
)

// getEnv retrieves an environment variable or returns a fallback
// It is available to ALL files in package 'util'
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("warning: %s=%q is not an integer, using %d", key, raw, fallback)
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("warning: %s=%q is not a duration, using %s", key, raw, fallback)
		return fallback
	}
	return d
}
