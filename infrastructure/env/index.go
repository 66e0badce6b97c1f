package env

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"hrms.io/infrastructure/logger"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		logger.Info("error loading env variables")
	}
}

func LoadEnv() {
}

// String returns the variable or fallback when it is unset or blank.
func String(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func Int(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := cast.ToIntE(value)
	if err != nil {
		logger.Warning("invalid integer env variable, using default", logger.LoggerOptions{
			Key:  key,
			Data: value,
		})
		return fallback
	}
	return parsed
}

func Float(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := cast.ToFloat64E(value)
	if err != nil {
		logger.Warning("invalid float env variable, using default", logger.LoggerOptions{
			Key:  key,
			Data: value,
		})
		return fallback
	}
	return parsed
}

func Bool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := cast.ToBoolE(value)
	if err != nil {
		logger.Warning("invalid boolean env variable, using default", logger.LoggerOptions{
			Key:  key,
			Data: value,
		})
		return fallback
	}
	return parsed
}

// Duration accepts Go duration strings ("30s", "100ms").
func Duration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := cast.ToDurationE(value)
	if err != nil {
		logger.Warning("invalid duration env variable, using default", logger.LoggerOptions{
			Key:  key,
			Data: value,
		})
		return fallback
	}
	return parsed
}

// List splits a comma separated variable, dropping blanks.
func List(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
