package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func EnvInt(key string, def int) int {
	if n, err := strconv.Atoi(EnvOrDefault(key, "")); err == nil {
		return n
	}
	return def
}

func EnvBool(key string, def bool) bool {
	switch strings.ToLower(EnvOrDefault(key, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

func EnvDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(EnvOrDefault(key, "")); err == nil {
		return d
	}
	return def
}
