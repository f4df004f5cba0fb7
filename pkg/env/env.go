package env

import (
	"os"
	"strconv"
	"strings"
)

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// Bool parses a boolean variable, returning fallback when unset or invalid.
func Bool(key string, fallback bool) bool {
	parsed, err := strconv.ParseBool(Get(key, ""))
	if err != nil {
		return fallback
	}
	return parsed
}
