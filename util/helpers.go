// Package util provides formatting, environment and version helpers shared across the backend.
//
//revive:disable-next-line:var-naming
package util

import (
	"os"
	"strings"
	"time"
)

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key) // get the env var
	if !ex {                     // not found return default
		return defVal
	}
	return val // return value for env var
}

// GetEnvFirst returns the first non-empty variable among keys
func GetEnvFirst(defVal string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return defVal
}

// GetEnvDuration parses a duration variable such as "20s", keeping defVal when unset or invalid
func GetEnvDuration(key string, defVal time.Duration) time.Duration {
	val, ex := os.LookupEnv(key)
	if !ex {
		return defVal
	}
	d, err := time.ParseDuration(strings.TrimSpace(val))
	if err != nil {
		return defVal
	}
	return d
}

// GetEnvList splits a comma separated variable, dropping empty entries
func GetEnvList(key string, defVal []string) []string {
	val, ex := os.LookupEnv(key)
	if !ex {
		return defVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsEmpty checks if a string is empty or contains only whitespace
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// GetStringOrDefault returns value or default if empty
func GetStringOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
