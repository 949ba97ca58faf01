// Package env reads process environment variables with fallbacks, for the few
// bootstrap knobs (PORT, log level) resolved before the typed config loads.
package env

import "os"

// Get returns the named variable's value, or fallback when unset or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
