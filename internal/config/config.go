package config

import "os"

// Get returns the value of the environment variable or the fallback when
// it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
