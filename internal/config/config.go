// Package config provides functionality for loading environment variables and
// the application configuration.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var (
	envOnce   sync.Once
	envLoaded string
)

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, once per process. It returns the file that was loaded, or
// an empty string when none was found. Variables already set are not
// overridden.
func LoadEnv() string {
	envOnce.Do(func() {
		envLoaded = loadEnvFrom(".")
	})
	return envLoaded
}

func loadEnvFrom(dir string) string {
	candidates := []string{
		filepath.Join(dir, ".env"),
		filepath.Join(dir, "..", ".env"),
	}
	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return ""
		}
		return envFile
	}
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
