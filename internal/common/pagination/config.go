// Package pagination provides a reusable pagination framework with a
// keyset-cursor strategy and an offset/page-number strategy. The strategy is
// chosen per endpoint at registration time, not per request.
package pagination

import (
	"os"
	"strconv"
)

// Config holds pagination configuration settings.
// These values can be loaded from environment variables or config files.
// Endpoints using different strategies hold independent Config instances.
type Config struct {
	DefaultPage     int // Default page number for offset pagination (typically 1)
	DefaultPageSize int // Default items per page (typically 20)
	MaxPageSize     int // Hard ceiling on items per page (typically 100)
}

// DefaultConfig returns the default pagination configuration.
// Default values: page=1, page_size=20, max=100
func DefaultConfig() Config {
	return Config{
		DefaultPage:     1,
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_DEFAULT_PAGE: Default page number
//   - PAGINATION_DEFAULT_PAGE_SIZE: Default items per page
//   - PAGINATION_MAX_PAGE_SIZE: Maximum items per page
//
// Falls back to DefaultConfig() if environment variables are not set.
func LoadFromEnv() Config {
	return Config{
		DefaultPage:     getEnvAsInt("PAGINATION_DEFAULT_PAGE", 1),
		DefaultPageSize: getEnvAsInt("PAGINATION_DEFAULT_PAGE_SIZE", 20),
		MaxPageSize:     getEnvAsInt("PAGINATION_MAX_PAGE_SIZE", 100),
	}
}

// LoadFromEnvPrefix loads the pagination config for one endpoint.
// Prefixed variables (e.g. SIMILAR_PAGINATION_DEFAULT_PAGE_SIZE) override the
// unprefixed ones, so endpoints can carry independent defaults.
func LoadFromEnvPrefix(prefix string) Config {
	base := LoadFromEnv()
	return Config{
		DefaultPage:     getEnvAsInt(prefix+"_PAGINATION_DEFAULT_PAGE", base.DefaultPage),
		DefaultPageSize: getEnvAsInt(prefix+"_PAGINATION_DEFAULT_PAGE_SIZE", base.DefaultPageSize),
		MaxPageSize:     getEnvAsInt(prefix+"_PAGINATION_MAX_PAGE_SIZE", base.MaxPageSize),
	}
}

// getEnvAsInt retrieves an environment variable and parses it as an integer.
// Returns the default value if the variable is not set or cannot be parsed.
func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}
