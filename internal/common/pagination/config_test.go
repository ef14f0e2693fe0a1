package pagination_test

import (
	"testing"

	"storyfeed/internal/common/pagination"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := pagination.DefaultConfig()
	if cfg.DefaultPage != 1 {
		t.Errorf("DefaultPage = %d, want 1", cfg.DefaultPage)
	}
	if cfg.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d, want 20", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", cfg.MaxPageSize)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "2")
		t.Setenv("PAGINATION_DEFAULT_PAGE_SIZE", "30")
		t.Setenv("PAGINATION_MAX_PAGE_SIZE", "200")

		cfg := pagination.LoadFromEnv()
		if cfg.DefaultPage != 2 || cfg.DefaultPageSize != 30 || cfg.MaxPageSize != 200 {
			t.Errorf("LoadFromEnv() = %+v, want {2 30 200}", cfg)
		}
	})

	t.Run("unset variables fall back to defaults", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "")
		t.Setenv("PAGINATION_DEFAULT_PAGE_SIZE", "")
		t.Setenv("PAGINATION_MAX_PAGE_SIZE", "")

		cfg := pagination.LoadFromEnv()
		if cfg != pagination.DefaultConfig() {
			t.Errorf("LoadFromEnv() = %+v, want %+v", cfg, pagination.DefaultConfig())
		}
	})

	t.Run("unparsable values fall back to defaults", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE_SIZE", "thirty")

		cfg := pagination.LoadFromEnv()
		if cfg.DefaultPageSize != 20 {
			t.Errorf("DefaultPageSize = %d, want 20", cfg.DefaultPageSize)
		}
	})
}

func TestLoadFromEnvPrefix(t *testing.T) {
	t.Run("prefixed variables override unprefixed", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE_SIZE", "30")
		t.Setenv("SIMILAR_PAGINATION_DEFAULT_PAGE_SIZE", "10")

		cfg := pagination.LoadFromEnvPrefix("SIMILAR")
		if cfg.DefaultPageSize != 10 {
			t.Errorf("DefaultPageSize = %d, want 10", cfg.DefaultPageSize)
		}
	})

	t.Run("missing prefixed variables inherit the unprefixed config", func(t *testing.T) {
		t.Setenv("PAGINATION_MAX_PAGE_SIZE", "50")
		t.Setenv("SIMILAR_PAGINATION_MAX_PAGE_SIZE", "")

		cfg := pagination.LoadFromEnvPrefix("SIMILAR")
		if cfg.MaxPageSize != 50 {
			t.Errorf("MaxPageSize = %d, want 50", cfg.MaxPageSize)
		}
	})
}
