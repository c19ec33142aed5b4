package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing database", func(c *Config) { c.DatabaseURL = " " }, "database_url"},
		{"geometry table injection", func(c *Config) { c.GeometryTable = "x; DROP TABLE us_table" }, "geometry_table"},
		{"zero cache size", func(c *Config) { c.FullCacheSize = 0 }, "cache sizes"},
		{"negative ttl", func(c *Config) { c.ThumbCacheTTL = -time.Second }, "cache ttls"},
		{"cdn without cloud name", func(c *Config) { c.CloudinaryEnabled = true }, "cloudinary_cloud_name"},
		{"auth without secret", func(c *Config) { c.SecretKey = "" }, "secret_key"},
		{"zero token lifetime", func(c *Config) { c.AccessTokenExpireMinutes = 0 }, "access_token_expire_minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}

	cfg := Default()
	cfg.GeometryTable = "public.pyunitastratigrafiche"
	if err := cfg.Validate(); err != nil {
		t.Errorf("schema-qualified geometry table rejected: %v", err)
	}
	cfg.GeometryTable = ""
	cfg.AuthEnabled = false
	cfg.SecretKey = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled auth needs no secret: %v", err)
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := Default()
	if !cfg.AllowAllOrigins() {
		t.Error("default should allow any origin")
	}
	cfg.CORSOrigins = " https://a.example.org, ,https://b.example.org "
	got := cfg.AllowedOrigins()
	if len(got) != 2 || got[0] != "https://a.example.org" || got[1] != "https://b.example.org" {
		t.Errorf("AllowedOrigins = %v", got)
	}
	if cfg.AllowAllOrigins() {
		t.Error("explicit origins must not allow all")
	}
}

func TestLoadLayersFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "storage_api_key: from-file\nthumb_cache_size: 42\ngeometry_table: other_layer\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(PathEnvVar, path)
	t.Setenv("STORAGE_API_KEY", "from-env")
	t.Setenv("FULL_CACHE_TTL", "90s")
	t.Setenv("CLOUDINARY_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorageAPIKey != "from-env" {
		t.Errorf("StorageAPIKey = %q, environment should win", cfg.StorageAPIKey)
	}
	if cfg.ThumbCacheSize != 42 || cfg.GeometryTable != "other_layer" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.FullCacheTTL != 90*time.Second {
		t.Errorf("FullCacheTTL = %v", cfg.FullCacheTTL)
	}
	if cfg.FullCacheSize != Default().FullCacheSize {
		t.Errorf("FullCacheSize = %d, default expected", cfg.FullCacheSize)
	}
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	t.Setenv(PathEnvVar, "")
	t.Setenv("THUMB_CACHE_SIZE", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected validation error")
	}
}
