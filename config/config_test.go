package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("READ_TIMEOUT", "10s")
	t.Setenv("WRITE_TIMEOUT", "20s")
	t.Setenv("IDLE_TIMEOUT", "30s")
	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("RATE_LIMIT_RPM", "10")
	t.Setenv("SUBTITLE_DEFAULT_LANGUAGE", "en")
	t.Setenv("SUBTITLE_PRIORITY", "en, de ,,it")
	t.Setenv("SUBTITLE_MAX_CANDIDATES", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("expected /tmp/test.db, got %s", cfg.Database.Path)
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("expected 9090, got %s", cfg.ServerPort)
	}
	if cfg.ReadTimeout != 10*time.Second {
		t.Errorf("expected 10s, got %s", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout != 20*time.Second {
		t.Errorf("expected 20s, got %s", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout != 30*time.Second {
		t.Errorf("expected 30s, got %s", cfg.IdleTimeout)
	}
	if cfg.RateLimit.RequestsPerMinute != 10 {
		t.Errorf("expected 10, got %d", cfg.RateLimit.RequestsPerMinute)
	}
	if cfg.Subtitles.DefaultLanguage != "en" {
		t.Errorf("expected en, got %s", cfg.Subtitles.DefaultLanguage)
	}
	if want := []string{"en", "de", "it"}; !reflect.DeepEqual(cfg.Subtitles.Priority, want) {
		t.Errorf("expected %v, got %v", want, cfg.Subtitles.Priority)
	}
	if cfg.Subtitles.MaxCandidates != 4 {
		t.Errorf("expected 4, got %d", cfg.Subtitles.MaxCandidates)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("READ_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ReadTimeout != 15*time.Second {
		t.Errorf("expected default 15s, got %s", cfg.ReadTimeout)
	}
	if cfg.Subtitles.DefaultLanguage != "auto" {
		t.Errorf("expected auto, got %s", cfg.Subtitles.DefaultLanguage)
	}
	if want := []string{"fr", "en", "es", "de", "it"}; !reflect.DeepEqual(cfg.Subtitles.Priority, want) {
		t.Errorf("expected %v, got %v", want, cfg.Subtitles.Priority)
	}
	if cfg.Middleware.EnableRateLimit {
		t.Errorf("expected rate limit middleware disabled outside production")
	}
}

func TestLoadConfigProduction(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Middleware.EnableRateLimit || !cfg.Middleware.EnableTimeout {
		t.Errorf("expected production middleware set, got %+v", cfg.Middleware)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			ServerPort:     "8080",
			ReadTimeout:    time.Second,
			WriteTimeout:   time.Second,
			IdleTimeout:    time.Second,
			RequestTimeout: time.Second,
			LogDir:         "/tmp",
			Database:       DatabaseConfig{Path: "/tmp/x.db"},
			Subtitles: SubtitleConfig{
				DefaultLanguage: "auto",
				MaxCandidates:   1,
				MaxBodyBytes:    1,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing port", func(c *Config) { c.ServerPort = "" }, true},
		{"zero read timeout", func(c *Config) { c.ReadTimeout = 0 }, true},
		{"no default language", func(c *Config) { c.Subtitles.DefaultLanguage = "" }, true},
		{"zero candidates", func(c *Config) { c.Subtitles.MaxCandidates = 0 }, true},
		{"spaces without bucket", func(c *Config) { c.Spaces.Enabled = true }, true},
		{"rate limit without rpm", func(c *Config) { c.RateLimit.Enabled = true }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
