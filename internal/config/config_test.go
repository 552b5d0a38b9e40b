package config

import (
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

// --- Load success + normalization + parsing ---

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "3000" {
		t.Fatalf("default PORT: got %q want 3000", cfg.Port)
	}
	if cfg.Env != "development" || cfg.IsProduction() {
		t.Fatalf("default env: got %q", cfg.Env)
	}
	if cfg.DB.Host != "localhost" || cfg.DB.Port != 5432 ||
		cfg.DB.User != "itemuser" || cfg.DB.Password != "itemuser_pass" ||
		cfg.DB.Name != "items" {
		t.Fatalf("default DB config unexpected: %+v", cfg.DB)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Fatalf("default AllowedOrigins should be empty, got %v", cfg.AllowedOrigins)
	}
	if cfg.OTEL.Enabled {
		t.Fatalf("OTEL should default to disabled")
	}
}

func TestLoad_OverridesAndNormalization(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("GIN_MODE", "weird")     // will normalize to "release"
	t.Setenv("LOG_LEVEL", "warning")  // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "items_prod")
	t.Setenv("ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("RATE_RPS", "x")      // parse failure -> default
	t.Setenv("RATE_BURST", "nope") // parse failure -> default

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8088" || cfg.ReadTimeout != 2*time.Second || cfg.WriteTimeout != 3*time.Second {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode normalization: got %q", cfg.GinMode)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty {
		t.Fatalf("logging fields unexpected: level=%q pretty=%v", cfg.LogLevel, cfg.LogPretty)
	}
	if !cfg.IsProduction() {
		t.Fatalf("NODE_ENV=production should be recognized, env=%q", cfg.Env)
	}
	if cfg.DB.Host != "db.internal" || cfg.DB.Port != 5433 || cfg.DB.Name != "items_prod" {
		t.Fatalf("DB overrides unexpected: %+v", cfg.DB)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://a.com" || cfg.AllowedOrigins[1] != "http://b" {
		t.Fatalf("AllowedOrigins CSV parsing: %v", cfg.AllowedOrigins)
	}
	if cfg.RateRPS != 50.0 || cfg.RateBurst != 100 {
		t.Fatalf("rate fallback: rps=%v burst=%d", cfg.RateRPS, cfg.RateBurst)
	}
}

func TestLoad_AppEnvWinsOverNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "production")
	t.Setenv("APP_ENV", "test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Env != "test" {
		t.Fatalf("APP_ENV should take precedence, got %q", cfg.Env)
	}
}

// --- validation failures ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		k, v string
		want string
	}{
		{"bad log level", "LOG_LEVEL", "loud", "LOG_LEVEL"},
		{"non-numeric port", "PORT", "eighty", "PORT must be numeric"},
		{"db port range", "DB_PORT", "700000", "DB_PORT"},
		{"negative timeout", "READ_TIMEOUT", "-1s", "timeouts"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.k, tc.v)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, got %v", tc.want, err)
			}
		})
	}
}

// --- DSN ---

func TestDBConfig_DSN(t *testing.T) {
	d := DBConfig{Host: "h", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	got := d.DSN()
	want := "host=h port=5432 user=u password=p dbname=n sslmode=disable"
	if got != want {
		t.Fatalf("DSN: got %q want %q", got, want)
	}
}
