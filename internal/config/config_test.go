package config

import (
	"testing"
	"time"
)

func TestResolveSecretKey(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	if _, err := ResolveSecretKey(); err == nil {
		t.Fatal("expected error when SESSION_SECRET is empty")
	}

	t.Setenv("SESSION_SECRET", "coursework-secret")
	if _, err := ResolveSecretKey(); err == nil {
		t.Fatal("expected error when SESSION_SECRET uses insecure placeholder")
	}

	t.Setenv("SESSION_SECRET", "too-short-secret")
	if _, err := ResolveSecretKey(); err == nil {
		t.Fatal("expected error when SESSION_SECRET is too short")
	}

	valid := "0123456789abcdef0123456789abcdef"
	t.Setenv("SESSION_SECRET", valid)
	secret, err := ResolveSecretKey()
	if err != nil {
		t.Fatalf("expected valid secret, got error: %v", err)
	}
	if secret != valid {
		t.Fatalf("expected %q, got %q", valid, secret)
	}
}

func TestResolvePort(t *testing.T) {
	t.Setenv("PORT", "")
	port, err := ResolvePort()
	if err != nil {
		t.Fatalf("expected default port, got error: %v", err)
	}
	if port != "8000" {
		t.Fatalf("expected default port 8000, got %q", port)
	}

	t.Setenv("PORT", "9090")
	port, err = ResolvePort()
	if err != nil {
		t.Fatalf("expected valid port, got error: %v", err)
	}
	if port != "9090" {
		t.Fatalf("expected port 9090, got %q", port)
	}

	for _, invalid := range []string{"0", "70000", "not-a-number"} {
		t.Setenv("PORT", invalid)
		if _, err := ResolvePort(); err == nil {
			t.Fatalf("expected invalid port %q to fail", invalid)
		}
	}
}

func TestLoadNormalizesBasePathAndDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("BASE_PATH", " usr/417/ ")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("TZ", "Not/AZone")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BasePath != "/usr/417" {
		t.Fatalf("expected normalized base path, got %q", cfg.BasePath)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected default session ttl, got %s", cfg.SessionTTL)
	}
	if cfg.SessionStore != SessionStoreMemory {
		t.Fatalf("expected memory session store, got %q", cfg.SessionStore)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.Database.Driver)
	}
	if !cfg.CookieSecure {
		t.Fatal("expected COOKIE_SECURE=true to enable secure cookies")
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected invalid TZ to fall back to UTC, got %s", cfg.Location)
	}
}

func TestLoadRejectsUnknownDriversAndStores(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("SESSION_TTL", "")

	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("SESSION_STORE", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected unsupported DB_DRIVER to fail")
	}

	t.Setenv("DB_DRIVER", "")
	t.Setenv("SESSION_STORE", "memcached")
	if _, err := Load(); err == nil {
		t.Fatal("expected unsupported SESSION_STORE to fail")
	}

	t.Setenv("SESSION_STORE", "")
	t.Setenv("SESSION_TTL", "-5m")
	if _, err := Load(); err == nil {
		t.Fatal("expected negative SESSION_TTL to fail")
	}
}

func TestPostgresDSNMasksPassword(t *testing.T) {
	t.Parallel()

	database := Database{
		Driver:   DriverPostgres,
		Host:     "db",
		Port:     "5432",
		User:     "wellnest",
		Password: "s3cret",
		Name:     "wellnest",
		SSLMode:  "disable",
	}

	if got := database.DSN(); got != "host=db port=5432 user=wellnest password=s3cret dbname=wellnest sslmode=disable" {
		t.Fatalf("unexpected dsn %q", got)
	}
	if got := database.DSNForLog(); got != "host=db port=5432 user=wellnest password=*** dbname=wellnest sslmode=disable" {
		t.Fatalf("unexpected log dsn %q", got)
	}
}

func TestPostgresDSNQuotesSpecialValues(t *testing.T) {
	t.Parallel()

	database := Database{
		Driver:   DriverPostgres,
		Host:     "db",
		Port:     "5432",
		User:     "wellnest",
		Password: `pa ss'wo\rd`,
		Name:     "",
		SSLMode:  "disable",
	}

	expected := `host=db port=5432 user=wellnest password='pa ss\'wo\\rd' dbname='' sslmode=disable`
	if got := database.DSN(); got != expected {
		t.Fatalf("expected quoted dsn %q, got %q", expected, got)
	}
	if got := database.DSNForLog(); got != "host=db port=5432 user=wellnest password=*** dbname='' sslmode=disable" {
		t.Fatalf("unexpected log dsn %q", got)
	}
}
