package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	defaultPort       = "8000"
	defaultSessionTTL = 24 * time.Hour
	minSecretLength   = 32
)

var insecureSecretPlaceholders = map[string]struct{}{
	"coursework-secret":       {},
	"change_me_in_production": {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port         string
	BasePath     BasePath
	SecretKey    string
	SessionTTL   time.Duration
	SessionStore string
	RedisAddr    string
	RedisPass    string
	CookieSecure bool
	TrustProxy   bool
	Location     *time.Location
	TemplatesDir string
	StaticDir    string
	Database     Database
}

type Database struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the connection string for the configured driver.
func (database Database) DSN() string {
	if database.Driver == DriverPostgres {
		return database.postgresDSN(database.Password)
	}
	return database.Path
}

// DSNForLog is DSN with the password masked.
func (database Database) DSNForLog() string {
	if database.Driver == DriverPostgres {
		return database.postgresDSN("***")
	}
	return database.Path
}

func (database Database) postgresDSN(password string) string {
	pairs := []struct {
		key   string
		value string
	}{
		{"host", database.Host},
		{"port", database.Port},
		{"user", database.User},
		{"password", password},
		{"dbname", database.Name},
		{"sslmode", database.SSLMode},
	}

	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, pair.key+"="+quoteDSNValue(pair.value))
	}
	return strings.Join(parts, " ")
}

// quoteDSNValue single-quotes a keyword/value connection string value when it
// is empty or holds whitespace, a quote or a backslash.
func quoteDSNValue(value string) string {
	if value != "" && !strings.ContainsAny(value, " \t\n\r'\\") {
		return value
	}
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(value)
	return "'" + escaped + "'"
}

// LoadDotEnv loads a .env file from the working directory when present.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring unreadable .env file: %v", err)
	}
}

// Load reads the full server configuration from the environment.
func Load() (Config, error) {
	port, err := ResolvePort()
	if err != nil {
		return Config{}, err
	}
	secret, err := ResolveSecretKey()
	if err != nil {
		return Config{}, err
	}
	database, err := LoadDatabase()
	if err != nil {
		return Config{}, err
	}

	sessionTTL, err := parseDurationEnv("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return Config{}, err
	}

	sessionStore := strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory))
	if sessionStore != SessionStoreMemory && sessionStore != SessionStoreRedis {
		return Config{}, fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreMemory, SessionStoreRedis, sessionStore)
	}

	return Config{
		Port:         port,
		BasePath:     NormalizeBasePath(os.Getenv("BASE_PATH")),
		SecretKey:    secret,
		SessionTTL:   sessionTTL,
		SessionStore: sessionStore,
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		CookieSecure: parseBoolEnv("COOKIE_SECURE"),
		TrustProxy:   parseBoolEnv("TRUST_PROXY"),
		Location:     LoadLocation(getEnv("TZ", "UTC")),
		TemplatesDir: getEnv("TEMPLATES_DIR", filepath.Join("internal", "templates")),
		StaticDir:    getEnv("STATIC_DIR", filepath.Join("web", "static")),
		Database:     database,
	}, nil
}

// LoadDatabase reads only the database settings; CLI commands that never
// serve HTTP use it so they do not require a session secret.
func LoadDatabase() (Database, error) {
	driver := strings.ToLower(getEnv("DB_DRIVER", DriverSQLite))
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return Database{}, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, driver)
	}

	return Database{
		Driver:   driver,
		Path:     getEnv("DB_PATH", filepath.Join("data", "wellnest.db")),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     getEnv("DB_NAME", "wellnest"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}, nil
}

func ResolvePort() (string, error) {
	raw := getEnv("PORT", defaultPort)
	port, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("PORT must be numeric, got %q", raw)
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be between 1 and 65535, got %d", port)
	}
	return strconv.Itoa(port), nil
}

func ResolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if secret == "" {
		return "", errors.New("SESSION_SECRET is required")
	}
	if _, insecure := insecureSecretPlaceholders[secret]; insecure {
		return "", errors.New("SESSION_SECRET uses an insecure placeholder value")
	}
	if len(secret) < minSecretLength {
		return "", fmt.Errorf("SESSION_SECRET must be at least %d characters", minSecretLength)
	}
	return secret, nil
}

func LoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return value, nil
}

func parseBoolEnv(key string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && value
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
