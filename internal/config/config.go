package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/spf13/viper"
)

var ErrJWTSecretRequired = errors.New("config: JWT_SECRET must be set when AUTH_REQUIRED is true")

type Config struct {
	Port       string
	CORSOrigin string
	LogLevel   string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	MigrationsPath   string

	OperatorWorkers int

	OpenRouterAPIKey    string
	AIModel             string
	AIBaseURL           string
	AIRequestsPerMinute int

	JWTSecret    string
	JWTTTL       time.Duration
	AuthRequired bool

	// TrashRetention of zero keeps trashed transactions forever.
	TrashRetention     time.Duration
	TrashPurgeInterval time.Duration

	APIURL   string
	CacheDir string
}

// SigningSecret returns JWT_SECRET. When it is unset and auth is optional, a
// random secret is generated, so tokens only last for this process.
func (c *Config) SigningSecret() (string, error) {
	if c.JWTSecret != "" {
		return c.JWTSecret, nil
	}
	if c.AuthRequired {
		return "", ErrJWTSecretRequired
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// PostgresURL builds the lib/pq connection string for the configured database.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func ProcessEnvironmentVariables() (*Config, error) {
	v := viper.New()

	// In all cases the default behavior should be for the docker compose setup
	v.SetDefault("port", "5000")
	v.SetDefault("cors_origin", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("postgres_address", "localhost")
	v.SetDefault("postgres_port", "5433")
	v.SetDefault("postgres_db", "postgres")
	v.SetDefault("postgres_username", "postgres")
	v.SetDefault("postgres_password", "testpassword")
	v.SetDefault("migrations_path", "file://migrations")
	v.SetDefault("operator_workers", 4)
	v.SetDefault("openrouter_api_key", "")
	v.SetDefault("ai_model", "google/gemini-2.0-flash-lite-preview-02-05:free")
	v.SetDefault("ai_base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai_requests_per_minute", 20)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_ttl", "720h")
	v.SetDefault("auth_required", false)
	v.SetDefault("trash_retention", "0s")
	v.SetDefault("trash_purge_interval", "1h")
	v.SetDefault("api_url", "http://localhost:5000/api")
	v.SetDefault("cache_dir", ".neofin")

	v.AutomaticEnv()

	env := Config{
		Port:       v.GetString("port"),
		CORSOrigin: v.GetString("cors_origin"),
		LogLevel:   v.GetString("log_level"),

		PostgresAddress:  v.GetString("postgres_address"),
		PostgresPort:     v.GetString("postgres_port"),
		PostgresDB:       v.GetString("postgres_db"),
		PostgresUsername: v.GetString("postgres_username"),
		PostgresPassword: v.GetString("postgres_password"),
		MigrationsPath:   v.GetString("migrations_path"),

		OperatorWorkers: v.GetInt("operator_workers"),

		OpenRouterAPIKey:    v.GetString("openrouter_api_key"),
		AIModel:             v.GetString("ai_model"),
		AIBaseURL:           v.GetString("ai_base_url"),
		AIRequestsPerMinute: v.GetInt("ai_requests_per_minute"),

		JWTSecret:    v.GetString("jwt_secret"),
		JWTTTL:       v.GetDuration("jwt_ttl"),
		AuthRequired: v.GetBool("auth_required"),

		TrashRetention:     v.GetDuration("trash_retention"),
		TrashPurgeInterval: v.GetDuration("trash_purge_interval"),

		APIURL:   v.GetString("api_url"),
		CacheDir: v.GetString("cache_dir"),
	}

	if env.OperatorWorkers < 1 {
		env.OperatorWorkers = 1
	}
	if env.TrashRetention < 0 {
		env.TrashRetention = 0
	}

	return &env, nil
}
