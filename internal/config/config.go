package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all process settings. It is built once at startup and passed
// by reference into constructors; nothing reads the environment after Load.
type Config struct {
	ProjectName string   `mapstructure:"project_name"`
	Port        string   `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	// DatabaseURI is the Postgres DSN. When empty it is assembled from the
	// POSTGRES_* parts; when those are absent too, the service falls back
	// to an embedded SQLite database at SQLitePath.
	DatabaseURI string `mapstructure:"database_uri"`
	SQLitePath  string `mapstructure:"sqlite_path"`

	PostgresServer   string `mapstructure:"postgres_server"`
	PostgresUser     string `mapstructure:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password"`
	PostgresDB       string `mapstructure:"postgres_db"`
}

// Load reads configuration from the environment, optionally overlaid on a
// YAML file at path. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("project_name", "todo-service")
	v.SetDefault("port", "8080")
	v.SetDefault("sqlite_path", "todo.db")

	bindings := map[string]string{
		"project_name":      "PROJECT_NAME",
		"port":              "PORT",
		"database_uri":      "DATABASE_URI",
		"sqlite_path":       "SQLITE_PATH",
		"postgres_server":   "POSTGRES_SERVER",
		"postgres_user":     "POSTGRES_USER",
		"postgres_password": "POSTGRES_PASSWORD",
		"postgres_db":       "POSTGRES_DB",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(*os.PathError); !ok {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Origins arrive either as a YAML list or as a comma-separated env value.
	if raw := os.Getenv("BACKEND_CORS_ORIGINS"); raw != "" {
		cfg.CORSOrigins = nil
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	if cfg.DatabaseURI == "" {
		cfg.DatabaseURI = assemblePostgresURI(cfg)
	}

	return cfg, nil
}

// UsePostgres reports whether a Postgres DSN is configured.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURI != ""
}

// Addr is the listen address derived from Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// assemblePostgresURI builds a DSN from the individual POSTGRES_* settings.
// Returns "" unless every required part is present.
func assemblePostgresURI(c *Config) string {
	if c.PostgresServer == "" || c.PostgresUser == "" || c.PostgresPassword == "" || c.PostgresDB == "" {
		return ""
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s",
		c.PostgresUser, c.PostgresPassword, c.PostgresServer, c.PostgresDB,
	)
}
