package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
		Env  string
	}
	Database struct {
		Driver string
		Path   string
	}
	Session struct {
		Store string
		TTL   time.Duration
	}
	CORS struct {
		Origins string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	v.SetEnvPrefix("SUIVI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/suivi.db")
	v.SetDefault("session.store", "sqlite")
	v.SetDefault("session.ttl", 7*24*time.Hour)
	v.SetDefault("cors.origins", "http://localhost:5173")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Production reports whether the deployment runs with the production cookie
// policy (Secure, cross-site).
func (c Config) Production() bool {
	return c.Server.Env == "production"
}

// CORSOrigins splits the configured origin list.
func (c Config) CORSOrigins() []string {
	parts := strings.Split(c.CORS.Origins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
