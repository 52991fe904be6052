// Package config centralizes the engine's runtime settings: an optional
// .env file loaded with godotenv, environment variables bound through
// viper, and the CLI flags that override both. Grounded on the viper
// config-layering pattern used across the retrieved example pack.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the fully resolved set of runtime settings.
type Config struct {
	IndexPath string
	Workers   int
	LogLevel  string
	HTTPAddr  string
	RedisAddr string
}

// Load reads an optional .env file (missing is not an error), binds
// FPRINT_-prefixed environment variables, applies defaults, and returns
// the resolved Config.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("FPRINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("index_path", "index.pkl")
	v.SetDefault("workers", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("redis_addr", "")

	return Config{
		IndexPath: v.GetString("index_path"),
		Workers:   v.GetInt("workers"),
		LogLevel:  v.GetString("log_level"),
		HTTPAddr:  v.GetString("http_addr"),
		RedisAddr: v.GetString("redis_addr"),
	}
}
