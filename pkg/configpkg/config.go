// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBDriver            string        `mapstructure:"DB_DRIVER"`
	DBSource            string        `mapstructure:"DB_SOURCE"`
	ServerAddress       string        `mapstructure:"SERVER_ADDRESS"`
	TokenType           string        `mapstructure:"TOKEN_TYPE"`
	TokenSymmetricKey   string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	AccessTokenDuration time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	Environement        string        `mapstructure:"GO_ENV"`
	AutoMigrate         bool          `mapstructure:"AUTO_MIGRATE"`
	RedisAddr           string        `mapstructure:"REDIS_ADDR"`
	RedisPassword       string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB             int           `mapstructure:"REDIS_DB"`
	StatsCacheTTL       time.Duration `mapstructure:"STATS_CACHE_TTL"`
	DashboardTimezone   string        `mapstructure:"DASHBOARD_TIMEZONE"`
	DashboardLocale     string        `mapstructure:"DASHBOARD_LOCALE"`
	DashboardAsset      string        `mapstructure:"DASHBOARD_ASSET"`
}

// Load read configuration from file or environment variables.
//
// A .env file next to app.env, if present, is loaded into the environment first.
// Variables already set in the environment win over both files.
func Load(path string) (Config, error) {
	var c Config

	err := godotenv.Load(filepath.Join(path, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, err
	}

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("TOKEN_TYPE", "paseto")
	v.SetDefault("DASHBOARD_TIMEZONE", "UTC")
	v.SetDefault("DASHBOARD_LOCALE", "id")
	v.SetDefault("DASHBOARD_ASSET", "IDR")

	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}

// Location returns the dashboard calendar location.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.DashboardTimezone)
}
