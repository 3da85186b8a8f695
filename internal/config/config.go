// file: internal/config/config.go
// version: 1.1.0
// guid: 8d0f2a4c-6e1b-43d5-97a8-0c2e4f6a8b30

package config

import (
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Host               string
	Port               int
	DatabasePath       string
	DatabaseType       string // "pebble" (default) or "sqlite"
	EnableSQLite       bool   // Must be true to use SQLite (safety flag)
	CatalogPath        string // empty means the embedded dataset
	OpenLibraryBaseURL string
	RateLimitPerMin    int
	RateLimitBurst     int
	MaxBodyBytes       int64
}

var AppConfig Config

// InitConfig initializes the application configuration from viper
func InitConfig() {
	viper.SetDefault("host", "0.0.0.0")
	viper.SetDefault("port", 8080)
	viper.SetDefault("database_path", "booktime.db")
	viper.SetDefault("database_type", "pebble")
	viper.SetDefault("enable_sqlite3_i_know_the_risks", false)
	viper.SetDefault("openlibrary_base_url", "https://openlibrary.org")
	viper.SetDefault("rate_limit_per_minute", 300)
	viper.SetDefault("rate_limit_burst", 30)
	viper.SetDefault("max_body_bytes", 1<<20)

	AppConfig = Config{
		Host:               viper.GetString("host"),
		Port:               viper.GetInt("port"),
		DatabasePath:       viper.GetString("database_path"),
		DatabaseType:       viper.GetString("database_type"),
		EnableSQLite:       viper.GetBool("enable_sqlite3_i_know_the_risks"),
		CatalogPath:        viper.GetString("catalog_path"),
		OpenLibraryBaseURL: viper.GetString("openlibrary_base_url"),
		RateLimitPerMin:    viper.GetInt("rate_limit_per_minute"),
		RateLimitBurst:     viper.GetInt("rate_limit_burst"),
		MaxBodyBytes:       viper.GetInt64("max_body_bytes"),
	}

	// Normalize database type
	if AppConfig.DatabaseType == "sqlite3" {
		AppConfig.DatabaseType = "sqlite"
	}
	if AppConfig.DatabaseType == "" {
		AppConfig.DatabaseType = "pebble"
	}
}
