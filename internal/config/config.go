// Package config provides configuration loading for the application.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the application configuration, populated from the config file,
// environment variables (PLATE_*), and flags via viper.
type Config struct {
	Database  Database
	Gemini    Gemini
	Server    Server
	Scheduler Scheduler
}

// Database holds persistence settings.
type Database struct {
	Path string
}

// Gemini holds goal generator settings. The API key comes from
// PLATE_GEMINI_API_KEY or the config file; there is no flag for it.
type Gemini struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
}

// Server holds HTTP server settings.
type Server struct {
	Addr string
}

// Scheduler holds maintenance job settings.
type Scheduler struct {
	RecomputeSchedule string
	PurgeSchedule     string
	RetentionDays     int
}

// SetDefaults registers default values on viper. Call once before Load.
func SetDefaults() {
	viper.SetDefault("database.path", "~/.local/share/plate/plate.db")
	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("gemini.temperature", 0.4)
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("scheduler.recompute_schedule", "30 2 * * *")
	viper.SetDefault("scheduler.purge_schedule", "0 3 * * *")
	viper.SetDefault("scheduler.retention_days", 90)
}

// Load reads the current viper state into a Config. Paths are expanded.
func Load() Config {
	return Config{
		Database: Database{
			Path: ExpandPath(viper.GetString("database.path")),
		},
		Gemini: Gemini{
			APIKey:      viper.GetString("gemini.api_key"),
			Model:       viper.GetString("gemini.model"),
			BaseURL:     viper.GetString("gemini.base_url"),
			Temperature: viper.GetFloat64("gemini.temperature"),
		},
		Server: Server{
			Addr: viper.GetString("server.addr"),
		},
		Scheduler: Scheduler{
			RecomputeSchedule: viper.GetString("scheduler.recompute_schedule"),
			PurgeSchedule:     viper.GetString("scheduler.purge_schedule"),
			RetentionDays:     viper.GetInt("scheduler.retention_days"),
		},
	}
}

// EnsureDatabaseDir creates the parent directory of the database path.
func (c Config) EnsureDatabaseDir() error {
	dir := filepath.Dir(c.Database.Path)
	return os.MkdirAll(dir, 0o755)
}
