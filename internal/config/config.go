// Package config holds process configuration for the wotrack CLI.
package config

import (
	"os"
	"path/filepath"
)

// Config contains everything the CLI needs at startup.
type Config struct {
	// DBPath is the SQLite database file. ":memory:" is accepted.
	DBPath string `koanf:"db_path"`

	// DefaultEmployeeID pre-fills the employee prompt on start/stop.
	DefaultEmployeeID string `koanf:"default_employee_id"`

	// DefaultTaskCode pre-fills the task code prompt on start.
	DefaultTaskCode string `koanf:"default_task_code"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		DBPath: defaultDBPath(),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wotrack.db"
	}
	return filepath.Join(home, ".wotrack", "wotrack.db")
}
