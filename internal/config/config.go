package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the SOLO-OS configuration (board identity lives in the
// database, not here).
type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Admin     AdminConfig     `yaml:"admin"`
	Scripting ScriptingConfig `yaml:"scripting"`
}

// PathsConfig holds filesystem paths for data and the database.
type PathsConfig struct {
	Data     string `yaml:"data"`
	Database string `yaml:"database"`
}

// AdminConfig holds the seed account created when no admin exists yet.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// ScriptingConfig holds limits for user-authored commands.
type ScriptingConfig struct {
	TimeoutMS int `yaml:"timeout_ms"`
}

// Timeout returns the custom command execution budget as a duration.
func (s ScriptingConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

// Load reads and parses a YAML config file. A missing file yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Paths: PathsConfig{
			Data:     "./data",
			Database: "./data/solo-os.db",
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin",
		},
		Scripting: ScriptingConfig{
			TimeoutMS: 2000,
		},
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
