// Copyright 2025 Kadir Pekel
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the Mind Engine's own YAML configuration:
// the data directory, dream cron expression, and dashboard window.
// It is deliberately separate from the host agent runtime's config
// loader; the engine ships as a self-contained collaborator.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the Mind Engine's process-level configuration.
type Config struct {
	DataDir           string `yaml:"data_dir"`
	DreamCron         string `yaml:"dream_cron"`
	DashboardWindow   int    `yaml:"dashboard_window_days"`
	MetricsEnabled    bool   `yaml:"metrics_enabled"`
}

// Defaults returns a Config with the engine's default settings.
func Defaults() Config {
	return Config{
		DataDir:         "./data",
		DreamCron:       "0 3 * * *",
		DashboardWindow: 7,
		MetricsEnabled:  true,
	}
}

// Load reads and parses a YAML config file at path, starting from
// Defaults and overlaying whatever the file sets. Env vars referenced
// as ${VAR}, ${VAR:-default}, or $VAR are expanded before parsing.
func Load(path string) (Config, error) {
	cfg := Defaults()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	expanded := expandEnvVars(string(raw))

	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadEnvFiles loads .env.local then .env from the working directory,
// tolerating either being absent.
func LoadEnvFiles() error {
	for _, file := range []string{".env.local", ".env"} {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}
