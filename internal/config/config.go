package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for a pipeline run. Values come from a
// YAML file with environment-variable expansion; cobra flags override them.
type Config struct {
	// SourcesDir holds one JSON array per active scraper source.
	SourcesDir string `yaml:"sources_dir"`
	// LegacyDirs are older scattered source layouts scanned when SourcesDir
	// yields nothing.
	LegacyDirs []string `yaml:"legacy_dirs"`
	// OutputDir receives events.json, events-to-review.json and the report.
	OutputDir string `yaml:"output_dir"`
	// GazetteerPath optionally overlays the built-in lookup tables.
	GazetteerPath string `yaml:"gazetteer_path"`
	// WindowDays bounds how far ahead a publishable event may start.
	WindowDays int    `yaml:"window_days"`
	LogLevel   string `yaml:"log_level"`
}

// Load reads the YAML config at path. A missing file yields the defaults.
// Environment variables referenced as ${VAR} in the file are expanded after
// loading any .env file in the working directory.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else {
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.SourcesDir == "" {
		c.SourcesDir = "data/sources"
	}
	if len(c.LegacyDirs) == 0 {
		c.LegacyDirs = []string{"data/scraped", "scraped-data"}
	}
	if c.OutputDir == "" {
		c.OutputDir = "data/output"
	}
	if c.WindowDays == 0 {
		c.WindowDays = 60
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
