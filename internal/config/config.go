// Package config loads the page server settings: defaults, then an optional YAML file,
// then SOLAR_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Its-donkey/solar-site/logging"
)

// EnvPrefix marks environment variables that override file settings.
const EnvPrefix = "SOLAR_"

// Config is the page server configuration, corresponding to solar.yml.
type Config struct {
	Listen       string `yaml:"listen" koanf:"listen"`
	SiteName     string `yaml:"site_name" koanf:"site_name"`
	TemplatesDir string `yaml:"templates_dir" koanf:"templates_dir"`
	AssetsDir    string `yaml:"assets_dir" koanf:"assets_dir"`
	ContentFile  string `yaml:"content_file" koanf:"content_file"`
	LogLevel     string `yaml:"log_level" koanf:"log_level"`
	// LogFile, when set, mirrors server logs to a size-rotated file.
	LogFile string `yaml:"log_file" koanf:"log_file"`
	// Watch reloads templates and content when they change on disk.
	Watch bool `yaml:"watch" koanf:"watch"`
}

// Default returns the settings used for a local checkout.
func Default() *Config {
	return &Config{
		Listen:       "127.0.0.1:4173",
		SiteName:     "solar-site",
		TemplatesDir: "ui/templates",
		AssetsDir:    "ui",
		ContentFile:  "ui/content.yaml",
		LogLevel:     "INFO",
	}
}

// Load reads configuration from path when it exists, then overlays SOLAR_* variables
// (SOLAR_LOG_LEVEL -> log_level).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Level parses LogLevel.
func (c *Config) Level() (logging.Level, error) {
	return logging.ParseLevel(c.LogLevel)
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return errors.New("listen is required")
	}
	if strings.TrimSpace(c.TemplatesDir) == "" {
		return errors.New("templates_dir is required")
	}
	if strings.TrimSpace(c.AssetsDir) == "" {
		return errors.New("assets_dir is required")
	}
	if strings.TrimSpace(c.ContentFile) == "" {
		return errors.New("content_file is required")
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}
