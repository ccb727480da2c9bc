// Package config loads pmcgrab's runtime configuration in four layers,
// each overriding the last: built-in defaults, the global YAML config
// file, a local .env file, and process environment variables (SPEC_FULL.md
// §3, grounded on the teacher's internal/config.GlobalConfig for the
// YAML layer and cmd/bip/{asta,slack,s2}.go for the godotenv layer).
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/retry"
)

// Config is the fully resolved runtime configuration for one process.
type Config struct {
	Emails  []string
	APIKey  string
	Timeout time.Duration
	Retries int
	Workers int
}

// fileConfig is the shape of ~/.config/pmcgrab/config.yml.
type fileConfig struct {
	Emails  []string `yaml:"emails,omitempty"`
	APIKey  string   `yaml:"api_key,omitempty"`
	Timeout int      `yaml:"timeout_seconds,omitempty"`
	Retries int      `yaml:"retries,omitempty"`
	Workers int      `yaml:"workers,omitempty"`
}

// Defaults returns the built-in configuration (spec.md §4.2-§4.3, §4.9).
func Defaults() Config {
	return Config{
		Emails:  nil, // nil defers to ratelimit.DefaultEmails
		APIKey:  "",
		Timeout: 60 * time.Second,
		Retries: 3,
		Workers: 10,
	}
}

// ConfigDir is the directory name under XDG_CONFIG_HOME / ~/.config
// holding the global YAML config file.
const ConfigDir = "pmcgrab"

// ConfigFile is the global YAML config's file name.
const ConfigFile = "config.yml"

// GlobalConfigPath returns ~/.config/pmcgrab/config.yml, honoring
// XDG_CONFIG_HOME (teacher's internal/config.GlobalConfigPath pattern).
func GlobalConfigPath() string {
	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		home = filepath.Join(h, ".config")
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

// Load resolves the layered configuration: defaults, then the global
// YAML file if present, then a ".env" file in the working directory via
// godotenv (non-fatal if absent), then process environment variables
// (EMAILS, API_KEY, TIMEOUT, RETRIES, WORKERS), each layer overriding
// the previous one.
func Load() (Config, error) {
	cfg := Defaults()

	if path := GlobalConfigPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var fc fileConfig
			if yamlErr := yaml.Unmarshal(data, &fc); yamlErr != nil {
				return cfg, retry.New(retry.KindConfigError, yamlErr)
			}
			applyFileConfig(&cfg, fc)
		} else if !os.IsNotExist(err) {
			return cfg, retry.New(retry.KindConfigError, err)
		}
	}

	_ = godotenv.Load() // missing .env is not an error

	applyEnv(&cfg)
	return cfg, nil
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if len(fc.Emails) > 0 {
		cfg.Emails = fc.Emails
	}
	if fc.APIKey != "" {
		cfg.APIKey = fc.APIKey
	}
	if fc.Timeout > 0 {
		cfg.Timeout = time.Duration(fc.Timeout) * time.Second
	}
	if fc.Retries > 0 {
		cfg.Retries = fc.Retries
	}
	if fc.Workers > 0 {
		cfg.Workers = fc.Workers
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("EMAILS"); v != "" {
		var emails []string
		for _, e := range strings.Split(v, ",") {
			if e = strings.TrimSpace(e); e != "" {
				emails = append(emails, e)
			}
		}
		if len(emails) > 0 {
			cfg.Emails = emails
		}
	}
	if v := os.Getenv("API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Timeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retries = n
		}
	}
	if v := os.Getenv("WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
}

// EmailsCSV joins the configured emails for internal/ratelimit.NewCredentialPool,
// which takes a comma-separated override string (empty defers to its
// own built-in default pool).
func (c Config) EmailsCSV() string {
	return strings.Join(c.Emails, ",")
}
