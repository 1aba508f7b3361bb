// Package config loads storefront client settings from an optional YAML
// file and QKART_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"QKart/internal/search"
)

type Config struct {
	Endpoint       string        `yaml:"endpoint"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	SearchDelay    time.Duration `yaml:"search_delay"`
	LogLevel       string        `yaml:"log_level"`
	Token          string        `yaml:"-"`
}

func Default() Config {
	return Config{
		Endpoint:       "http://localhost:8080",
		RequestTimeout: 10 * time.Second,
		SearchDelay:    search.DefaultDelay,
		LogLevel:       "warn",
	}
}

// Load starts from Default, overlays the YAML file at path (a missing file
// is fine when path is empty) and then the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("QKART_ENDPOINT"); ok && v != "" {
		cfg.Endpoint = v
	}
	if v, ok := lookup("QKART_TOKEN"); ok {
		cfg.Token = strings.TrimSpace(v)
	}
	if v, ok := lookup("QKART_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	for name, dst := range map[string]*time.Duration{
		"QKART_REQUEST_TIMEOUT": &cfg.RequestTimeout,
		"QKART_SEARCH_DELAY":    &cfg.SearchDelay,
	} {
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = d
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Endpoint) == "" {
		errs = append(errs, errors.New("endpoint is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request_timeout must be positive"))
	}
	if c.SearchDelay <= 0 {
		errs = append(errs, errors.New("search_delay must be positive"))
	}
	return errors.Join(errs...)
}
