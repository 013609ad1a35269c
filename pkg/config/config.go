/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads and validates the console configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/carverauto/guardian/pkg/logger"
	"github.com/carverauto/guardian/pkg/models"
	"github.com/joho/godotenv"
)

var (
	// ErrBackendURLRequired is returned when no backend base URL is configured.
	ErrBackendURLRequired = errors.New("backend_url is required")

	errInvalidBackendURL   = errors.New("invalid backend_url")
	errInvalidConfigSource = errors.New("invalid CONFIG_SOURCE value")
	errInvalidTimeout      = errors.New("request_timeout must be positive")
	errInvalidInterval     = errors.New("view interval must not be negative")
	errUnknownView         = errors.New("unknown view")
	errInvalidBootstrap    = errors.New("invalid bootstrap settings")
)

const (
	configSourceFile = "file"
	configSourceEnv  = "env"

	// EnvPrefix prefixes every environment variable read by the env loader.
	EnvPrefix = "GUARDIAN_"

	defaultRequestTimeout = 10 * time.Second
	defaultBootAttempts   = 3
	defaultBootDelay      = 500 * time.Millisecond
	defaultBootMaxDelay   = 5 * time.Second
)

// Console is the complete configuration of the console process.
type Console struct {
	BackendURL     string                          `json:"backend_url" yaml:"backend_url"`
	RequestTimeout models.Duration                 `json:"request_timeout" yaml:"request_timeout"`
	Views          map[models.View]models.Duration `json:"views,omitempty" yaml:"views,omitempty"`
	Bootstrap      BootstrapConfig                 `json:"bootstrap" yaml:"bootstrap"`
	MetricsAddr    string                          `json:"metrics_addr,omitempty" yaml:"metrics_addr,omitempty"`
	LogFile        string                          `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	Logging        logger.Config                   `json:"logging" yaml:"logging"`
}

// BootstrapConfig bounds the retry of the startup stats read.
type BootstrapConfig struct {
	Attempts uint            `json:"attempts" yaml:"attempts"`
	Delay    models.Duration `json:"delay" yaml:"delay"`
	MaxDelay models.Duration `json:"max_delay" yaml:"max_delay"`
}

// Loader fills dst from one configuration source.
type Loader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Validator is implemented by configurations that can check themselves.
type Validator interface {
	Validate() error
}

// DefaultIntervals are the poll intervals used when a view has no override.
// Zero means the view refreshes only on demand.
func DefaultIntervals() map[models.View]time.Duration {
	return map[models.View]time.Duration{
		models.ViewDashboard:  10 * time.Second,
		models.ViewDevices:    0,
		models.ViewThreats:    0,
		models.ViewBehavioral: 0,
		models.ViewHoneypots:  0,
		models.ViewAgents:     5 * time.Second,
		models.ViewTopology:   0,
		models.ViewIncidents:  0,
	}
}

// Default returns a Console with every optional field populated.
func Default() *Console {
	return &Console{
		RequestTimeout: models.Duration(defaultRequestTimeout),
		Bootstrap: BootstrapConfig{
			Attempts: defaultBootAttempts,
			Delay:    models.Duration(defaultBootDelay),
			MaxDelay: models.Duration(defaultBootMaxDelay),
		},
		Logging: *logger.DefaultConfig(),
	}
}

// Interval returns the poll interval for view.
func (c *Console) Interval(view models.View) time.Duration {
	if d, ok := c.Views[view]; ok {
		return d.Std()
	}

	return DefaultIntervals()[view]
}

// LoggerConfig returns the logging configuration with log_file applied.
func (c *Console) LoggerConfig() *logger.Config {
	cfg := c.Logging
	if c.LogFile != "" {
		cfg.File = c.LogFile
	}

	return &cfg
}

// Validate implements Validator.
func (c *Console) Validate() error {
	if strings.TrimSpace(c.BackendURL) == "" {
		return ErrBackendURLRequired
	}

	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidBackendURL, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", errInvalidBackendURL, c.BackendURL)
	}

	if c.RequestTimeout <= 0 {
		return errInvalidTimeout
	}

	for view, d := range c.Views {
		if !view.Valid() {
			return fmt.Errorf("%w: %s", errUnknownView, view)
		}

		if d < 0 {
			return fmt.Errorf("%w: %s", errInvalidInterval, view)
		}
	}

	if c.Bootstrap.Attempts == 0 || c.Bootstrap.Delay < 0 || c.Bootstrap.MaxDelay < c.Bootstrap.Delay {
		return errInvalidBootstrap
	}

	return nil
}

// ValidateConfig validates a configuration if it implements Validator.
func ValidateConfig(cfg interface{}) error {
	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}

	return v.Validate()
}

// Config holds the configuration loading dependencies.
type Config struct {
	fileLoader Loader
	envLoader  Loader
	logger     logger.Logger
}

// NewConfig creates a Config that logs through log, or discards when nil.
func NewConfig(log logger.Logger) *Config {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Config{
		fileLoader: &FileConfigLoader{},
		envLoader:  NewEnvConfigLoader(log, EnvPrefix),
		logger:     log,
	}
}

// LoadDotEnv loads a .env file from the working directory when one exists.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return err
		}
	}

	return nil
}

// LoadAndValidate fills cfg from the configured source, then validates it.
func (c *Config) LoadAndValidate(ctx context.Context, path string, cfg interface{}) error {
	if err := c.load(ctx, path, cfg); err != nil {
		return err
	}

	return ValidateConfig(cfg)
}

// load applies the source selected by CONFIG_SOURCE. With "file" (the
// default) the file at path is read when path is set and environment
// variables override it; with "env" only the environment is consulted.
func (c *Config) load(ctx context.Context, path string, cfg interface{}) error {
	source := strings.ToLower(os.Getenv("CONFIG_SOURCE"))

	switch source {
	case configSourceFile, "":
		if path != "" {
			if err := c.fileLoader.Load(ctx, path, cfg); err != nil {
				return err
			}

			c.logger.Debug().Str("path", path).Msg("Loaded configuration file")
		}
	case configSourceEnv:
	default:
		return fmt.Errorf("%w: %s (expected '%s' or '%s')",
			errInvalidConfigSource, source, configSourceFile, configSourceEnv)
	}

	return c.envLoader.Load(ctx, path, cfg)
}

// Load reads the console configuration on top of Default. overrides run
// after loading and before validation so command-line flags win.
func Load(ctx context.Context, path string, log logger.Logger, overrides ...func(*Console)) (*Console, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if err := NewConfig(log).load(ctx, path, cfg); err != nil {
		return nil, err
	}

	for _, o := range overrides {
		o(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
