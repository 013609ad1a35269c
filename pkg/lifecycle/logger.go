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

// Package lifecycle assembles per-process logging and tracing.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/carverauto/guardian/pkg/logger"
)

// Runtime owns the process-wide logger and tracer provider.
type Runtime struct {
	Logger logger.Logger

	closer   io.Closer
	shutdown func(context.Context) error
}

// CreateComponentLogger creates a logger for a specific component.
// The returned closer must be closed on exit when logging to a file.
func CreateComponentLogger(component string, config *logger.Config) (logger.Logger, io.Closer, error) {
	base, closer, err := logger.New(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger.Wrap(base.WithComponent(component)), closer, nil
}

// Setup creates the component logger and installs tracing.
func Setup(ctx context.Context, component, version string, config *logger.Config) (*Runtime, error) {
	if config == nil {
		config = logger.DefaultConfig()
	}

	log, closer, err := CreateComponentLogger(component, config)
	if err != nil {
		return nil, err
	}

	otelCfg := config.OTel

	shutdown, err := logger.InitializeTracing(ctx, logger.TracingConfig{
		ServiceName:    otelCfg.ServiceName,
		ServiceVersion: version,
		Logger:         log,
		OTel:           &otelCfg,
	})
	if err != nil {
		_ = closer.Close()

		return nil, err
	}

	return &Runtime{Logger: log, closer: closer, shutdown: shutdown}, nil
}

// Shutdown flushes spans and releases the log file.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var errs []error

	if r.shutdown != nil {
		if err := r.shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}

	if r.closer != nil {
		if err := r.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("log close: %w", err))
		}
	}

	return errors.Join(errs...)
}
