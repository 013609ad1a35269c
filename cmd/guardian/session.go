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

package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/carverauto/guardian/pkg/config"
	"github.com/carverauto/guardian/pkg/console"
	"github.com/carverauto/guardian/pkg/lifecycle"
	"github.com/carverauto/guardian/pkg/logger"
	"github.com/carverauto/guardian/pkg/metrics"
	"github.com/carverauto/guardian/pkg/telemetry"
	"github.com/carverauto/guardian/pkg/version"
)

const (
	componentName   = "console"
	tuiLogName      = "guardian-console.log"
	shutdownTimeout = 5 * time.Second
)

// session is everything one command invocation needs.
type session struct {
	cfg     *config.Console
	runtime *lifecycle.Runtime
	log     logger.Logger
	metrics *metrics.Collectors
	console *console.Console
}

type sessionOptions struct {
	// interactive routes logs to a file so they never tear the screen.
	interactive bool
}

func bootstrapLogger() logger.Logger {
	return logger.Wrap(zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger())
}

func flagOverrides(interactive bool) func(*config.Console) {
	return func(cfg *config.Console) {
		if backendURL != "" {
			cfg.BackendURL = backendURL
		}

		if debugFlag {
			cfg.Logging.Debug = true
		}

		if logFile != "" {
			cfg.LogFile = logFile
		}

		if interactive && cfg.LogFile == "" {
			cfg.LogFile = filepath.Join(os.TempDir(), tuiLogName)
		}
	}
}

func openSession(ctx context.Context, opts sessionOptions) (*session, error) {
	cfg, err := config.Load(ctx, configPath, bootstrapLogger(), flagOverrides(opts.interactive))
	if err != nil {
		return nil, err
	}

	rt, err := lifecycle.Setup(ctx, componentName, version.GetVersion(), cfg.LoggerConfig())
	if err != nil {
		return nil, err
	}

	client, err := telemetry.NewClient(telemetry.ClientConfig{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.RequestTimeout.Std(),
		Logger:  rt.Logger,
	})
	if err != nil {
		_ = rt.Shutdown(ctx)

		return nil, err
	}

	m := metrics.New()

	con, err := console.New(console.Options{
		API:     client,
		Config:  cfg,
		Logger:  rt.Logger,
		Metrics: m,
	})
	if err != nil {
		_ = rt.Shutdown(ctx)

		return nil, err
	}

	rt.Logger.Debug().
		Str("backend_url", cfg.BackendURL).
		Dur("timeout", cfg.RequestTimeout.Std()).
		Msg("Session opened")

	return &session{cfg: cfg, runtime: rt, log: rt.Logger, metrics: m, console: con}, nil
}

func (s *session) Close() {
	s.console.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.runtime.Shutdown(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Shutdown incomplete")
	}
}
