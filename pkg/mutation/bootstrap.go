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

package mutation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/carverauto/guardian/pkg/models"
	"github.com/carverauto/guardian/pkg/telemetry"
)

var errBootstrapStats = errors.New("bootstrap: reading stats")

// BootstrapConfig bounds the retries on the initial stats read.
type BootstrapConfig struct {
	Attempts uint
	Delay    time.Duration
	MaxDelay time.Duration
}

// BootstrapResult reports what Bootstrap observed and did.
type BootstrapResult struct {
	Stats       *models.Stats
	Initialized bool
	Message     string
}

// Bootstrap reads the summary stats and seeds the backend when it reports
// no devices. Only network failures on the stats read are retried; the
// initialize write is sent at most once.
func (o *Orchestrator) Bootstrap(ctx context.Context, cfg BootstrapConfig) (*BootstrapResult, error) {
	if cfg.Attempts == 0 {
		cfg.Attempts = 1
	}

	stats, err := retry.DoWithData(
		func() (*models.Stats, error) {
			return o.api.GetStats(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(cfg.Attempts),
		retry.Delay(cfg.Delay),
		retry.MaxDelay(cfg.MaxDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(telemetry.IsNetwork),
		retry.OnRetry(func(n uint, err error) {
			o.logger.Warn().Err(err).Uint("attempt", n+1).Msg("Backend unreachable, retrying stats read")
		}),
	)
	if err != nil {
		o.recorder.MutationCompleted(string(ActionInitialize), ResultFailure)
		o.notifier.Error(models.ViewDashboard, "Failed to fetch stats")

		return nil, fmt.Errorf("%w: %w", errBootstrapStats, err)
	}

	res := &BootstrapResult{Stats: stats}

	if stats.TotalDevices > 0 {
		o.logger.Debug().Int("devices", stats.TotalDevices).Msg("Backend already populated")

		return res, nil
	}

	start := time.Now()

	seeded, err := o.api.Initialize(ctx)
	if err != nil {
		return nil, o.fail(ActionInitialize, models.ViewDashboard, "", start, err, "Failed to initialize demo data")
	}

	res.Initialized = true
	res.Message = seeded.Message

	o.recorder.MutationCompleted(string(ActionInitialize), ResultSuccess)
	o.logger.Info().
		Int("devices", seeded.Devices).
		Int("agents", seeded.Agents).
		Dur("elapsed", time.Since(start)).
		Msg("Backend initialized")
	o.effects.Resync(models.Views()...)

	return res, nil
}
