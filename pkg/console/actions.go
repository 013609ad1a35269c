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

package console

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/carverauto/guardian/pkg/models"
	"github.com/carverauto/guardian/pkg/mutation"
	"github.com/carverauto/guardian/pkg/telemetry"
)

// Device returns the device with id from the most recent device poll, or
// reads it from the backend when no view has it.
func (c *Console) Device(ctx context.Context, id string) (*models.Device, error) {
	if d, ok := c.cachedDevice(id); ok {
		return &d, nil
	}

	d, err := c.api.GetDevice(ctx, id)
	if err != nil {
		var se *telemetry.ServerError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDevice, id)
		}

		return nil, err
	}

	return d, nil
}

func (c *Console) cachedDevice(id string) (models.Device, bool) {
	if id == "" {
		return models.Device{}, false
	}

	match := func(d models.Device) bool { return d.ID == id }

	if s := c.Devices(); s.Loaded {
		if i := slices.IndexFunc(s.Data, match); i >= 0 {
			return s.Data[i], true
		}
	}

	if s := c.Dashboard(); s.Loaded {
		if i := slices.IndexFunc(s.Data.Devices, match); i >= 0 {
			return s.Data.Devices[i], true
		}
	}

	return models.Device{}, false
}

// IsolateDevice isolates the device with id.
func (c *Console) IsolateDevice(ctx context.Context, id string) error {
	if id == "" {
		return c.mutations.IsolateDevice(ctx, nil)
	}

	d, err := c.Device(ctx, id)
	if err != nil {
		c.bus.Error(models.ViewDevices, "Failed to isolate device")

		return err
	}

	return c.mutations.IsolateDevice(ctx, d)
}

// MitigateThreat mitigates the threat with id using action.
func (c *Console) MitigateThreat(ctx context.Context, id string, action models.MitigationAction) error {
	if id == "" {
		return c.mutations.MitigateThreat(ctx, nil, action)
	}

	t, err := c.threat(ctx, id)
	if err != nil {
		c.bus.Error(models.ViewThreats, "Failed to mitigate threat")

		return err
	}

	return c.mutations.MitigateThreat(ctx, t, action)
}

func (c *Console) threat(ctx context.Context, id string) (*models.Threat, error) {
	match := func(t models.Threat) bool { return t.ID == id }

	if s := c.Threats(); s.Loaded {
		if i := slices.IndexFunc(s.Data.Threats, match); i >= 0 {
			t := s.Data.Threats[i]
			return &t, nil
		}
	}

	threats, err := c.api.ListThreats(ctx)
	if err != nil {
		return nil, err
	}

	if i := slices.IndexFunc(threats, match); i >= 0 {
		return &threats[i], nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownThreat, id)
}

// GenerateIncident asks the backend for a new incident.
func (c *Console) GenerateIncident(ctx context.Context) (*models.Incident, error) {
	return c.mutations.GenerateIncident(ctx)
}

// SimulateBehaviors asks the backend to synthesize behavior samples.
func (c *Console) SimulateBehaviors(ctx context.Context) (*models.Ack, error) {
	return c.mutations.SimulateBehaviors(ctx)
}

// Bootstrap seeds an empty backend before the first view opens.
func (c *Console) Bootstrap(ctx context.Context) (*mutation.BootstrapResult, error) {
	b := c.cfg.Bootstrap

	return c.mutations.Bootstrap(ctx, mutation.BootstrapConfig{
		Attempts: b.Attempts,
		Delay:    b.Delay.Std(),
		MaxDelay: b.MaxDelay.Std(),
	})
}
