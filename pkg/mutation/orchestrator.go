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

// Package mutation performs user-initiated writes against the backend and
// reconciles their effects into local view state.
package mutation

import (
	"context"
	"errors"
	"time"

	"github.com/carverauto/guardian/pkg/logger"
	"github.com/carverauto/guardian/pkg/models"
	"github.com/carverauto/guardian/pkg/notify"
	"github.com/carverauto/guardian/pkg/telemetry"
)

// Action names a mutation for logs, metrics and errors.
type Action string

const (
	ActionIsolate    Action = "isolate"
	ActionMitigate   Action = "mitigate"
	ActionIncident   Action = "generate_incident"
	ActionSimulate   Action = "simulate_behaviors"
	ActionInitialize Action = "initialize"
)

// Effects applies confirmed mutation effects to local state. Each method
// must copy before modifying so earlier snapshots stay intact.
type Effects interface {
	DeviceIsolated(id string)
	ThreatMitigated(id string, action models.MitigationAction)
	IncidentGenerated(incident models.Incident)
	Resync(views ...models.View)
}

// Recorder observes mutation outcomes.
type Recorder interface {
	MutationCompleted(action string, result string)
}

// Result labels for Recorder.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
)

// Config wires an Orchestrator. API is required; Effects may be nil for
// headless callers that only need the write.
type Config struct {
	API      telemetry.API
	Effects  Effects
	Notifier notify.Publisher
	Logger   logger.Logger
	Recorder Recorder
}

// Orchestrator validates, writes and reconciles mutations. It never
// retries a write.
type Orchestrator struct {
	api      telemetry.API
	effects  Effects
	notifier notify.Publisher
	logger   logger.Logger
	recorder Recorder
}

// New creates an Orchestrator.
func New(cfg Config) *Orchestrator {
	o := &Orchestrator{
		api:      cfg.API,
		effects:  cfg.Effects,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		recorder: cfg.Recorder,
	}

	if o.effects == nil {
		o.effects = nopEffects{}
	}

	if o.notifier == nil {
		o.notifier = notify.NewBus()
	}

	if o.logger == nil {
		o.logger = logger.NewTestLogger()
	}

	if o.recorder == nil {
		o.recorder = nopRecorder{}
	}

	return o
}

// IsolateDevice cuts device off the network. Honeypots and devices that are
// already isolated are rejected without contacting the backend.
func (o *Orchestrator) IsolateDevice(ctx context.Context, device *models.Device) error {
	if err := validateIsolate(device); err != nil {
		return o.reject(ActionIsolate, models.ViewDevices, err)
	}

	start := time.Now()

	if _, err := o.api.IsolateDevice(ctx, device.ID); err != nil {
		return o.fail(ActionIsolate, models.ViewDevices, device.ID, start, err, "Failed to isolate device")
	}

	o.effects.DeviceIsolated(device.ID)
	o.succeed(ActionIsolate, models.ViewDevices, device.ID, start,
		"%s has been isolated from the network", deviceName(device))
	o.effects.Resync(models.ViewDevices, models.ViewDashboard, models.ViewTopology)

	return nil
}

// MitigateThreat applies one of the fixed mitigation labels to threat.
func (o *Orchestrator) MitigateThreat(ctx context.Context, threat *models.Threat, action models.MitigationAction) error {
	if err := validateMitigate(threat, action); err != nil {
		return o.reject(ActionMitigate, models.ViewThreats, err)
	}

	start := time.Now()

	if _, err := o.api.MitigateThreat(ctx, threat.ID, action); err != nil {
		return o.fail(ActionMitigate, models.ViewThreats, threat.ID, start, err, "Failed to mitigate threat")
	}

	o.effects.ThreatMitigated(threat.ID, action)
	o.succeed(ActionMitigate, models.ViewThreats, threat.ID, start, "Threat mitigated successfully")
	o.effects.Resync(models.ViewThreats, models.ViewDashboard)

	return nil
}

// GenerateIncident asks the backend for a new forensic incident, prepends
// it to the incident history and selects it.
func (o *Orchestrator) GenerateIncident(ctx context.Context) (*models.Incident, error) {
	start := time.Now()

	inc, err := o.api.GenerateIncident(ctx)
	if err != nil {
		return nil, o.fail(ActionIncident, models.ViewIncidents, "", start, err, "Failed to generate incident")
	}

	o.effects.IncidentGenerated(*inc)
	o.succeed(ActionIncident, models.ViewIncidents, inc.ID, start, "New incident generated")
	o.effects.Resync(models.ViewIncidents)

	return inc, nil
}

// SimulateBehaviors asks the backend to synthesize behavior samples.
func (o *Orchestrator) SimulateBehaviors(ctx context.Context) (*models.Ack, error) {
	start := time.Now()

	ack, err := o.api.SimulateBehaviors(ctx)
	if err != nil {
		return nil, o.fail(ActionSimulate, models.ViewBehavioral, "", start, err, "Failed to generate behaviors")
	}

	o.succeed(ActionSimulate, models.ViewBehavioral, "", start, "Behavior data generated")
	o.effects.Resync(models.ViewBehavioral)

	return ack, nil
}

func validateIsolate(d *models.Device) error {
	switch {
	case d == nil || d.ID == "":
		return invalid(ActionIsolate, "", ErrMissingID)
	case d.IsHoneypot:
		return invalid(ActionIsolate, d.ID, ErrHoneypot)
	case d.Isolated():
		return invalid(ActionIsolate, d.ID, ErrAlreadyIsolated)
	default:
		return nil
	}
}

func validateMitigate(t *models.Threat, action models.MitigationAction) error {
	switch {
	case t == nil || t.ID == "":
		return invalid(ActionMitigate, "", ErrMissingID)
	case !action.Valid():
		return invalid(ActionMitigate, t.ID, ErrInvalidAction)
	case t.Mitigated:
		return invalid(ActionMitigate, t.ID, ErrAlreadyMitigated)
	default:
		return nil
	}
}

func deviceName(d *models.Device) string {
	if d.Name != "" {
		return d.Name
	}

	return d.ID
}

func (o *Orchestrator) reject(action Action, view models.View, err error) error {
	o.recorder.MutationCompleted(string(action), ResultRejected)
	o.notifier.Error(view, "%v", err)
	o.logger.Debug().Err(err).Str("action", string(action)).Msg("Mutation rejected")

	return err
}

func (o *Orchestrator) fail(action Action, view models.View, id string, start time.Time, err error, msg string) error {
	o.recorder.MutationCompleted(string(action), ResultFailure)
	o.notifier.Error(view, "%s", msg)
	o.logger.Warn().
		Err(err).
		Str("action", string(action)).
		Str("id", id).
		Bool("network", telemetry.IsNetwork(err)).
		Dur("elapsed", time.Since(start)).
		Msg("Mutation failed")

	return err
}

func (o *Orchestrator) succeed(action Action, view models.View, id string, start time.Time, format string, args ...interface{}) {
	o.recorder.MutationCompleted(string(action), ResultSuccess)
	o.notifier.Success(view, format, args...)
	o.logger.Info().
		Str("action", string(action)).
		Str("id", id).
		Dur("elapsed", time.Since(start)).
		Msg("Mutation applied")
}

// IsValidation reports whether err is a local rejection.
func IsValidation(err error) bool {
	var ve *ValidationError

	return errors.As(err, &ve)
}

type nopEffects struct{}

func (nopEffects) DeviceIsolated(string)                           {}
func (nopEffects) ThreatMitigated(string, models.MitigationAction) {}
func (nopEffects) IncidentGenerated(models.Incident)               {}
func (nopEffects) Resync(...models.View)                           {}

type nopRecorder struct{}

func (nopRecorder) MutationCompleted(string, string) {}
