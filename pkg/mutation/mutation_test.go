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
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/guardian/pkg/logger"
	"github.com/carverauto/guardian/pkg/models"
	"github.com/carverauto/guardian/pkg/notify"
	"github.com/carverauto/guardian/pkg/store"
	"github.com/carverauto/guardian/pkg/telemetry"
)

// threatEffects applies mitigations to a real store view.
type threatEffects struct {
	mu      sync.Mutex
	threats *store.View[[]models.Threat]
	devices *store.View[[]models.Device]
	inc     []models.Incident
	resyncs [][]models.View
}

func newThreatEffects() *threatEffects {
	return &threatEffects{
		threats: store.NewView[[]models.Threat](models.ViewThreats),
		devices: store.NewView[[]models.Device](models.ViewDevices),
	}
}

func (e *threatEffects) DeviceIsolated(id string) {
	e.devices.Mutate(func(in []models.Device) ([]models.Device, bool) {
		out := models.CloneDevices(in)
		for i := range out {
			if out[i].ID == id {
				out[i].Status = models.DeviceStatusIsolated

				return out, true
			}
		}

		return in, false
	})
}

func (e *threatEffects) ThreatMitigated(id string, action models.MitigationAction) {
	e.threats.Mutate(func(in []models.Threat) ([]models.Threat, bool) {
		out := models.CloneThreats(in)
		for i := range out {
			if out[i].ID == id {
				label := string(action)
				out[i].Mitigated = true
				out[i].MitigationAction = &label

				return out, true
			}
		}

		return in, false
	})
}

func (e *threatEffects) IncidentGenerated(inc models.Incident) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.inc = models.PrependIncident(e.inc, inc)
}

func (e *threatEffects) Resync(views ...models.View) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resyncs = append(e.resyncs, views)
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) MutationCompleted(action, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.counts == nil {
		r.counts = map[string]int{}
	}

	r.counts[action+"/"+result]++
}

type fixture struct {
	api      *telemetry.MockAPI
	effects  *threatEffects
	bus      *notify.Bus
	recorder *countingRecorder
	orch     *Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		api:      telemetry.NewMockAPI(ctrl),
		effects:  newThreatEffects(),
		bus:      notify.NewBus(),
		recorder: &countingRecorder{},
	}

	f.orch = New(Config{
		API:      f.api,
		Effects:  f.effects,
		Notifier: f.bus,
		Logger:   logger.NewTestLogger(),
		Recorder: f.recorder,
	})

	return f
}

func (f *fixture) lastNotification(t *testing.T) notify.Notification {
	t.Helper()

	recent := f.bus.Recent()
	require.NotEmpty(t, recent)

	return recent[len(recent)-1]
}

func TestMitigateThreat_SuccessAppliesImmediately(t *testing.T) {
	f := newFixture(t)

	f.effects.threats.BeginFetch()
	f.effects.threats.Commit([]models.Threat{{ID: "T123", Severity: models.SeverityHigh}})
	before := f.effects.threats.Snapshot()

	f.api.EXPECT().
		MitigateThreat(gomock.Any(), "T123", models.MitigationTrafficBlocked).
		Return(&models.Ack{Message: "Threat mitigated"}, nil).
		Times(1)

	threat := before.Data[0]
	require.NoError(t, f.orch.MitigateThreat(context.Background(), &threat, models.MitigationTrafficBlocked))

	snap := f.effects.threats.Snapshot()
	require.Len(t, snap.Data, 1)
	assert.True(t, snap.Data[0].Mitigated)
	assert.Equal(t, "Traffic Blocked", snap.Data[0].Action())
	assert.True(t, snap.Optimistic)
	assert.False(t, before.Data[0].Mitigated, "earlier snapshot must stay intact")

	n := f.lastNotification(t)
	assert.Equal(t, notify.LevelSuccess, n.Level)
	assert.Equal(t, "Threat mitigated successfully", n.Message)
	assert.Equal(t, [][]models.View{{models.ViewThreats, models.ViewDashboard}}, f.effects.resyncs)
	assert.Equal(t, 1, f.recorder.counts["mitigate/success"])
}

func TestMitigateThreat_FailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)

	f.effects.threats.BeginFetch()
	f.effects.threats.Commit([]models.Threat{{ID: "T123"}})

	f.api.EXPECT().
		MitigateThreat(gomock.Any(), "T123", models.MitigationTrafficBlocked).
		Return(nil, &telemetry.ServerError{Method: http.MethodPost, Path: "/threats/T123/mitigate", StatusCode: 500}).
		Times(1)

	threat := models.Threat{ID: "T123"}
	err := f.orch.MitigateThreat(context.Background(), &threat, models.MitigationTrafficBlocked)
	require.Error(t, err)
	assert.ErrorIs(t, err, telemetry.ErrServerStatus)

	snap := f.effects.threats.Snapshot()
	assert.False(t, snap.Data[0].Mitigated)
	assert.False(t, snap.Optimistic)
	assert.Empty(t, f.effects.resyncs)

	n := f.lastNotification(t)
	assert.Equal(t, notify.LevelError, n.Level)
	assert.Equal(t, "Failed to mitigate threat", n.Message)
	assert.Equal(t, 1, f.recorder.counts["mitigate/failure"])
}

func TestMitigateThreat_Validation(t *testing.T) {
	label := string(models.MitigationMonitoring)

	tests := []struct {
		name   string
		threat *models.Threat
		action models.MitigationAction
		want   error
	}{
		{"nil threat", nil, models.MitigationMonitoring, ErrMissingID},
		{"empty id", &models.Threat{}, models.MitigationMonitoring, ErrMissingID},
		{"unknown label", &models.Threat{ID: "T1"}, "Reboot", ErrInvalidAction},
		{"already mitigated", &models.Threat{ID: "T1", Mitigated: true, MitigationAction: &label}, models.MitigationMonitoring, ErrAlreadyMitigated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			err := f.orch.MitigateThreat(context.Background(), tt.threat, tt.action)
			require.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidation(err))
			assert.Equal(t, notify.LevelError, f.lastNotification(t).Level)
			assert.Equal(t, 1, f.recorder.counts["mitigate/rejected"])
		})
	}
}

func TestIsolateDevice_OptimisticThenAuthoritative(t *testing.T) {
	f := newFixture(t)

	cam := models.Device{ID: "d1", Name: "Smart Camera 1", RiskScore: 85, Status: models.DeviceStatusOnline}
	f.effects.devices.BeginFetch()
	f.effects.devices.Commit([]models.Device{cam})

	f.api.EXPECT().IsolateDevice(gomock.Any(), "d1").Return(&models.Ack{Message: "Device isolated"}, nil)

	require.NoError(t, f.orch.IsolateDevice(context.Background(), &cam))

	snap := f.effects.devices.Snapshot()
	assert.Equal(t, models.DeviceStatusIsolated, snap.Data[0].Status)
	assert.True(t, snap.Optimistic)
	assert.Equal(t, "Smart Camera 1 has been isolated from the network", f.lastNotification(t).Message)
	assert.Equal(t, [][]models.View{{models.ViewDevices, models.ViewDashboard, models.ViewTopology}}, f.effects.resyncs)

	// The resync poll is authoritative even if it disagrees.
	f.effects.devices.BeginFetch()
	f.effects.devices.Commit([]models.Device{cam})

	snap = f.effects.devices.Snapshot()
	assert.Equal(t, models.DeviceStatusOnline, snap.Data[0].Status)
	assert.False(t, snap.Optimistic)
}

func TestIsolateDevice_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		device *models.Device
		want   error
	}{
		{"missing", nil, ErrMissingID},
		{"honeypot", &models.Device{ID: "hp1", IsHoneypot: true}, ErrHoneypot},
		{"already isolated", &models.Device{ID: "d1", Status: models.DeviceStatusIsolated}, ErrAlreadyIsolated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			err := f.orch.IsolateDevice(context.Background(), tt.device)
			require.ErrorIs(t, err, tt.want)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, ActionIsolate, ve.Action)
		})
	}
}

func TestIsolateDevice_NetworkFailure(t *testing.T) {
	f := newFixture(t)

	f.api.EXPECT().
		IsolateDevice(gomock.Any(), "d1").
		Return(nil, &telemetry.NetworkError{Method: http.MethodPost, Path: "/devices/d1/isolate", Err: context.DeadlineExceeded}).
		Times(1)

	err := f.orch.IsolateDevice(context.Background(), &models.Device{ID: "d1"})
	require.Error(t, err)
	assert.True(t, telemetry.IsNetwork(err))
	assert.Equal(t, "Failed to isolate device", f.lastNotification(t).Message)
	assert.Empty(t, f.effects.resyncs)
}

func TestGenerateIncident_PrependsAndResyncs(t *testing.T) {
	f := newFixture(t)
	f.effects.inc = []models.Incident{{ID: "old"}}

	f.api.EXPECT().GenerateIncident(gomock.Any()).Return(&models.Incident{ID: "new", AttackType: "Botnet Infection"}, nil)

	inc, err := f.orch.GenerateIncident(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", inc.ID)

	require.Len(t, f.effects.inc, 2)
	assert.Equal(t, "new", f.effects.inc[0].ID)
	assert.Equal(t, "New incident generated", f.lastNotification(t).Message)
	assert.Equal(t, [][]models.View{{models.ViewIncidents}}, f.effects.resyncs)
}

func TestSimulateBehaviors(t *testing.T) {
	f := newFixture(t)

	f.api.EXPECT().SimulateBehaviors(gomock.Any()).Return(&models.Ack{Message: "Generated 20 behaviors"}, nil)

	ack, err := f.orch.SimulateBehaviors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Generated 20 behaviors", ack.Message)
	assert.Equal(t, "Behavior data generated", f.lastNotification(t).Message)

	f.api.EXPECT().SimulateBehaviors(gomock.Any()).Return(nil, errors.New("boom"))

	_, err = f.orch.SimulateBehaviors(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to generate behaviors", f.lastNotification(t).Message)
}

func fastBootstrap() BootstrapConfig {
	return BootstrapConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestBootstrap_InitializesOnceForEmptyBackend(t *testing.T) {
	f := newFixture(t)

	f.api.EXPECT().GetStats(gomock.Any()).Return(&models.Stats{TotalDevices: 0}, nil).Times(1)
	f.api.EXPECT().Initialize(gomock.Any()).Return(&models.InitializeResult{Message: "ok", Devices: 10, Agents: 4}, nil).Times(1)

	res, err := f.orch.Bootstrap(context.Background(), fastBootstrap())
	require.NoError(t, err)
	assert.True(t, res.Initialized)
	assert.Equal(t, "ok", res.Message)
	require.Len(t, f.effects.resyncs, 1)
	assert.ElementsMatch(t, models.Views(), f.effects.resyncs[0])
}

func TestBootstrap_NeverInitializesPopulatedBackend(t *testing.T) {
	f := newFixture(t)

	f.api.EXPECT().GetStats(gomock.Any()).Return(&models.Stats{TotalDevices: 5}, nil).Times(1)
	f.api.EXPECT().Initialize(gomock.Any()).Times(0)

	res, err := f.orch.Bootstrap(context.Background(), fastBootstrap())
	require.NoError(t, err)
	assert.False(t, res.Initialized)
	assert.Equal(t, 5, res.Stats.TotalDevices)
}

func TestBootstrap_RetriesOnlyNetworkErrors(t *testing.T) {
	f := newFixture(t)

	netErr := &telemetry.NetworkError{Method: http.MethodGet, Path: "/stats", Err: errors.New("connection refused")}

	gomock.InOrder(
		f.api.EXPECT().GetStats(gomock.Any()).Return(nil, netErr),
		f.api.EXPECT().GetStats(gomock.Any()).Return(&models.Stats{TotalDevices: 3}, nil),
	)

	res, err := f.orch.Bootstrap(context.Background(), fastBootstrap())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Stats.TotalDevices)

	f = newFixture(t)

	f.api.EXPECT().
		GetStats(gomock.Any()).
		Return(nil, &telemetry.ServerError{Method: http.MethodGet, Path: "/stats", StatusCode: 503}).
		Times(1)
	f.api.EXPECT().Initialize(gomock.Any()).Times(0)

	_, err = f.orch.Bootstrap(context.Background(), fastBootstrap())
	require.Error(t, err)
	assert.ErrorIs(t, err, telemetry.ErrServerStatus)
}

func TestBootstrap_GivesUpAfterAttempts(t *testing.T) {
	f := newFixture(t)

	netErr := &telemetry.NetworkError{Method: http.MethodGet, Path: "/stats", Err: errors.New("connection refused")}
	f.api.EXPECT().GetStats(gomock.Any()).Return(nil, netErr).Times(3)

	_, err := f.orch.Bootstrap(context.Background(), fastBootstrap())
	require.Error(t, err)
	assert.True(t, telemetry.IsNetwork(err))
	assert.Equal(t, "Failed to fetch stats", f.lastNotification(t).Message)
}
