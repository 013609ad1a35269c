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

package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/guardian/pkg/config"
	"github.com/carverauto/guardian/pkg/console"
	"github.com/carverauto/guardian/pkg/metrics"
	"github.com/carverauto/guardian/pkg/models"
	"github.com/carverauto/guardian/pkg/notify"
	"github.com/carverauto/guardian/pkg/telemetry"
)

func sampleDevices() []models.Device {
	return []models.Device{
		{ID: "d1", Name: "Smart Camera 1", IP: "192.168.1.10", RiskScore: 85, Status: models.DeviceStatusOnline},
		{ID: "d2", Name: "Smart Bulb", IP: "192.168.1.11", RiskScore: 15, Status: models.DeviceStatusOnline},
		{ID: "hp1", Name: "Decoy NAS", IP: "192.168.1.200", Status: models.DeviceStatusOnline, IsHoneypot: true},
	}
}

type testUI struct {
	m       *model
	api     *telemetry.MockAPI
	console *console.Console
	copied  []string
}

func newTestUI(t *testing.T, initial models.View) *testUI {
	t.Helper()

	ctrl := gomock.NewController(t)
	api := telemetry.NewMockAPI(ctrl)

	cfg := config.Default()
	cfg.BackendURL = "http://backend.test"

	c, err := console.New(console.Options{API: api, Config: cfg})
	require.NoError(t, err)

	ui := &testUI{api: api, console: c}

	m, err := newModel(context.Background(), Options{
		Console: c,
		Initial: initial,
		Version: "v0.0.0-test",
		Clipboard: func(s string) error {
			ui.copied = append(ui.copied, s)
			return nil
		},
	})
	require.NoError(t, err)
	t.Cleanup(m.close)

	ui.m = m

	return ui
}

func (ui *testUI) press(t *testing.T, keys ...string) tea.Cmd {
	t.Helper()

	var cmd tea.Cmd

	for _, k := range keys {
		var msg tea.KeyMsg

		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}

		var updated tea.Model
		updated, cmd = ui.m.Update(msg)
		ui.m = updated.(*model)
	}

	return cmd
}

func latestToast(t *testing.T, c *console.Console) notify.Notification {
	t.Helper()

	n, ok := c.Notifications().Latest(time.Now(), notify.DefaultTTL)
	require.True(t, ok)

	return n
}

func TestNewModel_RequiresConsole(t *testing.T) {
	_, err := newModel(context.Background(), Options{})
	require.ErrorIs(t, err, errConsoleRequired)
}

func TestTabSwitchesViews(t *testing.T) {
	ui := newTestUI(t, models.ViewDashboard)

	ui.api.EXPECT().GetStats(gomock.Any()).Return(&models.Stats{}, nil).AnyTimes()
	ui.api.EXPECT().ListDevices(gomock.Any()).Return(sampleDevices(), nil).AnyTimes()
	ui.api.EXPECT().ListThreats(gomock.Any()).Return(nil, nil).AnyTimes()
	ui.api.EXPECT().ListAlerts(gomock.Any()).Return(nil, nil).AnyTimes()
	ui.api.EXPECT().ListIncidents(gomock.Any()).Return(nil, nil).AnyTimes()

	require.NoError(t, ui.m.start())
	assert.True(t, ui.console.IsOpen(models.ViewDashboard))

	ui.press(t, "tab")
	assert.Equal(t, models.ViewDevices, ui.m.current())
	assert.True(t, ui.console.IsOpen(models.ViewDevices))
	assert.False(t, ui.console.IsOpen(models.ViewDashboard))

	ui.press(t, "shift+tab", "shift+tab")
	assert.Equal(t, models.ViewIncidents, ui.m.current(), "switching wraps around")
}

func TestSelectionMovesWithinView(t *testing.T) {
	ui := newTestUI(t, models.ViewDevices)

	ui.api.EXPECT().ListDevices(gomock.Any()).Return(sampleDevices(), nil)
	require.NoError(t, ui.console.PollOnce(context.Background(), models.ViewDevices))

	ui.press(t, "j")
	assert.Equal(t, "d1", ui.console.Selected(models.ViewDevices))

	ui.press(t, "j", "j", "j")
	assert.Equal(t, "hp1", ui.console.Selected(models.ViewDevices), "cursor stops at the last row")

	ui.press(t, "k")
	assert.Equal(t, "d2", ui.console.Selected(models.ViewDevices))
}

func TestIsolateKey(t *testing.T) {
	ui := newTestUI(t, models.ViewDevices)

	ui.api.EXPECT().ListDevices(gomock.Any()).Return(sampleDevices(), nil)
	require.NoError(t, ui.console.PollOnce(context.Background(), models.ViewDevices))

	ui.press(t, "j")
	require.Equal(t, "d1", ui.console.Selected(models.ViewDevices))

	ui.api.EXPECT().IsolateDevice(gomock.Any(), "d1").Return(&models.Ack{Message: "ok"}, nil)

	cmd := ui.press(t, "i")
	require.NotNil(t, cmd)

	msg, ok := cmd().(actionMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)

	_, _ = ui.m.Update(msg)
	assert.Zero(t, ui.m.pending)
	assert.Equal(t, models.DeviceStatusIsolated, ui.console.Devices().Data[0].Status)
	assert.Equal(t, "Smart Camera 1 has been isolated from the network", latestToast(t, ui.console).Message)
}

func TestIsolateKey_NotOfferedForLowRisk(t *testing.T) {
	ui := newTestUI(t, models.ViewDevices)

	ui.api.EXPECT().ListDevices(gomock.Any()).Return(sampleDevices(), nil)
	require.NoError(t, ui.console.PollOnce(context.Background(), models.ViewDevices))
	require.NoError(t, ui.console.Select(models.ViewDevices, "d2"))

	ui.api.EXPECT().IsolateDevice(gomock.Any(), gomock.Any()).Times(0)

	assert.Nil(t, ui.press(t, "i"))
	assert.Equal(t, notify.LevelInfo, latestToast(t, ui.console).Level)
}

func TestMitigateKeys(t *testing.T) {
	ui := newTestUI(t, models.ViewThreats)

	ui.api.EXPECT().ListThreats(gomock.Any()).Return([]models.Threat{{ID: "T123", DeviceID: "d1", Severity: models.SeverityHigh}}, nil)
	ui.api.EXPECT().ListDevices(gomock.Any()).Return(sampleDevices(), nil)
	require.NoError(t, ui.console.PollOnce(context.Background(), models.ViewThreats))

	ui.press(t, "j")

	ui.api.EXPECT().MitigateThreat(gomock.Any(), "T123", models.MitigationTrafficBlocked).Return(&models.Ack{}, nil)

	cmd := ui.press(t, "2")
	require.NotNil(t, cmd)
	require.NoError(t, cmd().(actionMsg).err)

	threats := ui.console.Threats().Data.Threats
	assert.True(t, threats[0].Mitigated)
	assert.Equal(t, "Traffic Blocked", threats[0].Action())
	assert.Contains(t, ui.m.View(), "mitigated: Traffic Blocked")
}

func TestMutationKeysAreScopedToTheirView(t *testing.T) {
	ui := newTestUI(t, models.ViewDashboard)

	assert.Nil(t, ui.press(t, "g"))
	assert.Nil(t, ui.press(t, "s"))
	assert.Nil(t, ui.press(t, "1"))
}

func TestGenerateAndCopyIncident(t *testing.T) {
	ui := newTestUI(t, models.ViewIncidents)

	ui.api.EXPECT().ListIncidents(gomock.Any()).Return([]models.Incident{}, nil)
	ui.api.EXPECT().ListDevices(gomock.Any()).Return(sampleDevices(), nil)
	require.NoError(t, ui.console.PollOnce(context.Background(), models.ViewIncidents))
	assert.Contains(t, ui.m.View(), "No incidents yet")

	ui.api.EXPECT().GenerateIncident(gomock.Any()).Return(&models.Incident{
		ID:             "inc-1",
		AttackType:     "Botnet Infection",
		TargetDeviceID: "d1",
		Timeline:       []models.TimelineEvent{{Time: "00:00:00", Severity: models.SeverityCritical, Event: "C2 beacon"}},
		Explanation:    "The camera joined a botnet.",
	}, nil)

	cmd := ui.press(t, "g")
	require.NotNil(t, cmd)
	require.NoError(t, cmd().(actionMsg).err)

	assert.Equal(t, "inc-1", ui.console.Selected(models.ViewIncidents))

	view := ui.m.View()
	assert.Contains(t, view, "Botnet Infection")
	assert.Contains(t, view, "C2 beacon")

	ui.press(t, "c")
	assert.Equal(t, []string{"The camera joined a botnet."}, ui.copied)
	assert.Equal(t, "Copied to clipboard", latestToast(t, ui.console).Message)
}

func TestCopyFailure(t *testing.T) {
	ui := newTestUI(t, models.ViewTopology)
	ui.m.copy = func(string) error { return errors.New("no clipboard") }

	ui.press(t, "c")
	assert.Equal(t, "Nothing selected to copy", latestToast(t, ui.console).Message)

	ui.api.EXPECT().GetTopology(gomock.Any()).Return(&models.Topology{}, nil)
	ui.api.EXPECT().ListDevices(gomock.Any()).Return(sampleDevices(), nil)
	require.NoError(t, ui.console.PollOnce(context.Background(), models.ViewTopology))

	ui.press(t, "j")
	ui.press(t, "c")
	assert.Equal(t, "Failed to copy to clipboard", latestToast(t, ui.console).Message)
}

func TestToastExpires(t *testing.T) {
	ui := newTestUI(t, models.ViewDashboard)

	sent := time.Now()
	_, _ = ui.m.Update(toastMsg(notify.Notification{Level: notify.LevelError, Message: "Failed to fetch dashboard", Time: sent}))
	assert.Contains(t, ui.m.View(), "Failed to fetch dashboard")

	_, _ = ui.m.Update(tickMsg(sent.Add(notify.DefaultTTL + time.Second)))
	assert.NotContains(t, ui.m.View(), "Failed to fetch dashboard")
}

func TestViewRendersHeaderAndStates(t *testing.T) {
	ui := newTestUI(t, models.ViewDashboard)

	_, _ = ui.m.Update(hostMsg(metrics.HostSample{CPUPercent: 12, MemUsedBytes: 2 << 30, MemTotalBytes: 8 << 30}))

	out := ui.m.View()
	assert.Contains(t, out, "Guardian Console")
	assert.Contains(t, out, "v0.0.0-test")
	assert.Contains(t, out, "host cpu 12%")
	assert.Contains(t, out, "Loading…")

	for _, v := range models.Views() {
		assert.True(t, strings.Contains(out, v.String()), "tab %s missing", v)
	}
}

func TestDashboardRendersSummary(t *testing.T) {
	ui := newTestUI(t, models.ViewDashboard)

	ui.api.EXPECT().GetStats(gomock.Any()).Return(&models.Stats{TotalDevices: 3, NetworkHealth: models.NetworkHealthWarning}, nil)
	ui.api.EXPECT().ListDevices(gomock.Any()).Return(sampleDevices(), nil)
	ui.api.EXPECT().ListThreats(gomock.Any()).Return(nil, nil)
	ui.api.EXPECT().ListAlerts(gomock.Any()).Return([]models.Alert{{ID: "a1", Title: "Port scan detected", Severity: models.SeverityHigh}}, nil)
	require.NoError(t, ui.console.PollOnce(context.Background(), models.ViewDashboard))

	out := ui.m.View()
	assert.Contains(t, out, "Risk distribution")
	assert.Contains(t, out, "Smart Camera 1")
	assert.Contains(t, out, "Port scan detected")
	assert.Contains(t, out, "warning")
}
