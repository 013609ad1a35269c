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

// Package cli renders the live console in a terminal.
package cli

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/guardian/pkg/aggregate"
	"github.com/carverauto/guardian/pkg/console"
	"github.com/carverauto/guardian/pkg/logger"
	"github.com/carverauto/guardian/pkg/metrics"
	"github.com/carverauto/guardian/pkg/models"
	"github.com/carverauto/guardian/pkg/notify"
	"github.com/carverauto/guardian/pkg/store"
)

const (
	tickInterval  = time.Second
	toastBuffer   = 16
	actionTimeout = 30 * time.Second
)

// Options configures the terminal UI.
type Options struct {
	Console *console.Console
	// Sampler feeds the host status bar; nil hides it.
	Sampler   *metrics.HostSampler
	Logger    logger.Logger
	Version   string
	Initial   models.View
	Clipboard func(string) error
}

type (
	changedMsg struct{}
	toastMsg   notify.Notification
	tickMsg    time.Time
	hostMsg    metrics.HostSample
	actionMsg  struct {
		action string
		err    error
	}
)

type model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	console *console.Console
	sampler *metrics.HostSampler
	logger  logger.Logger
	version string
	copy    func(string) error

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	styles  styles

	views  []models.View
	active int
	width  int

	changes chan struct{}
	toasts  <-chan notify.Notification
	cancels []func()

	toast    notify.Notification
	hasToast bool
	host     metrics.HostSample
	hasHost  bool
	pending  int
	now      func() time.Time
}

// Run opens the initial view and blocks until the user quits or ctx ends.
// Every view is closed on return.
func Run(ctx context.Context, opts Options) error {
	m, err := newModel(ctx, opts)
	if err != nil {
		return err
	}
	defer m.close()

	if err := m.start(); err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}

	return nil
}

func newModel(ctx context.Context, opts Options) (*model, error) {
	if opts.Console == nil {
		return nil, errConsoleRequired
	}

	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaPink))

	m := &model{
		ctx:     ctx,
		cancel:  cancel,
		console: opts.Console,
		sampler: opts.Sampler,
		logger:  opts.Logger,
		version: opts.Version,
		copy:    opts.Clipboard,
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: sp,
		styles:  newStyles(),
		views:   models.Views(),
		changes: make(chan struct{}, 1),
		now:     time.Now,
	}

	if m.logger == nil {
		m.logger = logger.NewTestLogger()
	}

	if m.copy == nil {
		m.copy = clipboard.WriteAll
	}

	if opts.Initial != "" {
		if i := slices.Index(m.views, opts.Initial); i >= 0 {
			m.active = i
		}
	}

	toasts, cancelToasts := m.console.Notifications().Subscribe(toastBuffer)
	m.toasts = toasts
	m.cancels = append(m.cancels, cancelToasts)

	for _, v := range m.views {
		ch, cancelSub, err := m.console.Subscribe(v)
		if err != nil {
			m.close()

			return nil, err
		}

		m.cancels = append(m.cancels, cancelSub)

		go m.forward(ch)
	}

	return m, nil
}

// forward coalesces the change signals of one view into m.changes.
func (m *model) forward(ch <-chan struct{}) {
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ch:
			select {
			case m.changes <- struct{}{}:
			default:
			}
		}
	}
}

func (m *model) start() error {
	return m.console.Open(m.ctx, m.current())
}

func (m *model) close() {
	for _, c := range m.cancels {
		c()
	}

	m.cancels = nil
	m.cancel()
	m.console.Shutdown()
}

func (m *model) current() models.View { return m.views[m.active] }

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForChange(m.ctx, m.changes),
		waitForToast(m.ctx, m.toasts),
		tick(),
		m.sampleHost(),
	)
}

func waitForChange(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-ch:
			return changedMsg{}
		}
	}
}

func waitForToast(ctx context.Context, ch <-chan notify.Notification) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case n := <-ch:
			return toastMsg(n)
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) sampleHost() tea.Cmd {
	if m.sampler == nil {
		return nil
	}

	sampler, ctx := m.sampler, m.ctx

	return func() tea.Msg {
		return hostMsg(sampler.Sample(ctx))
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case changedMsg:
		return m, waitForChange(m.ctx, m.changes)
	case toastMsg:
		m.toast = notify.Notification(msg)
		m.hasToast = true

		return m, waitForToast(m.ctx, m.toasts)
	case tickMsg:
		if m.hasToast && m.toast.Expired(time.Time(msg), notify.DefaultTTL) {
			m.hasToast = false
		}

		return m, tea.Batch(tick(), m.sampleHost())
	case hostMsg:
		m.host = metrics.HostSample(msg)
		m.hasHost = true
		m.console.Metrics().ObserveHost(m.host)

		return m, nil
	case actionMsg:
		m.pending--
		if msg.err != nil {
			m.logger.Debug().Err(msg.err).Str("action", msg.action).Msg("Console action failed")
		}

		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m, m.switchView(1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.switchView(-1)
	case key.Matches(msg, m.keys.Refresh):
		m.console.Refresh(m.current())
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Isolate):
		return m, m.isolate()
	case key.Matches(msg, m.keys.Mitigate1):
		return m, m.mitigate(models.MitigationDeviceIsolated)
	case key.Matches(msg, m.keys.Mitigate2):
		return m, m.mitigate(models.MitigationTrafficBlocked)
	case key.Matches(msg, m.keys.Mitigate3):
		return m, m.mitigate(models.MitigationMonitoring)
	case key.Matches(msg, m.keys.Generate):
		return m, m.generateIncident()
	case key.Matches(msg, m.keys.Simulate):
		return m, m.simulate()
	case key.Matches(msg, m.keys.Copy):
		m.copySelection()
	}

	return m, nil
}

func (m *model) switchView(delta int) tea.Cmd {
	from := m.current()
	m.active = (m.active + delta + len(m.views)) % len(m.views)

	if err := m.console.Switch(m.ctx, from, m.current()); err != nil {
		m.console.Notifications().Error(m.current(), "Failed to open %s: %v", m.current(), err)
	}

	return nil
}

// selectable lists the ids the cursor can move over in the active view.
func (m *model) selectable() []string {
	ids := func(devices []models.Device) []string {
		out := make([]string, len(devices))
		for i := range devices {
			out[i] = devices[i].ID
		}

		return out
	}

	switch m.current() {
	case models.ViewDevices:
		return ids(m.console.Devices().Data)
	case models.ViewThreats:
		threats := m.console.Threats().Data.Threats
		out := make([]string, len(threats))

		for i := range threats {
			out[i] = threats[i].ID
		}

		return out
	case models.ViewBehavioral:
		return ids(m.console.Behavioral().Data.Devices)
	case models.ViewHoneypots:
		return ids(m.console.Honeypots().Data.Honeypots)
	case models.ViewAgents:
		agents := m.console.Agents().Data.Agents
		out := make([]string, len(agents))

		for i := range agents {
			out[i] = agents[i].ID
		}

		return out
	case models.ViewTopology:
		return m.console.Topology().Data.IDs()
	case models.ViewIncidents:
		incidents := m.console.Incidents().Data.Incidents
		out := make([]string, len(incidents))

		for i := range incidents {
			out[i] = incidents[i].ID
		}

		return out
	case models.ViewDashboard:
		return nil
	default:
		return nil
	}
}

func (m *model) moveSelection(delta int) {
	ids := m.selectable()
	if len(ids) == 0 {
		return
	}

	view := m.current()
	idx := slices.Index(ids, m.console.Selected(view))

	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(ids) - 1
	default:
		idx = min(max(idx+delta, 0), len(ids)-1)
	}

	if err := m.console.Select(view, ids[idx]); err != nil {
		m.logger.Debug().Err(err).Msg("Selection rejected")
	}
}

// run executes fn off the UI goroutine. Outcomes reach the user through
// the notification bus.
func (m *model) run(action string, fn func(ctx context.Context) error) tea.Cmd {
	m.pending++

	parent := m.ctx

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, actionTimeout)
		defer cancel()

		return actionMsg{action: action, err: fn(ctx)}
	}
}

func (m *model) selectedDevice() (models.Device, bool) {
	var id string

	switch m.current() {
	case models.ViewDevices, models.ViewTopology:
		id = m.console.Selected(m.current())
	case models.ViewDashboard, models.ViewThreats, models.ViewBehavioral,
		models.ViewHoneypots, models.ViewAgents, models.ViewIncidents:
		return models.Device{}, false
	}

	if id == "" {
		return models.Device{}, false
	}

	if m.current() == models.ViewTopology {
		n, ok := m.console.Topology().Data.Node(id)
		if !ok || n.IsRouter() {
			return models.Device{}, false
		}

		return models.Device{ID: n.ID, Name: n.Name, RiskScore: n.Risk, Status: n.Status, IsHoneypot: n.IsHoneypot}, true
	}

	devices := m.console.Devices().Data
	if i := slices.IndexFunc(devices, func(d models.Device) bool { return d.ID == id }); i >= 0 {
		return devices[i], true
	}

	return models.Device{}, false
}

func (m *model) isolate() tea.Cmd {
	d, ok := m.selectedDevice()
	if !ok {
		return nil
	}

	if !aggregate.IsolationCandidate(&d) {
		m.console.Notifications().Info(m.current(), "Isolation is offered only for high-risk devices")

		return nil
	}

	id := d.ID

	return m.run("isolate", func(ctx context.Context) error {
		return m.console.IsolateDevice(ctx, id)
	})
}

func (m *model) mitigate(action models.MitigationAction) tea.Cmd {
	if m.current() != models.ViewThreats {
		return nil
	}

	id := m.console.Selected(models.ViewThreats)
	if id == "" {
		return nil
	}

	return m.run("mitigate", func(ctx context.Context) error {
		return m.console.MitigateThreat(ctx, id, action)
	})
}

func (m *model) generateIncident() tea.Cmd {
	if m.current() != models.ViewIncidents {
		return nil
	}

	return m.run("generate_incident", func(ctx context.Context) error {
		_, err := m.console.GenerateIncident(ctx)
		return err
	})
}

func (m *model) simulate() tea.Cmd {
	if m.current() != models.ViewBehavioral {
		return nil
	}

	return m.run("simulate_behaviors", func(ctx context.Context) error {
		_, err := m.console.SimulateBehaviors(ctx)
		return err
	})
}

// copyText returns what "copy" means in the active view.
func (m *model) copyText() (string, error) {
	view := m.current()
	id := m.console.Selected(view)

	switch view {
	case models.ViewIncidents:
		if inc, ok := m.console.Incidents().Data.Selected(id); ok && inc.Explanation != "" {
			return inc.Explanation, nil
		}
	case models.ViewTopology, models.ViewThreats, models.ViewAgents:
		if id != "" {
			return id, nil
		}
	case models.ViewDevices, models.ViewHoneypots, models.ViewBehavioral:
		if d, ok := m.knownDevice(id); ok && d.IP != "" {
			return d.IP, nil
		}
	case models.ViewDashboard:
	}

	return "", errNothingToCopy
}

// knownDevice looks id up in the device lists already on screen.
func (m *model) knownDevice(id string) (models.Device, bool) {
	if id == "" {
		return models.Device{}, false
	}

	match := func(d models.Device) bool { return d.ID == id }

	for _, list := range [][]models.Device{
		m.console.Devices().Data,
		m.console.Honeypots().Data.Honeypots,
		m.console.Behavioral().Data.Devices,
	} {
		if i := slices.IndexFunc(list, match); i >= 0 {
			return list[i], true
		}
	}

	return models.Device{}, false
}

func (m *model) copySelection() {
	bus := m.console.Notifications()

	text, err := m.copyText()
	if err != nil {
		bus.Info(m.current(), "Nothing selected to copy")

		return
	}

	if err := m.copy(text); err != nil {
		bus.Error(m.current(), "Failed to copy to clipboard")

		return
	}

	bus.Success(m.current(), "Copied to clipboard")
}

func (m *model) loading() bool {
	st := m.console.Status(m.current())

	return st.State == store.StateLoading || st.State == store.StateRefreshing || m.pending > 0
}
