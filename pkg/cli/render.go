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
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/guardian/pkg/aggregate"
	"github.com/carverauto/guardian/pkg/console"
	"github.com/carverauto/guardian/pkg/graph"
	"github.com/carverauto/guardian/pkg/models"
	"github.com/carverauto/guardian/pkg/store"
)

const (
	timeLayout   = "15:04:05"
	barWidth     = 30
	bytesPerGiB  = 1 << 30
	cursorMarker = "▸ "
	noCursor     = "  "
)

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")

	if m.hasToast {
		b.WriteString(m.styles.toast(m.toast.Level).Render(m.toast.Message))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))

	return m.styles.app.Render(b.String())
}

func (m *model) renderHeader() string {
	parts := []string{m.styles.title.Render("Guardian Console")}

	if m.version != "" {
		parts = append(parts, m.styles.muted.Render(m.version))
	}

	if m.loading() {
		parts = append(parts, m.spinner.View())
	}

	if m.hasHost {
		parts = append(parts, m.styles.muted.Render(fmt.Sprintf("host cpu %.0f%% mem %.1f/%.1f GiB",
			m.host.CPUPercent,
			float64(m.host.MemUsedBytes)/bytesPerGiB,
			float64(m.host.MemTotalBytes)/bytesPerGiB)))
	}

	return strings.Join(parts, "  ")
}

func (m *model) renderTabs() string {
	tabs := make([]string, len(m.views))

	for i, v := range m.views {
		if i == m.active {
			tabs[i] = m.styles.activeTab.Render(v.String())
		} else {
			tabs[i] = m.styles.tab.Render(v.String())
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderState returns the placeholder for a view that has nothing to show
// yet, and a stale marker for one that does.
func (m *model) renderState(st console.Status, empty string) (string, bool) {
	switch {
	case !st.Loaded && st.Err != nil:
		return m.styles.error.Render("Failed to load: " + st.Err.Error()), true
	case !st.Loaded:
		return m.styles.muted.Render("Loading…"), true
	case st.Zero:
		return m.styles.muted.Render(empty), true
	}

	var b strings.Builder

	if st.Err != nil {
		b.WriteString(m.styles.warning.Render("Showing last data: " + st.Err.Error()))
		b.WriteString("\n")
	}

	if st.Optimistic {
		b.WriteString(m.styles.muted.Render("pending confirmation"))
		b.WriteString("\n")
	}

	return b.String(), false
}

func (m *model) renderBody() string {
	view := m.current()
	st := m.console.Status(view)

	switch view {
	case models.ViewDashboard:
		return m.withState(st, "", func() string { return m.renderDashboard(m.console.Dashboard().Data) })
	case models.ViewDevices:
		return m.withState(st, "No devices discovered", func() string { return m.renderDevices(m.console.Devices()) })
	case models.ViewThreats:
		return m.withState(st, "No threats detected", func() string { return m.renderThreats(m.console.Threats()) })
	case models.ViewBehavioral:
		return m.withState(st, "No monitored devices", func() string { return m.renderBehavioral(m.console.Behavioral()) })
	case models.ViewHoneypots:
		return m.withState(st, "No honeypots deployed", func() string { return m.renderHoneypots(m.console.Honeypots()) })
	case models.ViewAgents:
		return m.withState(st, "No agents reporting", func() string { return m.renderAgents(m.console.Agents()) })
	case models.ViewTopology:
		return m.withState(st, "", func() string { return m.renderTopology(m.console.Topology()) })
	case models.ViewIncidents:
		return m.withState(st, "No incidents yet. Press g to generate one.", func() string {
			return m.renderIncidents(m.console.Incidents())
		})
	default:
		return ""
	}
}

func (m *model) withState(st console.Status, empty string, body func() string) string {
	prefix, done := m.renderState(st, empty)
	if done {
		return prefix
	}

	return prefix + body()
}

func (m *model) cursor(selected bool) string {
	if selected {
		return m.styles.selected.Render(cursorMarker)
	}

	return noCursor
}

func bar(value, total int) string {
	if total <= 0 {
		return ""
	}

	return strings.Repeat("█", value*barWidth/total)
}

func (m *model) renderDashboard(d console.DashboardData) string {
	s := d.Summary

	var b strings.Builder

	fmt.Fprintf(&b, "%s  devices %d  threats %d (%d mitigated)  honeypots %d  health %s\n\n",
		m.styles.header.Render("Summary"),
		s.Stats.TotalDevices, s.Threats.Active, s.Threats.Mitigated, s.Stats.ActiveHoneypots,
		m.healthStyle(s.Stats.Health()).Render(string(s.Stats.Health())))

	b.WriteString(m.styles.header.Render("Risk distribution"))
	b.WriteString("\n")

	for _, p := range s.RiskBars {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color))
		fmt.Fprintf(&b, "%-7s %3d %s\n", p.Name, p.Value, style.Render(bar(p.Value, s.Risk.Total())))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.header.Render("High-risk devices"))
	b.WriteString("\n")

	for i := range s.HighRiskDevices {
		dev := &s.HighRiskDevices[i]
		fmt.Fprintf(&b, "  %-24s %-16s %s\n", dev.Name, dev.IP, riskStyle(dev.RiskScore).Render(fmt.Sprint(dev.RiskScore)))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.header.Render("Recent alerts"))
	b.WriteString("\n")

	for i := range s.RecentAlerts {
		a := &s.RecentAlerts[i]
		fmt.Fprintf(&b, "  %s %-9s %s\n",
			a.Timestamp.Format(timeLayout), m.styles.severity(a.Severity).Render(string(a.Severity)), a.Title)
	}

	return b.String()
}

func (m *model) healthStyle(h models.NetworkHealth) lipgloss.Style {
	switch h {
	case models.NetworkHealthGood:
		return m.styles.success
	case models.NetworkHealthWarning:
		return m.styles.warning
	case models.NetworkHealthCritical:
		return m.styles.error
	default:
		return m.styles.muted
	}
}

func (m *model) renderDevices(s store.Snapshot[[]models.Device]) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s%-24s %-14s %-16s %-9s %s\n", noCursor, "NAME", "TYPE", "IP", "STATUS", "RISK")

	for i := range s.Data {
		d := &s.Data[i]
		name := d.Name

		if d.IsHoneypot {
			name += " (honeypot)"
		}

		fmt.Fprintf(&b, "%s%-24s %-14s %-16s %-9s %s\n",
			m.cursor(d.ID == s.Selected), name, d.Type, d.IP, d.Status,
			riskStyle(d.RiskScore).Render(fmt.Sprint(d.RiskScore)))
	}

	if i := indexOfDevice(s.Data, s.Selected); i >= 0 {
		d := &s.Data[i]

		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s %s fw %s  mac %s  ports %v  protocols %s\n",
			m.styles.header.Render(d.Name), d.Manufacturer, d.Model, d.FirmwareVersion, d.MAC,
			d.OpenPorts, strings.Join(d.Protocols, ","))

		if aggregate.IsolationCandidate(d) {
			b.WriteString(m.styles.warning.Render("press i to isolate this device"))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func indexOfDevice(devices []models.Device, id string) int {
	for i := range devices {
		if devices[i].ID == id {
			return i
		}
	}

	return -1
}

func (m *model) renderThreats(s store.Snapshot[console.ThreatsData]) string {
	var b strings.Builder

	c := s.Data.Counts
	fmt.Fprintf(&b, "total %d  active %d  mitigated %d\n\n", c.Total, c.Active, c.Mitigated)

	for i := range s.Data.Threats {
		t := &s.Data.Threats[i]
		state := m.styles.error.Render("active")

		if t.Mitigated {
			state = m.styles.success.Render("mitigated: " + t.Action())
		}

		fmt.Fprintf(&b, "%s%-9s %-22s %-24s %s\n",
			m.cursor(t.ID == s.Selected),
			m.styles.severity(t.Severity).Render(string(t.Severity)),
			t.Type, s.Data.Devices.Label(t.DeviceID), state)
	}

	if s.Selected != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.muted.Render("1 isolate device  2 block traffic  3 monitor"))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *model) renderBehavioral(s store.Snapshot[console.BehavioralData]) string {
	var b strings.Builder

	for i := range s.Data.Devices {
		d := &s.Data.Devices[i]
		fmt.Fprintf(&b, "%s%s\n", m.cursor(d.ID == s.Selected), d.Name)
	}

	fmt.Fprintf(&b, "\n%s  anomalies %d\n", m.styles.header.Render("Traffic (MB/s)"), s.Data.AnomalyCount)

	maxTraffic := 0.0
	for _, p := range s.Data.Series {
		maxTraffic = max(maxTraffic, p.TrafficVolume)
	}

	for _, p := range s.Data.Series {
		width := 0
		if maxTraffic > 0 {
			width = int(p.TrafficVolume / maxTraffic * barWidth)
		}

		line := fmt.Sprintf("%2d %6.2f %4d conn %s", p.Index, p.TrafficVolume, p.ConnectionCount, strings.Repeat("▇", width))
		if p.Anomaly != nil {
			line = m.styles.error.Render(line + " anomaly")
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(s.Data.Anomalies) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.header.Render("Anomaly feed"))
		b.WriteString("\n")

		for i := range s.Data.Anomalies {
			a := &s.Data.Anomalies[i]
			fmt.Fprintf(&b, "  %s score %.2f  %d destinations\n",
				a.Timestamp.Format(timeLayout), a.AnomalyScore, len(a.Destinations))
		}
	}

	b.WriteString(m.styles.muted.Render("\npress s to simulate new behavior data"))

	return b.String()
}

func (m *model) renderHoneypots(s store.Snapshot[console.HoneypotData]) string {
	var b strings.Builder

	fmt.Fprintf(&b, "deployed %d  online %d\n\n", s.Data.Counts.Total, s.Data.Counts.Online)

	for i := range s.Data.Honeypots {
		h := &s.Data.Honeypots[i]
		fmt.Fprintf(&b, "%s%-24s %-14s %-16s %s  %s\n",
			m.cursor(h.ID == s.Selected), h.Name, h.Type, h.IP, h.Status, strings.Join(h.Protocols, ","))
	}

	return b.String()
}

func (m *model) renderAgents(s store.Snapshot[console.AgentData]) string {
	var b strings.Builder

	c := s.Data.Counts
	fmt.Fprintf(&b, "agents %d  active %d  avg confidence %d%%\n\n", c.Total, c.Active, c.AvgConfidencePercent)

	for i := range s.Data.Agents {
		a := &s.Data.Agents[i]
		status := m.styles.muted.Render(string(a.Status))

		if a.Status == models.AgentStatusActive {
			status = m.styles.success.Render(string(a.Status))
		}

		fmt.Fprintf(&b, "%s%-28s %-8s %3d%%  %s\n",
			m.cursor(a.ID == s.Selected), a.Name, status, aggregate.ConfidencePercent(a.Confidence), a.LastAction)
	}

	return b.String()
}

func (m *model) renderTopology(s store.Snapshot[graph.Graph]) string {
	var b strings.Builder

	g := s.Data
	fmt.Fprintf(&b, "nodes %d  links %d\n\n", len(g.Nodes), len(g.Edges))

	for i := range g.Nodes {
		n := &g.Nodes[i]
		label := fmt.Sprintf("● %s", n.Name)

		if !n.IsRouter() {
			label = fmt.Sprintf("%s  risk %d  %s", label, n.Risk, n.Status)
		}

		b.WriteString(m.cursor(n.ID == s.Selected))
		b.WriteString(nodeStyle(n).Render(label))
		b.WriteString("\n")
	}

	if s.Selected != "" {
		neighbors := g.Neighbors(s.Selected)
		fmt.Fprintf(&b, "\n%s linked to %d node(s): %s\n",
			m.styles.header.Render(s.Selected), len(neighbors), strings.Join(neighbors, ", "))
	}

	return b.String()
}

func (m *model) renderIncidents(s store.Snapshot[console.IncidentsData]) string {
	var b strings.Builder

	for i := range s.Data.Incidents {
		inc := &s.Data.Incidents[i]
		fmt.Fprintf(&b, "%s%-22s %-16s -> %s\n",
			m.cursor(inc.ID == s.Selected), inc.AttackType, inc.SourceIP, s.Data.Devices.Label(inc.TargetDeviceID))
	}

	inc, ok := s.Data.Selected(s.Selected)
	if !ok {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(m.styles.header.Render("Timeline"))
	fmt.Fprintf(&b, "  peak %s\n", m.styles.severity(inc.PeakSeverity()).Render(string(inc.PeakSeverity())))

	for _, e := range inc.Timeline {
		fmt.Fprintf(&b, "  %s %-9s %s\n", e.Time, m.styles.severity(e.Severity).Render(string(e.Severity)), e.Event)
	}

	if inc.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.panel.Render(inc.Explanation))
		b.WriteString("\n")
		b.WriteString(m.styles.muted.Render("press c to copy the explanation"))
	}

	return b.String()
}
