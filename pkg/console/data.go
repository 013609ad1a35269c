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
	"slices"

	"github.com/carverauto/guardian/pkg/aggregate"
	"github.com/carverauto/guardian/pkg/graph"
	"github.com/carverauto/guardian/pkg/models"
	"github.com/carverauto/guardian/pkg/store"
)

// DashboardData is one consistent dashboard poll. The raw collections are
// kept so optimistic effects can recompute Summary.
type DashboardData struct {
	Summary aggregate.Dashboard `json:"summary"`
	Devices []models.Device     `json:"-"`
	Threats []models.Threat     `json:"-"`
	Alerts  []models.Alert      `json:"-"`
}

func newDashboardData(stats *models.Stats, devices []models.Device, threats []models.Threat, alerts []models.Alert) DashboardData {
	return DashboardData{
		Summary: aggregate.DashboardSummary(stats, devices, threats, alerts),
		Devices: devices,
		Threats: threats,
		Alerts:  alerts,
	}
}

// ThreatsData is the threat list plus the device index used to label
// weak device references.
type ThreatsData struct {
	Threats []models.Threat        `json:"threats"`
	Counts  aggregate.ThreatCounts `json:"counts"`
	Devices models.DeviceIndex     `json:"-"`
}

// BehavioralData holds the samples of one monitored device.
type BehavioralData struct {
	Devices      []models.Device         `json:"devices"`
	DeviceID     string                  `json:"device_id,omitempty"`
	Samples      []models.BehaviorSample `json:"-"`
	Series       []aggregate.SeriesPoint `json:"series"`
	Anomalies    []models.BehaviorSample `json:"anomalies"`
	AnomalyCount int                     `json:"anomaly_count"`
}

func newBehavioralData(devices []models.Device, deviceID string, samples []models.BehaviorSample) BehavioralData {
	if samples == nil {
		samples = []models.BehaviorSample{}
	}

	return BehavioralData{
		Devices:      devices,
		DeviceID:     deviceID,
		Samples:      samples,
		Series:       aggregate.BehaviorSeries(samples),
		Anomalies:    aggregate.AnomalyFeed(samples, aggregate.AnomalyFeedLimit),
		AnomalyCount: aggregate.AnomalyCount(samples),
	}
}

// HoneypotData lists decoy devices.
type HoneypotData struct {
	Honeypots []models.Device          `json:"honeypots"`
	Counts    aggregate.HoneypotCounts `json:"counts"`
}

// AgentData lists the autonomous agents.
type AgentData struct {
	Agents []models.Agent        `json:"agents"`
	Counts aggregate.AgentCounts `json:"counts"`
}

// IncidentsData is the incident history, newest first.
type IncidentsData struct {
	Incidents []models.Incident  `json:"incidents"`
	Devices   models.DeviceIndex `json:"-"`
}

// Selected returns the incident with id.
func (d IncidentsData) Selected(id string) (models.Incident, bool) {
	i := slices.IndexFunc(d.Incidents, func(inc models.Incident) bool { return inc.ID == id })
	if i < 0 {
		return models.Incident{}, false
	}

	return d.Incidents[i], true
}

func deviceIDs(devices []models.Device) []string {
	ids := make([]string, len(devices))
	for i := range devices {
		ids[i] = devices[i].ID
	}

	return ids
}

// views is the store of every view, each typed by its data.
type views struct {
	dashboard  *store.View[DashboardData]
	devices    *store.View[[]models.Device]
	threats    *store.View[ThreatsData]
	behavioral *store.View[BehavioralData]
	honeypots  *store.View[HoneypotData]
	agents     *store.View[AgentData]
	topology   *store.View[graph.Graph]
	incidents  *store.View[IncidentsData]
}

func newViews() *views {
	return &views{
		dashboard: store.NewView[DashboardData](models.ViewDashboard),
		devices: store.NewView(models.ViewDevices,
			store.WithSelection(deviceIDs, false),
			store.WithEmpty(func(d []models.Device) bool { return len(d) == 0 }),
		),
		threats: store.NewView(models.ViewThreats,
			store.WithSelection(func(d ThreatsData) []string {
				ids := make([]string, len(d.Threats))
				for i := range d.Threats {
					ids[i] = d.Threats[i].ID
				}

				return ids
			}, false),
			store.WithEmpty(func(d ThreatsData) bool { return len(d.Threats) == 0 }),
		),
		behavioral: store.NewView(models.ViewBehavioral,
			store.WithSelection(func(d BehavioralData) []string { return deviceIDs(d.Devices) }, true),
			store.WithEmpty(func(d BehavioralData) bool { return len(d.Devices) == 0 }),
		),
		honeypots: store.NewView(models.ViewHoneypots,
			store.WithSelection(func(d HoneypotData) []string { return deviceIDs(d.Honeypots) }, false),
			store.WithEmpty(func(d HoneypotData) bool { return len(d.Honeypots) == 0 }),
		),
		agents: store.NewView(models.ViewAgents,
			store.WithSelection(func(d AgentData) []string {
				ids := make([]string, len(d.Agents))
				for i := range d.Agents {
					ids[i] = d.Agents[i].ID
				}

				return ids
			}, false),
			store.WithEmpty(func(d AgentData) bool { return len(d.Agents) == 0 }),
		),
		topology: store.NewView(models.ViewTopology,
			store.WithSelection(func(g graph.Graph) []string { return g.IDs() }, false),
		),
		incidents: store.NewView(models.ViewIncidents,
			store.WithSelection(func(d IncidentsData) []string {
				ids := make([]string, len(d.Incidents))
				for i := range d.Incidents {
					ids[i] = d.Incidents[i].ID
				}

				return ids
			}, true),
			store.WithEmpty(func(d IncidentsData) bool { return len(d.Incidents) == 0 }),
		),
	}
}

// tracked is the type-erased part of a store view the console needs.
type tracked interface {
	Name() models.View
	Fail(err error)
	CancelFetch()
	Select(id string) bool
	Selected() string
	Subscribe() (<-chan struct{}, func())
}

func (v *views) get(view models.View) (tracked, bool) {
	switch view {
	case models.ViewDashboard:
		return v.dashboard, true
	case models.ViewDevices:
		return v.devices, true
	case models.ViewThreats:
		return v.threats, true
	case models.ViewBehavioral:
		return v.behavioral, true
	case models.ViewHoneypots:
		return v.honeypots, true
	case models.ViewAgents:
		return v.agents, true
	case models.ViewTopology:
		return v.topology, true
	case models.ViewIncidents:
		return v.incidents, true
	default:
		return nil, false
	}
}
