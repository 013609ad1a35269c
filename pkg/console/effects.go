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
	"github.com/carverauto/guardian/pkg/mutation"
)

var _ mutation.Effects = (*Console)(nil)

func isolateIn(devices []models.Device, id string) ([]models.Device, bool) {
	i := slices.IndexFunc(devices, func(d models.Device) bool { return d.ID == id })
	if i < 0 || devices[i].Isolated() {
		return devices, false
	}

	out := models.CloneDevices(devices)
	out[i].Status = models.DeviceStatusIsolated

	return out, true
}

func mitigateIn(threats []models.Threat, id string, action models.MitigationAction) ([]models.Threat, bool) {
	i := slices.IndexFunc(threats, func(t models.Threat) bool { return t.ID == id })
	if i < 0 || threats[i].Mitigated {
		return threats, false
	}

	label := string(action)
	out := models.CloneThreats(threats)
	out[i].Mitigated = true
	out[i].MitigationAction = &label

	return out, true
}

// DeviceIsolated marks the device isolated in every view that shows it.
func (c *Console) DeviceIsolated(id string) {
	c.views.devices.Mutate(func(d []models.Device) ([]models.Device, bool) {
		return isolateIn(d, id)
	})

	c.views.dashboard.Mutate(func(d DashboardData) (DashboardData, bool) {
		devices, changed := isolateIn(d.Devices, id)
		if !changed {
			return d, false
		}

		stats := d.Summary.Stats

		return newDashboardData(&stats, devices, d.Threats, d.Alerts), true
	})

	c.views.topology.Mutate(func(g graph.Graph) (graph.Graph, bool) {
		return g.Isolate(id)
	})
}

// ThreatMitigated marks the threat mitigated with action.
func (c *Console) ThreatMitigated(id string, action models.MitigationAction) {
	c.views.threats.Mutate(func(d ThreatsData) (ThreatsData, bool) {
		threats, changed := mitigateIn(d.Threats, id, action)
		if !changed {
			return d, false
		}

		return ThreatsData{Threats: threats, Counts: aggregate.ThreatSummary(threats), Devices: d.Devices}, true
	})

	c.views.dashboard.Mutate(func(d DashboardData) (DashboardData, bool) {
		threats, changed := mitigateIn(d.Threats, id, action)
		if !changed {
			return d, false
		}

		stats := d.Summary.Stats

		return newDashboardData(&stats, d.Devices, threats, d.Alerts), true
	})
}

// IncidentGenerated prepends inc to the history and selects it.
func (c *Console) IncidentGenerated(inc models.Incident) {
	c.views.incidents.Mutate(func(d IncidentsData) (IncidentsData, bool) {
		return IncidentsData{Incidents: models.PrependIncident(d.Incidents, inc), Devices: d.Devices}, true
	})

	c.views.incidents.Select(inc.ID)
}

// Resync refreshes the open views among views. Closed views poll on their
// next Open anyway.
func (c *Console) Resync(views ...models.View) {
	for _, v := range views {
		if c.scheduler.Running(v) {
			c.scheduler.Refresh(v)
		}
	}
}
