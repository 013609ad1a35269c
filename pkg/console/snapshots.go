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
	"github.com/carverauto/guardian/pkg/graph"
	"github.com/carverauto/guardian/pkg/models"
	"github.com/carverauto/guardian/pkg/store"
)

func (c *Console) Dashboard() store.Snapshot[DashboardData] { return c.views.dashboard.Snapshot() }
func (c *Console) Devices() store.Snapshot[[]models.Device] { return c.views.devices.Snapshot() }
func (c *Console) Threats() store.Snapshot[ThreatsData]     { return c.views.threats.Snapshot() }
func (c *Console) Honeypots() store.Snapshot[HoneypotData]  { return c.views.honeypots.Snapshot() }
func (c *Console) Agents() store.Snapshot[AgentData]        { return c.views.agents.Snapshot() }
func (c *Console) Topology() store.Snapshot[graph.Graph]    { return c.views.topology.Snapshot() }
func (c *Console) Incidents() store.Snapshot[IncidentsData] { return c.views.incidents.Snapshot() }

// Behavioral returns the behavioral snapshot. Samples are only shown for the
// selected device: while the chart still belongs to a previous selection the
// device list is kept and the chart reads as refreshing.
func (c *Console) Behavioral() store.Snapshot[BehavioralData] {
	s := c.views.behavioral.Snapshot()
	if !s.Loaded || s.Selected == "" || s.Selected == s.Data.DeviceID {
		return s
	}

	s.Data = newBehavioralData(s.Data.Devices, s.Selected, nil)
	if s.State == store.StateReady {
		s.State = store.StateRefreshing
	}

	return s
}

// Status is the type-erased header of a view snapshot.
type Status struct {
	View       models.View
	State      store.State
	Loaded     bool
	Zero       bool
	Optimistic bool
	Err        error
	Selected   string
}

func statusOf[T any](s store.Snapshot[T]) Status {
	return Status{
		View:       s.View,
		State:      s.State,
		Loaded:     s.Loaded,
		Zero:       s.Zero(),
		Optimistic: s.Optimistic,
		Err:        s.Err,
		Selected:   s.Selected,
	}
}

// Status returns the state header of view.
func (c *Console) Status(view models.View) Status {
	switch view {
	case models.ViewDashboard:
		return statusOf(c.Dashboard())
	case models.ViewDevices:
		return statusOf(c.Devices())
	case models.ViewThreats:
		return statusOf(c.Threats())
	case models.ViewBehavioral:
		return statusOf(c.Behavioral())
	case models.ViewHoneypots:
		return statusOf(c.Honeypots())
	case models.ViewAgents:
		return statusOf(c.Agents())
	case models.ViewTopology:
		return statusOf(c.Topology())
	case models.ViewIncidents:
		return statusOf(c.Incidents())
	default:
		return Status{View: view}
	}
}
