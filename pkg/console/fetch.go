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
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/guardian/pkg/aggregate"
	"github.com/carverauto/guardian/pkg/graph"
	"github.com/carverauto/guardian/pkg/models"
	"github.com/carverauto/guardian/pkg/poller"
	"github.com/carverauto/guardian/pkg/store"
)

// pollTask adapts a fetch into a scheduler task for v. The fetch result is
// committed only if the scheduler still considers the view live.
func pollTask[T any](v *store.View[T], fetch func(context.Context) (T, error)) poller.Task {
	return func(ctx context.Context) (poller.Commit, error) {
		v.BeginFetch()

		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		return func() { v.Commit(data) }, nil
	}
}

func (c *Console) task(view models.View) (poller.Task, error) {
	switch view {
	case models.ViewDashboard:
		return pollTask(c.views.dashboard, c.fetchDashboard), nil
	case models.ViewDevices:
		return pollTask(c.views.devices, c.fetchDevices), nil
	case models.ViewThreats:
		return pollTask(c.views.threats, c.fetchThreats), nil
	case models.ViewBehavioral:
		return pollTask(c.views.behavioral, c.fetchBehavioral), nil
	case models.ViewHoneypots:
		return pollTask(c.views.honeypots, c.fetchHoneypots), nil
	case models.ViewAgents:
		return pollTask(c.views.agents, c.fetchAgents), nil
	case models.ViewTopology:
		return pollTask(c.views.topology, c.fetchTopology), nil
	case models.ViewIncidents:
		return pollTask(c.views.incidents, c.fetchIncidents), nil
	default:
		return nil, unknownView(view)
	}
}

// fetchDashboard reads its four resources concurrently and fails as a
// whole, so the dashboard never shows a mix of two polls.
func (c *Console) fetchDashboard(ctx context.Context) (DashboardData, error) {
	var (
		stats   *models.Stats
		devices []models.Device
		threats []models.Threat
		alerts  []models.Alert
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats, err = c.api.GetStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		devices, err = c.api.ListDevices(gctx)
		return err
	})
	g.Go(func() (err error) {
		threats, err = c.api.ListThreats(gctx)
		return err
	})
	g.Go(func() (err error) {
		alerts, err = c.api.ListAlerts(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return DashboardData{}, err
	}

	return newDashboardData(stats, devices, threats, alerts), nil
}

func (c *Console) fetchDevices(ctx context.Context) ([]models.Device, error) {
	devices, err := c.api.ListDevices(ctx)
	if err != nil {
		return nil, err
	}

	return models.CloneDevices(devices), nil
}

func (c *Console) fetchThreats(ctx context.Context) (ThreatsData, error) {
	var (
		threats []models.Threat
		devices []models.Device
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		threats, err = c.api.ListThreats(gctx)
		return err
	})
	g.Go(func() (err error) {
		devices, err = c.api.ListDevices(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return ThreatsData{}, err
	}

	threats = models.CloneThreats(threats)

	return ThreatsData{
		Threats: threats,
		Counts:  aggregate.ThreatSummary(threats),
		Devices: models.IndexDevices(devices),
	}, nil
}

// fetchBehavioral keeps the current device selection when it is still
// monitored and otherwise falls back to the first monitored device.
func (c *Console) fetchBehavioral(ctx context.Context) (BehavioralData, error) {
	devices, err := c.api.ListDevices(ctx)
	if err != nil {
		return BehavioralData{}, err
	}

	monitored := aggregate.MonitoredDevices(devices)

	deviceID := c.views.behavioral.Selected()
	if !slices.ContainsFunc(monitored, func(d models.Device) bool { return d.ID == deviceID }) {
		deviceID = ""
		if len(monitored) > 0 {
			deviceID = monitored[0].ID
		}
	}

	if deviceID == "" {
		return newBehavioralData(monitored, "", nil), nil
	}

	samples, err := c.api.ListBehaviors(ctx, deviceID)
	if err != nil {
		return BehavioralData{}, err
	}

	return newBehavioralData(monitored, deviceID, samples), nil
}

func (c *Console) fetchHoneypots(ctx context.Context) (HoneypotData, error) {
	devices, err := c.api.ListDevices(ctx)
	if err != nil {
		return HoneypotData{}, err
	}

	honeypots := aggregate.Honeypots(devices)

	return HoneypotData{Honeypots: honeypots, Counts: aggregate.HoneypotSummary(honeypots)}, nil
}

func (c *Console) fetchAgents(ctx context.Context) (AgentData, error) {
	agents, err := c.api.ListAgents(ctx)
	if err != nil {
		return AgentData{}, err
	}

	if agents == nil {
		agents = []models.Agent{}
	}

	return AgentData{Agents: agents, Counts: aggregate.AgentSummary(agents)}, nil
}

func (c *Console) fetchTopology(ctx context.Context) (graph.Graph, error) {
	var (
		topology *models.Topology
		devices  []models.Device
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		topology, err = c.api.GetTopology(gctx)
		return err
	})
	g.Go(func() (err error) {
		devices, err = c.api.ListDevices(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return graph.Graph{}, err
	}

	return graph.Project(topology, devices), nil
}

func (c *Console) fetchIncidents(ctx context.Context) (IncidentsData, error) {
	var (
		incidents []models.Incident
		devices   []models.Device
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		incidents, err = c.api.ListIncidents(gctx)
		return err
	})
	g.Go(func() (err error) {
		devices, err = c.api.ListDevices(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return IncidentsData{}, err
	}

	if incidents == nil {
		incidents = []models.Incident{}
	}

	return IncidentsData{Incidents: incidents, Devices: models.IndexDevices(devices)}, nil
}
