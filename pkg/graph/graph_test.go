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

package graph

import (
	"testing"

	"github.com/carverauto/guardian/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeDevices() []models.Device {
	return []models.Device{
		{ID: "d1", Name: "Camera", Type: "Smart Camera", RiskScore: 20},
		{ID: "d2", Name: "Lock", Type: "Smart Lock", RiskScore: 55, Status: models.DeviceStatusOnline},
		{ID: "d3", Name: "Decoy", Type: "Smart TV", RiskScore: 90, IsHoneypot: true},
	}
}

func TestProject_StarFromDevices(t *testing.T) {
	g := Project(nil, threeDevices())

	require.Len(t, g.Nodes, 4)
	assert.Equal(t, models.RouterNodeID, g.Nodes[0].ID)
	assert.True(t, g.Nodes[0].IsRouter())

	require.Len(t, g.Edges, 3)

	for i, e := range g.Edges {
		assert.Equal(t, models.RouterNodeID, e.Source)
		assert.Equal(t, g.Nodes[i+1].ID, e.Target)
	}

	assert.Equal(t, models.DeviceStatusOnline, g.Nodes[1].Status, "missing status defaults to online")
}

func TestProject_TopologyNodesWithoutLinks(t *testing.T) {
	topo := &models.Topology{Nodes: []models.GraphNode{
		{ID: "router", Name: "Edge Router", Type: "router"},
		{ID: "a", Type: "Smart Plug", Risk: 10},
		{ID: "b", Type: "Smart Plug", Risk: 75},
		{ID: "c", Type: "Smart Plug", Risk: 45},
	}}

	g := Project(topo, nil)

	require.Len(t, g.Nodes, 4)
	assert.Equal(t, "Edge Router", g.Nodes[0].Name)
	assert.Len(t, g.Edges, 3)
}

func TestProject_ExplicitLinksVerbatim(t *testing.T) {
	topo := &models.Topology{
		Nodes: []models.GraphNode{
			{ID: "router", Type: "router"},
			{ID: "a"}, {ID: "b"},
		},
		Links: []models.Link{
			{Source: "router", Target: "a"},
			{Source: "a", Target: "b"},
			{Source: "b", Target: "ghost"},
		},
	}

	g := Project(topo, threeDevices())

	require.Len(t, g.Nodes, 3, "topology nodes win over devices")
	assert.Equal(t, []models.Link{
		{Source: "router", Target: "a"},
		{Source: "a", Target: "b"},
	}, g.Edges)
	assert.ElementsMatch(t, []string{"router", "b"}, g.Neighbors("a"))
}

func TestProject_SynthesizesMissingRouter(t *testing.T) {
	topo := &models.Topology{Nodes: []models.GraphNode{{ID: "a"}, {ID: "a"}, {ID: ""}}}

	g := Project(topo, nil)

	assert.Equal(t, []string{"router", "a"}, g.IDs())
	assert.Len(t, g.Edges, 1)
}

func TestProject_Empty(t *testing.T) {
	g := Project(nil, nil)

	assert.Equal(t, []string{"router"}, g.IDs())
	assert.NotNil(t, g.Edges)
	assert.Empty(t, g.Edges)
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		node models.GraphNode
		want Style
	}{
		{"router", Router(), Style{Color: "#00f0ff", Size: 12}},
		{"honeypot beats risk", models.GraphNode{ID: "h", Risk: 95, IsHoneypot: true}, Style{Color: "#00ff9d", Size: 8}},
		{"isolated beats risk", models.GraphNode{ID: "i", Risk: 95, Status: models.DeviceStatusIsolated}, Style{Color: "#ffb800", Size: 8}},
		{"high", models.GraphNode{ID: "x", Risk: 70}, Style{Color: "#ff2a6d", Size: 8}},
		{"medium", models.GraphNode{ID: "x", Risk: 40}, Style{Color: "#ffb800", Size: 8}},
		{"low", models.GraphNode{ID: "x", Risk: 39}, Style{Color: "#00ff9d", Size: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(&tt.node))
		})
	}
}

func TestGraph_SelectionAcrossProjections(t *testing.T) {
	g := Project(nil, threeDevices())
	sel := g.Reconcile("d2")
	assert.Equal(t, "d2", sel)

	g = Project(nil, threeDevices()[:2])
	assert.Equal(t, "d2", g.Reconcile(sel), "preserved while present")

	g = Project(nil, threeDevices()[:1])
	assert.Empty(t, g.Reconcile(sel), "cleared on miss")
}

func TestGraph_Isolate(t *testing.T) {
	g := Project(nil, threeDevices())

	next, ok := g.Isolate("d2")
	require.True(t, ok)

	n, _ := next.Node("d2")
	assert.Equal(t, models.DeviceStatusIsolated, n.Status)

	orig, _ := g.Node("d2")
	assert.Equal(t, models.DeviceStatusOnline, orig.Status)

	_, ok = next.Isolate("d2")
	assert.False(t, ok)

	_, ok = g.Isolate(models.RouterNodeID)
	assert.False(t, ok)
}
