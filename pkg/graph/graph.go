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

// Package graph projects devices and topology into renderable nodes and
// edges.
package graph

import (
	"github.com/carverauto/guardian/pkg/aggregate"
	"github.com/carverauto/guardian/pkg/models"
)

const (
	RouterColor = "#00f0ff"
	RouterSize  = 12
	DeviceSize  = 8
	RouterName  = "Network Router"
)

// Graph is a projection; it is rebuilt from scratch on every poll and never
// modified in place.
type Graph struct {
	Nodes []models.GraphNode `json:"nodes"`
	Edges []models.Link      `json:"edges"`
}

// Style is the render-time encoding of a node.
type Style struct {
	Color string `json:"color"`
	Size  int    `json:"size"`
}

// Router returns the synthetic router node.
func Router() models.GraphNode {
	return models.GraphNode{ID: models.RouterNodeID, Name: RouterName, Type: models.NodeTypeRouter}
}

// FromDevice projects one device into a node.
func FromDevice(d *models.Device) models.GraphNode {
	status := d.Status
	if status == "" {
		status = models.DeviceStatusOnline
	}

	return models.GraphNode{
		ID:         d.ID,
		Name:       d.Name,
		Type:       d.Type,
		Risk:       d.RiskScore,
		Status:     status,
		IsHoneypot: d.IsHoneypot,
	}
}

// Project builds the graph. Nodes come from topology when it has any,
// otherwise from devices; a router node is always present exactly once.
// Explicit topology links are used verbatim minus those naming unknown
// nodes; without links every device hangs off the router.
func Project(topology *models.Topology, devices []models.Device) Graph {
	var source []models.GraphNode

	if topology != nil && len(topology.Nodes) > 0 {
		source = topology.Nodes
	} else {
		source = make([]models.GraphNode, 0, len(devices))
		for i := range devices {
			source = append(source, FromDevice(&devices[i]))
		}
	}

	nodes := make([]models.GraphNode, 0, len(source)+1)
	seen := make(map[string]bool, len(source)+1)

	nodes = append(nodes, Router())
	seen[models.RouterNodeID] = true

	for _, n := range source {
		if n.ID == "" || seen[n.ID] {
			if n.ID == models.RouterNodeID && n.Name != "" {
				nodes[0].Name = n.Name
			}

			continue
		}

		seen[n.ID] = true
		nodes = append(nodes, n)
	}

	edges := []models.Link{}

	if topology != nil && len(topology.Links) > 0 {
		for _, l := range topology.Links {
			if seen[l.Source] && seen[l.Target] {
				edges = append(edges, l)
			}
		}
	} else {
		for _, n := range nodes[1:] {
			edges = append(edges, models.Link{Source: models.RouterNodeID, Target: n.ID})
		}
	}

	return Graph{Nodes: nodes, Edges: edges}
}

// Encode maps a node to its color and size. Precedence: router, honeypot,
// isolated, then risk bucket.
func Encode(n *models.GraphNode) Style {
	switch {
	case n.IsRouter() || n.ID == models.RouterNodeID:
		return Style{Color: RouterColor, Size: RouterSize}
	case n.IsHoneypot:
		return Style{Color: aggregate.ColorLow, Size: DeviceSize}
	case n.Status == models.DeviceStatusIsolated:
		return Style{Color: aggregate.ColorMedium, Size: DeviceSize}
	default:
		return Style{Color: aggregate.Bucket(n.Risk).Color(), Size: DeviceSize}
	}
}

// Node looks a node up by id.
func (g Graph) Node(id string) (models.GraphNode, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return g.Nodes[i], true
		}
	}

	return models.GraphNode{}, false
}

// IDs lists node ids in projection order.
func (g Graph) IDs() []string {
	ids := make([]string, len(g.Nodes))
	for i := range g.Nodes {
		ids[i] = g.Nodes[i].ID
	}

	return ids
}

// Neighbors lists the ids adjacent to id.
func (g Graph) Neighbors(id string) []string {
	out := []string{}

	for _, e := range g.Edges {
		switch id {
		case e.Source:
			out = append(out, e.Target)
		case e.Target:
			out = append(out, e.Source)
		}
	}

	return out
}

// Reconcile keeps selected if it still names a node and clears it
// otherwise.
func (g Graph) Reconcile(selected string) string {
	if _, ok := g.Node(selected); ok {
		return selected
	}

	return ""
}

// Isolate returns a copy of g with device id marked isolated.
func (g Graph) Isolate(id string) (Graph, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID != id || g.Nodes[i].IsRouter() || g.Nodes[i].Status == models.DeviceStatusIsolated {
			continue
		}

		nodes := append([]models.GraphNode(nil), g.Nodes...)
		nodes[i].Status = models.DeviceStatusIsolated

		return Graph{Nodes: nodes, Edges: g.Edges}, true
	}

	return g, false
}
