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

package models

const (
	// RouterNodeID is the id of the synthetic router node.
	RouterNodeID = "router"
	// NodeTypeRouter marks the router node; device nodes carry their
	// device type instead.
	NodeTypeRouter = "router"
)

// GraphNode is a read-only projection of a Device, or the synthetic router.
type GraphNode struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Type       string       `json:"type"`
	Risk       int          `json:"risk"`
	Status     DeviceStatus `json:"status,omitempty"`
	IsHoneypot bool         `json:"is_honeypot,omitempty"`
}

// IsRouter reports whether this is the synthetic router node.
func (n *GraphNode) IsRouter() bool {
	return n.Type == NodeTypeRouter
}

// Link is an undirected edge by node id.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Topology is the payload of GET /network-topology.
type Topology struct {
	Nodes []GraphNode `json:"nodes"`
	Links []Link      `json:"links"`
}
