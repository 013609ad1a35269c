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

// View names one independently polled page of the console.
type View string

const (
	ViewDashboard  View = "dashboard"
	ViewDevices    View = "devices"
	ViewThreats    View = "threats"
	ViewBehavioral View = "behavioral"
	ViewHoneypots  View = "honeypots"
	ViewAgents     View = "agents"
	ViewTopology   View = "topology"
	ViewIncidents  View = "incidents"
)

// Views lists every view in tab order.
func Views() []View {
	return []View{
		ViewDashboard, ViewDevices, ViewThreats, ViewBehavioral,
		ViewHoneypots, ViewAgents, ViewTopology, ViewIncidents,
	}
}

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	for _, known := range Views() {
		if v == known {
			return true
		}
	}

	return false
}

func (v View) String() string { return string(v) }
