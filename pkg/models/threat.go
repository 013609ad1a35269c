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

import "slices"

// Severity is shared by threats, alerts and incident timeline events.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities low < medium < high < critical. Unknown labels
// (the backend also emits "warning" on alerts) rank with medium.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	default:
		return 1
	}
}

// MitigationAction is one of the fixed labels the backend accepts on
// POST /threats/{id}/mitigate.
type MitigationAction string

const (
	MitigationDeviceIsolated MitigationAction = "Device Isolated"
	MitigationTrafficBlocked MitigationAction = "Traffic Blocked"
	MitigationMonitoring     MitigationAction = "Monitoring"
)

// MitigationActions lists the labels in the order they are offered.
func MitigationActions() []MitigationAction {
	return []MitigationAction{MitigationDeviceIsolated, MitigationTrafficBlocked, MitigationMonitoring}
}

// Valid reports whether the label belongs to the fixed set.
func (a MitigationAction) Valid() bool {
	return slices.Contains(MitigationActions(), a)
}

// Threat is a detection against a device. Mitigated only ever moves from
// false to true.
type Threat struct {
	ID               string    `json:"id"`
	Type             string    `json:"threat_type"`
	Severity         Severity  `json:"severity"`
	Description      string    `json:"description"`
	DeviceID         string    `json:"device_id"`
	Timestamp        Timestamp `json:"timestamp"`
	Mitigated        bool      `json:"mitigated"`
	MitigationAction *string   `json:"mitigation_action"`
}

// Action returns the mitigation label or "" when none was recorded.
func (t *Threat) Action() string {
	if t.MitigationAction == nil {
		return ""
	}

	return *t.MitigationAction
}

// CloneThreats copies the collection for copy-on-write patches.
func CloneThreats(in []Threat) []Threat {
	if in == nil {
		return []Threat{}
	}

	return slices.Clone(in)
}
