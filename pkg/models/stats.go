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

// NetworkHealth is the server's overall verdict.
type NetworkHealth string

const (
	NetworkHealthGood     NetworkHealth = "good"
	NetworkHealthWarning  NetworkHealth = "warning"
	NetworkHealthCritical NetworkHealth = "critical"
)

// Stats is the server-computed summary, replaced wholesale on each poll.
type Stats struct {
	TotalDevices    int           `json:"total_devices"`
	ActiveThreats   int           `json:"active_threats"`
	NetworkHealth   NetworkHealth `json:"network_health"`
	ActiveHoneypots int           `json:"active_honeypots"`
	UnreadAlerts    int           `json:"unread_alerts,omitempty"`
	AvgRiskScore    float64       `json:"avg_risk_score,omitempty"`
}

// Health returns the reported health, defaulting to good when the backend
// left it blank.
func (s *Stats) Health() NetworkHealth {
	if s.NetworkHealth == "" {
		return NetworkHealthGood
	}

	return s.NetworkHealth
}
