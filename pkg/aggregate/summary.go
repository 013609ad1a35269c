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

package aggregate

import (
	"math"

	"github.com/carverauto/guardian/pkg/models"
)

const (
	// RecentAlertLimit bounds the dashboard alert feed.
	RecentAlertLimit = 5
	// HighRiskLimit bounds the dashboard high-risk device list.
	HighRiskLimit = 5
	// AnomalyFeedLimit bounds the behavioral anomaly feed.
	AnomalyFeedLimit = 5
)

// RecentAlerts returns the first limit alerts in server order.
func RecentAlerts(alerts []models.Alert, limit int) []models.Alert {
	n := min(len(alerts), max(limit, 0))
	out := make([]models.Alert, n)
	copy(out, alerts[:n])

	return out
}

// ThreatCounts summarizes the threat list.
type ThreatCounts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Mitigated int `json:"mitigated"`
}

func ThreatSummary(threats []models.Threat) ThreatCounts {
	c := ThreatCounts{Total: len(threats)}

	for i := range threats {
		if threats[i].Mitigated {
			c.Mitigated++
		} else {
			c.Active++
		}
	}

	return c
}

// AgentCounts summarizes the agent roster.
type AgentCounts struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	// AvgConfidencePercent is the mean confidence as a rounded percentage,
	// zero for an empty roster.
	AvgConfidencePercent int `json:"avg_confidence_percent"`
}

func AgentSummary(agents []models.Agent) AgentCounts {
	c := AgentCounts{Total: len(agents)}
	if len(agents) == 0 {
		return c
	}

	var sum float64

	for i := range agents {
		if agents[i].Status == models.AgentStatusActive {
			c.Active++
		}

		sum += agents[i].Confidence
	}

	c.AvgConfidencePercent = ConfidencePercent(sum / float64(len(agents)))

	return c
}

// ConfidencePercent renders a 0-1 confidence as a rounded percentage.
func ConfidencePercent(confidence float64) int {
	return int(math.Round(confidence * 100))
}

// Honeypots filters the decoy devices out of a device list.
func Honeypots(devices []models.Device) []models.Device {
	out := []models.Device{}

	for i := range devices {
		if devices[i].IsHoneypot {
			out = append(out, devices[i])
		}
	}

	return out
}

// MonitoredDevices is every non-honeypot device; these are the devices
// whose behavior can be charted.
func MonitoredDevices(devices []models.Device) []models.Device {
	out := []models.Device{}

	for i := range devices {
		if !devices[i].IsHoneypot {
			out = append(out, devices[i])
		}
	}

	return out
}

// HoneypotCounts summarizes the decoy fleet.
type HoneypotCounts struct {
	Total  int `json:"total"`
	Online int `json:"online"`
}

func HoneypotSummary(honeypots []models.Device) HoneypotCounts {
	c := HoneypotCounts{Total: len(honeypots)}

	for i := range honeypots {
		if honeypots[i].Status == models.DeviceStatusOnline {
			c.Online++
		}
	}

	return c
}

// Dashboard is everything the dashboard view renders, derived from one
// consistent poll.
type Dashboard struct {
	Stats           models.Stats    `json:"stats"`
	Risk            Distribution    `json:"risk"`
	RiskBars        []BarPoint      `json:"risk_bars"`
	RecentAlerts    []models.Alert  `json:"recent_alerts"`
	HighRiskDevices []models.Device `json:"high_risk_devices"`
	Threats         ThreatCounts    `json:"threats"`
}

// DashboardSummary combines the four dashboard resources.
func DashboardSummary(stats *models.Stats, devices []models.Device, threats []models.Threat, alerts []models.Alert) Dashboard {
	var s models.Stats
	if stats != nil {
		s = *stats
	}

	risk := RiskDistribution(devices)

	return Dashboard{
		Stats:           s,
		Risk:            risk,
		RiskBars:        risk.Bars(),
		RecentAlerts:    RecentAlerts(alerts, RecentAlertLimit),
		HighRiskDevices: HighRiskDevices(devices, HighRiskLimit),
		Threats:         ThreatSummary(threats),
	}
}
