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

// Package aggregate derives dashboard metrics and chart series from raw
// backend entities. Every function is pure: the same input always yields
// the same output and inputs are never modified.
package aggregate

import "github.com/carverauto/guardian/pkg/models"

// RiskBucket classifies a risk score.
type RiskBucket string

const (
	RiskLow    RiskBucket = "low"
	RiskMedium RiskBucket = "medium"
	RiskHigh   RiskBucket = "high"

	// MediumRiskThreshold is the first medium score.
	MediumRiskThreshold = 40
	// HighRiskThreshold is the first high score; it also gates isolation
	// and the high-risk device list.
	HighRiskThreshold = 70

	ColorLow    = "#00ff9d"
	ColorMedium = "#ffb800"
	ColorHigh   = "#ff2a6d"
)

// Bucket maps a 0-100 score to its bucket.
func Bucket(score int) RiskBucket {
	switch {
	case score >= HighRiskThreshold:
		return RiskHigh
	case score >= MediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Color returns the chart color of the bucket.
func (b RiskBucket) Color() string {
	switch b {
	case RiskHigh:
		return ColorHigh
	case RiskMedium:
		return ColorMedium
	default:
		return ColorLow
	}
}

// Label is the capitalized bucket name used on charts.
func (b RiskBucket) Label() string {
	switch b {
	case RiskHigh:
		return "High"
	case RiskMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// BarPoint is one bar of a categorical chart.
type BarPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Distribution counts devices per risk bucket.
type Distribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// Total is the number of devices counted.
func (d Distribution) Total() int { return d.Low + d.Medium + d.High }

// Bars renders the distribution in Low, Medium, High order.
func (d Distribution) Bars() []BarPoint {
	return []BarPoint{
		{Name: RiskLow.Label(), Value: d.Low, Color: ColorLow},
		{Name: RiskMedium.Label(), Value: d.Medium, Color: ColorMedium},
		{Name: RiskHigh.Label(), Value: d.High, Color: ColorHigh},
	}
}

// RiskDistribution buckets every device, honeypots included.
func RiskDistribution(devices []models.Device) Distribution {
	var d Distribution

	for i := range devices {
		switch Bucket(devices[i].RiskScore) {
		case RiskHigh:
			d.High++
		case RiskMedium:
			d.Medium++
		case RiskLow:
			d.Low++
		}
	}

	return d
}

// HighRiskDevices returns up to limit devices scoring at least
// HighRiskThreshold, in server order.
func HighRiskDevices(devices []models.Device, limit int) []models.Device {
	out := []models.Device{}

	for i := range devices {
		if len(out) == limit {
			break
		}

		if devices[i].RiskScore >= HighRiskThreshold {
			out = append(out, devices[i])
		}
	}

	return out
}

// IsolationCandidate reports whether isolation should be offered for d.
func IsolationCandidate(d *models.Device) bool {
	return !d.IsHoneypot && !d.Isolated() && d.RiskScore >= HighRiskThreshold
}
