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

import "github.com/carverauto/guardian/pkg/models"

// SeriesWindow is how many samples the behavior chart shows.
const SeriesWindow = 10

// SeriesPoint is one x position of the behavior chart. Anomaly is nil for
// normal samples so the anomaly line renders a gap there, not a zero.
type SeriesPoint struct {
	Index           int      `json:"index"`
	TrafficVolume   float64  `json:"traffic"`
	ConnectionCount int      `json:"connections"`
	Anomaly         *float64 `json:"anomaly"`
}

// BehaviorSeries charts the first SeriesWindow samples in received order.
func BehaviorSeries(samples []models.BehaviorSample) []SeriesPoint {
	n := min(len(samples), SeriesWindow)
	out := make([]SeriesPoint, 0, n)

	for i := 0; i < n; i++ {
		s := samples[i]
		p := SeriesPoint{
			Index:           i,
			TrafficVolume:   s.TrafficVolume,
			ConnectionCount: s.ConnectionCount,
		}

		if s.IsAnomaly {
			v := s.TrafficVolume
			p.Anomaly = &v
		}

		out = append(out, p)
	}

	return out
}

// AnomalyFeed returns up to limit anomalous samples in received order.
func AnomalyFeed(samples []models.BehaviorSample, limit int) []models.BehaviorSample {
	out := []models.BehaviorSample{}

	for i := range samples {
		if len(out) == limit {
			break
		}

		if samples[i].IsAnomaly {
			out = append(out, samples[i])
		}
	}

	return out
}

// AnomalyCount counts anomalous samples.
func AnomalyCount(samples []models.BehaviorSample) int {
	n := 0

	for i := range samples {
		if samples[i].IsAnomaly {
			n++
		}
	}

	return n
}
