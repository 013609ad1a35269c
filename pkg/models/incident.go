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

// TimelineEvent is one step of an incident reconstruction. Time is the
// offset label the backend assigns ("00:00:15").
type TimelineEvent struct {
	Time     string   `json:"time"`
	Severity Severity `json:"severity"`
	Event    string   `json:"event"`
}

// Incident is a forensic reconstruction. Immutable once generated.
type Incident struct {
	ID             string          `json:"id"`
	AttackType     string          `json:"attack_type"`
	SourceIP       string          `json:"source_ip"`
	TargetDeviceID string          `json:"target_device_id"`
	Timestamp      Timestamp       `json:"timestamp"`
	Timeline       []TimelineEvent `json:"timeline"`
	Explanation    string          `json:"explanation"`
}

// PeakSeverity returns the highest severity reached on the timeline, or
// low for an empty one.
func (i *Incident) PeakSeverity() Severity {
	peak := SeverityLow

	for _, ev := range i.Timeline {
		if ev.Severity.Rank() > peak.Rank() {
			peak = ev.Severity
		}
	}

	return peak
}

// PrependIncident returns a new history with inc first. An older copy of the
// same incident is dropped so the history never holds duplicates.
func PrependIncident(history []Incident, inc Incident) []Incident {
	out := make([]Incident, 0, len(history)+1)
	out = append(out, inc)

	for i := range history {
		if history[i].ID == inc.ID {
			continue
		}

		out = append(out, history[i])
	}

	return out
}
