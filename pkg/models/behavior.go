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

// BehaviorSample is one traffic observation for a device. The backend
// returns samples newest first.
type BehaviorSample struct {
	ID              string    `json:"id,omitempty"`
	DeviceID        string    `json:"device_id"`
	Timestamp       Timestamp `json:"timestamp"`
	TrafficVolume   float64   `json:"traffic_volume"` // MB/s
	ConnectionCount int       `json:"connection_count"`
	Destinations    []string  `json:"destinations,omitempty"`
	IsAnomaly       bool      `json:"is_anomaly"`
	AnomalyScore    float64   `json:"anomaly_score"`
}

// Ack is the {"message": ...} body returned by isolate, mitigate and
// simulate.
type Ack struct {
	Message string `json:"message"`
}

// InitializeResult is the acknowledgement of POST /initialize.
type InitializeResult struct {
	Message string `json:"message"`
	Devices int    `json:"devices"`
	Agents  int    `json:"agents"`
}
