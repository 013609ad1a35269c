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

// AgentStatus is the run state of an autonomous security agent.
type AgentStatus string

const (
	AgentStatusActive AgentStatus = "active"
	AgentStatusIdle   AgentStatus = "idle"
)

// Agent is one specialized security function on the backend. The set is
// fixed server side.
type Agent struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Status     AgentStatus `json:"status"`
	Confidence float64     `json:"confidence"`
	LastAction string      `json:"last_action"`
	Timestamp  Timestamp   `json:"timestamp"`
}

// Alert is a backend notice surfaced on the dashboard feed.
type Alert struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Timestamp Timestamp `json:"timestamp"`
	Read      bool      `json:"read"`
}
