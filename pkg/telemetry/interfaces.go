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

// Package telemetry is the REST client for the IoT security backend.
package telemetry

//go:generate mockgen -destination=mock_telemetry.go -package=telemetry github.com/carverauto/guardian/pkg/telemetry API,HTTPClient

import (
	"context"
	"net/http"

	"github.com/carverauto/guardian/pkg/models"
)

// API is every backend call the console makes. Implementations never retry.
type API interface {
	GetStats(ctx context.Context) (*models.Stats, error)
	ListDevices(ctx context.Context) ([]models.Device, error)
	GetDevice(ctx context.Context, id string) (*models.Device, error)
	ListThreats(ctx context.Context) ([]models.Threat, error)
	ListBehaviors(ctx context.Context, deviceID string) ([]models.BehaviorSample, error)
	ListAgents(ctx context.Context) ([]models.Agent, error)
	GetTopology(ctx context.Context) (*models.Topology, error)
	ListIncidents(ctx context.Context) ([]models.Incident, error)
	ListAlerts(ctx context.Context) ([]models.Alert, error)

	Initialize(ctx context.Context) (*models.InitializeResult, error)
	IsolateDevice(ctx context.Context, id string) (*models.Ack, error)
	MitigateThreat(ctx context.Context, id string, action models.MitigationAction) (*models.Ack, error)
	GenerateIncident(ctx context.Context) (*models.Incident, error)
	SimulateBehaviors(ctx context.Context) (*models.Ack, error)
}

// HTTPClient is the subset of *http.Client the client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
