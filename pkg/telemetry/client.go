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

package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carverauto/guardian/pkg/logger"
	"github.com/carverauto/guardian/pkg/models"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	apiPrefix          = "/api"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 2048

	// RequestIDHeader carries a per-call id so backend logs can be joined
	// with ours.
	RequestIDHeader = "X-Request-ID"
)

// ClientConfig controls how the backend client behaves.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Logger  logger.Logger
	HTTP    HTTPClient
}

// Client implements API over HTTP.
type Client struct {
	baseURL string
	client  HTTPClient
	logger  logger.Logger
}

var _ API = (*Client)(nil)

// NewClient validates the base URL and builds a client. Without an explicit
// HTTP client one is created with the configured timeout and an
// OpenTelemetry transport.
func NewClient(cfg ClientConfig) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errBaseURLRequired
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidBaseURL, err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", errInvalidBaseURL, base)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Client{
		baseURL: strings.TrimRight(parsed.String(), "/") + apiPrefix,
		client:  httpClient,
		logger:  log,
	}, nil
}

func (c *Client) GetStats(ctx context.Context) (*models.Stats, error) {
	var out models.Stats
	if err := c.do(ctx, http.MethodGet, "/stats", &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListDevices(ctx context.Context) ([]models.Device, error) {
	out := []models.Device{}
	if err := c.do(ctx, http.MethodGet, "/devices", &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) GetDevice(ctx context.Context, id string) (*models.Device, error) {
	if id == "" {
		return nil, errEmptyID
	}

	var out models.Device
	if err := c.do(ctx, http.MethodGet, "/devices/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListThreats(ctx context.Context) ([]models.Threat, error) {
	out := []models.Threat{}
	if err := c.do(ctx, http.MethodGet, "/threats", &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) ListBehaviors(ctx context.Context, deviceID string) ([]models.BehaviorSample, error) {
	if deviceID == "" {
		return nil, errEmptyID
	}

	out := []models.BehaviorSample{}
	if err := c.do(ctx, http.MethodGet, "/behaviors/"+url.PathEscape(deviceID), &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) ListAgents(ctx context.Context) ([]models.Agent, error) {
	out := []models.Agent{}
	if err := c.do(ctx, http.MethodGet, "/agents", &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) GetTopology(ctx context.Context) (*models.Topology, error) {
	var out models.Topology
	if err := c.do(ctx, http.MethodGet, "/network-topology", &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListIncidents(ctx context.Context) ([]models.Incident, error) {
	out := []models.Incident{}
	if err := c.do(ctx, http.MethodGet, "/incidents", &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	out := []models.Alert{}
	if err := c.do(ctx, http.MethodGet, "/alerts", &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) Initialize(ctx context.Context) (*models.InitializeResult, error) {
	var out models.InitializeResult
	if err := c.do(ctx, http.MethodPost, "/initialize", &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) IsolateDevice(ctx context.Context, id string) (*models.Ack, error) {
	if id == "" {
		return nil, errEmptyID
	}

	var out models.Ack
	if err := c.do(ctx, http.MethodPost, "/devices/"+url.PathEscape(id)+"/isolate", &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) MitigateThreat(ctx context.Context, id string, action models.MitigationAction) (*models.Ack, error) {
	if id == "" {
		return nil, errEmptyID
	}

	path := "/threats/" + url.PathEscape(id) + "/mitigate?action=" + url.QueryEscape(string(action))

	var out models.Ack
	if err := c.do(ctx, http.MethodPost, path, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) GenerateIncident(ctx context.Context) (*models.Incident, error) {
	var out models.Incident
	if err := c.do(ctx, http.MethodPost, "/incidents/generate", &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) SimulateBehaviors(ctx context.Context) (*models.Ack, error) {
	var out models.Ack
	if err := c.do(ctx, http.MethodPost, "/behaviors/simulate", &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// do sends one request and decodes a 2xx JSON body into out. POSTs carry
// an empty JSON object since every mutation is parameterized by path or
// query.
func (c *Client) do(ctx context.Context, method, path string, out interface{}) error {
	var body io.Reader
	if method == http.MethodPost {
		body = bytes.NewReader([]byte("{}"))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: err}
	}

	requestID := uuid.NewString()

	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug().
			Str("method", method).
			Str("path", path).
			Str("request_id", requestID).
			Err(err).
			Msg("Backend request failed")

		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Backend request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return &ServerError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServerError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %w", errMalformedPayload, err),
		}
	}

	return nil
}
