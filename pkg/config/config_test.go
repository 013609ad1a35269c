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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/carverauto/guardian/pkg/logger"
	"github.com/carverauto/guardian/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func chdirTemp(t *testing.T) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_YAMLFile(t *testing.T) {
	chdirTemp(t)

	path := writeFile(t, "guardian.yaml", `
backend_url: http://localhost:8000
request_timeout: 3s
views:
  devices: 30s
bootstrap:
  attempts: 5
  delay: 100ms
  max_delay: 1s
log_file: /tmp/guardian.log
`)

	cfg, err := Load(context.Background(), path, logger.NewTestLogger())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout.Std())
	assert.Equal(t, 30*time.Second, cfg.Interval(models.ViewDevices))
	assert.Equal(t, 10*time.Second, cfg.Interval(models.ViewDashboard))
	assert.Equal(t, 5*time.Second, cfg.Interval(models.ViewAgents))
	assert.Equal(t, time.Duration(0), cfg.Interval(models.ViewIncidents))
	assert.Equal(t, uint(5), cfg.Bootstrap.Attempts)
	assert.Equal(t, "/tmp/guardian.log", cfg.LoggerConfig().File)
}

func TestLoad_JSONFileWithEnvOverride(t *testing.T) {
	chdirTemp(t)

	path := writeFile(t, "guardian.json", `{"backend_url": "http://file:8000", "request_timeout": "2s"}`)

	t.Setenv("GUARDIAN_BACKEND_URL", "https://env.example:8443")
	t.Setenv("GUARDIAN_BOOTSTRAP_ATTEMPTS", "7")
	t.Setenv("GUARDIAN_VIEWS", `{"topology": "1m"}`)

	cfg, err := Load(context.Background(), path, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example:8443", cfg.BackendURL)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout.Std())
	assert.Equal(t, uint(7), cfg.Bootstrap.Attempts)
	assert.Equal(t, time.Minute, cfg.Interval(models.ViewTopology))
}

func TestLoad_EnvSourceIgnoresFile(t *testing.T) {
	chdirTemp(t)

	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("GUARDIAN_BACKEND_URL", "http://env:8000")
	t.Setenv("GUARDIAN_REQUEST_TIMEOUT", "4s")

	cfg, err := Load(context.Background(), "/does/not/exist.json", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://env:8000", cfg.BackendURL)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout.Std())
}

func TestLoad_BackendURLRequired(t *testing.T) {
	chdirTemp(t)

	t.Setenv("GUARDIAN_BACKEND_URL", "")

	_, err := Load(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrBackendURLRequired)
}

func TestLoad_OverridesWin(t *testing.T) {
	chdirTemp(t)

	t.Setenv("GUARDIAN_BACKEND_URL", "http://env:8000")

	cfg, err := Load(context.Background(), "", nil, func(c *Console) {
		c.BackendURL = "http://flag:9000"
	})
	require.NoError(t, err)
	assert.Equal(t, "http://flag:9000", cfg.BackendURL)
}

func TestLoad_DotEnv(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, os.WriteFile(".env", []byte("GUARDIAN_BACKEND_URL=http://dotenv:8000\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("GUARDIAN_BACKEND_URL") })

	cfg, err := Load(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv:8000", cfg.BackendURL)
}

func TestLoad_InvalidSource(t *testing.T) {
	chdirTemp(t)

	t.Setenv("CONFIG_SOURCE", "kv")

	_, err := Load(context.Background(), "", nil)
	assert.ErrorIs(t, err, errInvalidConfigSource)
}

func TestLoad_BadEnvValue(t *testing.T) {
	chdirTemp(t)

	t.Setenv("GUARDIAN_BACKEND_URL", "http://env:8000")
	t.Setenv("GUARDIAN_REQUEST_TIMEOUT", "soon")

	_, err := Load(context.Background(), "", nil)
	assert.Error(t, err)
}

func TestConsole_Validate(t *testing.T) {
	valid := func() *Console {
		c := Default()
		c.BackendURL = "http://localhost:8000"

		return c
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Console)
		want   error
	}{
		{"blank url", func(c *Console) { c.BackendURL = "  " }, ErrBackendURLRequired},
		{"no scheme", func(c *Console) { c.BackendURL = "localhost:8000" }, errInvalidBackendURL},
		{"zero timeout", func(c *Console) { c.RequestTimeout = 0 }, errInvalidTimeout},
		{"unknown view", func(c *Console) {
			c.Views = map[models.View]models.Duration{"reports": models.Duration(time.Second)}
		}, errUnknownView},
		{"negative interval", func(c *Console) {
			c.Views = map[models.View]models.Duration{models.ViewAgents: models.Duration(-time.Second)}
		}, errInvalidInterval},
		{"zero attempts", func(c *Console) { c.Bootstrap.Attempts = 0 }, errInvalidBootstrap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), tt.want)
		})
	}
}

func TestEnvConfigLoader_RejectsNonPointer(t *testing.T) {
	l := NewEnvConfigLoader(logger.NewTestLogger(), EnvPrefix)

	assert.ErrorIs(t, l.Load(context.Background(), "", Console{}), ErrDstMustBeNonNilPointer)

	n := 3
	assert.ErrorIs(t, l.Load(context.Background(), "", &n), ErrDstMustBePointerToStruct)
}

func TestEnvConfigLoader_ConfigJSON(t *testing.T) {
	t.Setenv("GUARDIAN_CONFIG_JSON", `{"backend_url":"http://json:1","metrics_addr":":9108"}`)

	var c Console

	require.NoError(t, NewEnvConfigLoader(logger.NewTestLogger(), EnvPrefix).Load(context.Background(), "", &c))
	assert.Equal(t, "http://json:1", c.BackendURL)
	assert.Equal(t, ":9108", c.MetricsAddr)
}
