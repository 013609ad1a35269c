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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/guardian/pkg/cli"
	"github.com/carverauto/guardian/pkg/config"
	"github.com/carverauto/guardian/pkg/models"
)

func resetFlags(t *testing.T) {
	t.Helper()

	configPath, backendURL, debugFlag = "", "", false
	logFile = filepath.Join(t.TempDir(), "guardian.log")
	snapshotCompact, versionJSON = false, false
	mitigateAction = string(models.MitigationTrafficBlocked)
	watchView, watchMetricsAddr, watchSkipInit = string(models.ViewDashboard), "", false

	t.Setenv("GUARDIAN_BACKEND_URL", "")
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--log-file", logFile))

	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.ExecuteContext(context.Background())

	return out.String(), errOut.String(), err
}

type backend struct {
	*httptest.Server
	isolated atomic.Int32
}

func newBackend(t *testing.T) *backend {
	t.Helper()

	b := &backend{}
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("GET /api/devices", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []map[string]interface{}{
			{"id": "d1", "name": "Smart Camera 1", "device_type": "Camera", "risk_score": 85, "status": "online"},
			{"id": "d2", "name": "Honeypot 1", "device_type": "Honeypot", "risk_score": 0, "status": "online", "is_honeypot": true},
		})
	})
	mux.HandleFunc("GET /api/devices/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "d1":
			writeJSON(w, map[string]interface{}{"id": "d1", "name": "Smart Camera 1", "risk_score": 85, "status": "online"})
		case "d2":
			writeJSON(w, map[string]interface{}{"id": "d2", "name": "Honeypot 1", "status": "online", "is_honeypot": true})
		default:
			http.Error(w, `{"detail":"Device not found"}`, http.StatusNotFound)
		}
	})
	mux.HandleFunc("POST /api/devices/{id}/isolate", func(w http.ResponseWriter, _ *http.Request) {
		b.isolated.Add(1)
		writeJSON(w, map[string]string{"message": "Device isolated"})
	})
	mux.HandleFunc("GET /api/agents", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)

	return b
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	for _, name := range []string{
		"watch", "snapshot", "device", "isolate", "mitigate", "init", "version",
	} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	cmd, _, err := rootCmd.Find([]string{"incident", "generate"})
	require.NoError(t, err)
	assert.Equal(t, "generate", cmd.Name())

	cmd, _, err = rootCmd.Find([]string{"behaviors", "simulate"})
	require.NoError(t, err)
	assert.Equal(t, "simulate", cmd.Name())
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"generic", errors.New("boom"), exitFailure},
		{"canceled", context.Canceled, exitCanceled},
		{"missing backend", config.ErrBackendURLRequired, exitConfig},
		{"explicit", &exitError{code: 7, err: errors.New("seven")}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer

			assert.Equal(t, tt.want, exitCodeForError(tt.err, &stderr))
			assert.NotEmpty(t, stderr.String())
		})
	}

	var stderr bytes.Buffer

	assert.Equal(t, 3, exitCodeForError(&exitError{code: 3, silent: true}, &stderr))
	assert.Empty(t, stderr.String())
}

func TestRunMainSuccess(t *testing.T) {
	var stderr bytes.Buffer

	assert.Equal(t, 0, runMain(func() error { return nil }, &stderr))
}

func TestMissingBackendURLIsFatal(t *testing.T) {
	resetFlags(t)

	_, _, err := execute(t, "snapshot", "devices")
	require.ErrorIs(t, err, config.ErrBackendURLRequired)
}

func TestSnapshotPrintsViews(t *testing.T) {
	resetFlags(t)

	b := newBackend(t)

	stdout, _, err := execute(t, "snapshot", "devices", "--backend-url", b.URL)
	require.NoError(t, err)

	var exports []struct {
		View  string          `json:"view"`
		State string          `json:"state"`
		Data  []models.Device `json:"data"`
	}

	require.NoError(t, json.Unmarshal([]byte(stdout), &exports))
	require.Len(t, exports, 1)
	assert.Equal(t, "devices", exports[0].View)
	assert.Equal(t, "ready", exports[0].State)
	require.Len(t, exports[0].Data, 2)
	assert.Equal(t, "Smart Camera 1", exports[0].Data[0].Name)
}

func TestSnapshotFailingViewExitsNonZero(t *testing.T) {
	resetFlags(t)

	b := newBackend(t)

	stdout, _, err := execute(t, "snapshot", "devices", "agents", "--backend-url", b.URL)

	var ee *exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, exitFailure, ee.code)

	var exports []map[string]interface{}

	require.NoError(t, json.Unmarshal([]byte(stdout), &exports))
	require.Len(t, exports, 2)
	assert.Equal(t, "ready", exports[0]["state"])
	assert.NotEmpty(t, exports[1]["error"])
}

func TestSnapshotRejectsUnknownView(t *testing.T) {
	resetFlags(t)

	_, _, err := execute(t, "snapshot", "firewall", "--backend-url", "http://127.0.0.1:1")

	var ee *exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, exitConfig, ee.code)
}

func TestIsolateCommand(t *testing.T) {
	resetFlags(t)

	b := newBackend(t)

	_, stderr, err := execute(t, "isolate", "d1", "--backend-url", b.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(1), b.isolated.Load())
	assert.Contains(t, stderr, "Smart Camera 1 has been isolated from the network")
}

func TestIsolateHoneypotIsRejectedLocally(t *testing.T) {
	resetFlags(t)

	b := newBackend(t)

	_, _, err := execute(t, "isolate", "d2", "--backend-url", b.URL)
	require.Error(t, err)
	assert.Equal(t, int32(0), b.isolated.Load())
}

func TestDeviceCommandUnknownDevice(t *testing.T) {
	resetFlags(t)

	b := newBackend(t)

	_, _, err := execute(t, "device", "nope", "--backend-url", b.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestMitigateRejectsUnknownAction(t *testing.T) {
	resetFlags(t)

	_, _, err := execute(t, "mitigate", "t1", "--action", "Reboot", "--backend-url", "http://127.0.0.1:1")

	var ee *exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, exitConfig, ee.code)
}

func TestWatchNeedsTerminal(t *testing.T) {
	resetFlags(t)

	_, _, err := execute(t, "watch", "--backend-url", "http://127.0.0.1:1")
	require.ErrorIs(t, err, cli.ErrNotATerminal)
}

func TestVersionJSON(t *testing.T) {
	resetFlags(t)

	stdout, _, err := execute(t, "version", "--json")
	require.NoError(t, err)

	var info map[string]string

	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, "dev", info["version"])
	assert.NotEmpty(t, info["go_version"])
}
