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

package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardian.log")

	log, closer, err := New(&Config{Level: "info", File: path})
	require.NoError(t, err)

	log.Info().Str("view", "dashboard").Msg("poll committed")
	log.Debug().Msg("dropped below level")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"view":"dashboard"`)
	assert.NotContains(t, string(data), "dropped below level")
}

func TestNew_DebugOverridesLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	log, closer, err := New(&Config{Level: "error", Debug: true, File: path})
	require.NoError(t, err)

	defer func() { _ = closer.Close() }()

	log.Debug().Msg("visible")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(&Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_UnwritableFile(t *testing.T) {
	_, _, err := New(&Config{File: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	require.Error(t, err)
	assert.ErrorIs(t, err, errOpenLogFile)
}

func TestWriterLogger_Component(t *testing.T) {
	var buf bytes.Buffer

	log := NewWriterLogger(&buf)
	sub := log.WithComponent("scheduler")
	sub.Info().Msg("tick")

	assert.Contains(t, buf.String(), `"component":"scheduler"`)

	buf.Reset()
	log.SetLevel(zerolog.WarnLevel)
	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.SetDebug(true)
	log.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestDefaultConfig_FromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DEBUG", "yes")
	t.Setenv("OTEL_TRACES_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "collector:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_HEADERS", "x-token = abc, bad")

	cfg := DefaultConfig()
	assert.Equal(t, "warn", cfg.Level)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.OTel.Exporting())
	assert.Equal(t, map[string]string{"x-token": "abc"}, cfg.OTel.Headers)
	assert.Equal(t, DefaultServiceName, cfg.OTel.ServiceName)
}

func TestDefaultConfig_ConsoleEnvWins(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("GUARDIAN_LOGGING_LEVEL", "debug")
	t.Setenv("DEBUG", "true")
	t.Setenv("GUARDIAN_LOGGING_DEBUG", "off")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-token=generic")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_HEADERS", "x-token=traces")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")

	cfg := DefaultConfig()
	assert.Equal(t, "debug", cfg.Level)
	assert.False(t, cfg.Debug)
	assert.Equal(t, map[string]string{"x-token": "traces"}, cfg.OTel.Headers)
	assert.Equal(t, "collector:4317", cfg.OTel.Endpoint)
}

func TestParseHeaders(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{"empty", "", nil},
		{"only malformed", "novalue, =orphan", nil},
		{"trims", " a = 1 ,b=2", map[string]string{"a": "1", "b": "2"}},
		{"value keeps equals", "auth=Basic x==", map[string]string{"auth": "Basic x=="}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseHeaders(tt.raw))
		})
	}
}

func TestLookupEnvBool(t *testing.T) {
	t.Setenv("GUARDIAN_TEST_FLAG", "maybe")
	assert.True(t, lookupEnvBool(true, "GUARDIAN_TEST_FLAG"), "unparsable values keep the fallback")

	t.Setenv("GUARDIAN_TEST_FLAG", "ON")
	assert.True(t, lookupEnvBool(false, "GUARDIAN_TEST_FLAG"))

	t.Setenv("GUARDIAN_TEST_FLAG", "0")
	assert.False(t, lookupEnvBool(true, "GUARDIAN_TEST_FLAG"))
}

func TestInitializeTracing_NoExport(t *testing.T) {
	shutdown, err := InitializeTracing(context.Background(), TracingConfig{
		Logger: NewTestLogger(),
		OTel:   &OTelConfig{Enabled: true},
	})
	require.NoError(t, err)

	_, span := GetTracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}
