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

package lifecycle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/carverauto/guardian/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_LogsComponentToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")

	rt, err := Setup(context.Background(), "console", "v0.0.1", &logger.Config{Level: "debug", File: path})
	require.NoError(t, err)

	rt.Logger.Info().Msg("started")
	require.NoError(t, rt.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"console"`)
	assert.Contains(t, string(data), "started")
}

func TestCreateComponentLogger_BadLevel(t *testing.T) {
	_, _, err := CreateComponentLogger("x", &logger.Config{Level: "nope"})
	assert.Error(t, err)
}
