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

// Command guardian is the terminal console for the Guardian IoT security
// backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/carverauto/guardian/pkg/config"
)

const (
	exitFailure  = 1
	exitConfig   = 2
	exitCanceled = 130
)

func main() {
	code := runMain(Execute, os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
}

func runMain(execute func() error, stderr io.Writer) int {
	if err := execute(); err != nil {
		return exitCodeForError(err, stderr)
	}

	return 0
}

func exitCodeForError(err error, stderr io.Writer) int {
	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.silent {
			_, _ = fmt.Fprintln(stderr, resolveErrorForExitError(ee, err))
		}

		return ee.code
	}

	switch {
	case errors.Is(err, context.Canceled):
		_, _ = fmt.Fprintln(stderr, "canceled")

		return exitCanceled
	case errors.Is(err, config.ErrBackendURLRequired):
		_, _ = fmt.Fprintf(stderr, "%v (set backend_url, %sBACKEND_URL or --backend-url)\n", err, config.EnvPrefix)

		return exitConfig
	default:
		_, _ = fmt.Fprintln(stderr, err)

		return exitFailure
	}
}

func resolveErrorForExitError(ee *exitError, fallback error) error {
	if ee != nil && ee.err != nil {
		return ee.err
	}

	return fallback
}
