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
	"errors"
	"fmt"
)

var (
	// ErrNetwork matches every *NetworkError with errors.Is.
	ErrNetwork = errors.New("backend unreachable")
	// ErrServerStatus matches every *ServerError with errors.Is.
	ErrServerStatus = errors.New("backend returned an error")

	errBaseURLRequired  = errors.New("backend base url is required")
	errInvalidBaseURL   = errors.New("invalid backend base url")
	errMalformedPayload = errors.New("malformed response body")
	errEmptyID          = errors.New("resource id is required")
)

// NetworkError reports a transport failure or timeout. No response was
// received, so the outcome of a mutation is unknown.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Method, e.Path, ErrNetwork, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (*NetworkError) Is(target error) bool { return target == ErrNetwork }

// ServerError reports a non-2xx status, or a 2xx whose body could not be
// decoded (Err is then set).
type ServerError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *ServerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.Path, e.StatusCode, e.Err)
	}

	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}

	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *ServerError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrServerStatus, e.Err}
	}

	return []error{ErrServerStatus}
}

// IsNetwork reports whether err is, or wraps, a *NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError

	return errors.As(err, &ne)
}
