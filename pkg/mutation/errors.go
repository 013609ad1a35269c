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

package mutation

import (
	"errors"
	"fmt"
)

var (
	ErrMissingID        = errors.New("id is required")
	ErrHoneypot         = errors.New("honeypots cannot be isolated")
	ErrAlreadyIsolated  = errors.New("device is already isolated")
	ErrAlreadyMitigated = errors.New("threat is already mitigated")
	ErrInvalidAction    = errors.New("unknown mitigation action")
)

// ValidationError rejects a mutation locally, before any request is sent.
type ValidationError struct {
	Action Action
	ID     string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s rejected: %v", e.Action, e.Err)
	}

	return fmt.Sprintf("%s %s rejected: %v", e.Action, e.ID, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(action Action, id string, err error) error {
	return &ValidationError{Action: action, ID: id, Err: err}
}
