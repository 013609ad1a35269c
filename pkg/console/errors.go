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

package console

import (
	"errors"
	"fmt"

	"github.com/carverauto/guardian/pkg/models"
)

var (
	// ErrUnknownDevice is returned when a device id is neither cached nor
	// known to the backend.
	ErrUnknownDevice = errors.New("unknown device")
	// ErrUnknownThreat is returned when a threat id is not in the threat list.
	ErrUnknownThreat = errors.New("unknown threat")

	errAPIRequired    = errors.New("console: telemetry API is required")
	errConfigRequired = errors.New("console: configuration is required")
	errUnknownView    = errors.New("unknown view")
	errNotSelectable  = errors.New("id is not in the view")
)

func unknownView(view models.View) error {
	return fmt.Errorf("%w: %q", errUnknownView, view)
}
