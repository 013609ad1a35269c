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

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts are tried in order. The backend emits RFC3339 for
// timezone-aware values and a bare ISO form for values stored without one.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp is a time.Time that tolerates the timestamp shapes the backend
// produces. Null and empty strings decode to the zero time.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", string(b), err)
	}

	if raw == nil || *raw == "" {
		t.Time = time.Time{}

		return nil
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, *raw)
		if err == nil {
			t.Time = parsed.UTC()

			return nil
		}
	}

	return fmt.Errorf("%w: %q", errInvalidTimestamp, *raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
