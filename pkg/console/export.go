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
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/guardian/pkg/models"
)

const pollOnceConcurrency = 4

// PollOnce runs a single poll of each view outside the scheduler and
// commits the results. A failing view does not stop the others; their
// errors are joined.
func (c *Console) PollOnce(ctx context.Context, views ...models.View) error {
	if len(views) == 0 {
		views = models.Views()
	}

	errs := make([]error, len(views))

	var g errgroup.Group

	g.SetLimit(pollOnceConcurrency)

	for i, view := range views {
		task, err := c.task(view)
		if err != nil {
			errs[i] = err

			continue
		}

		g.Go(func() error {
			start := time.Now()
			commit, err := task(ctx)
			c.metrics.PollCompleted(view, time.Since(start), err)

			if err != nil {
				c.pollFailed(view, err)
				errs[i] = fmt.Errorf("%s: %w", view, err)

				return nil
			}

			commit()

			return nil
		})
	}

	_ = g.Wait()

	return errors.Join(errs...)
}

// Export is the JSON form of one view snapshot.
type Export struct {
	View       models.View `json:"view"`
	State      string      `json:"state"`
	Empty      bool        `json:"empty"`
	Optimistic bool        `json:"optimistic,omitempty"`
	Error      string      `json:"error,omitempty"`
	UpdatedAt  *time.Time  `json:"updated_at,omitempty"`
	Selected   string      `json:"selected,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

// Export renders the current snapshot of view.
func (c *Console) Export(view models.View) (Export, error) {
	var (
		data      interface{}
		updatedAt time.Time
	)

	switch view {
	case models.ViewDashboard:
		s := c.Dashboard()
		data, updatedAt = s.Data, s.UpdatedAt
	case models.ViewDevices:
		s := c.Devices()
		data, updatedAt = s.Data, s.UpdatedAt
	case models.ViewThreats:
		s := c.Threats()
		data, updatedAt = s.Data, s.UpdatedAt
	case models.ViewBehavioral:
		s := c.Behavioral()
		data, updatedAt = s.Data, s.UpdatedAt
	case models.ViewHoneypots:
		s := c.Honeypots()
		data, updatedAt = s.Data, s.UpdatedAt
	case models.ViewAgents:
		s := c.Agents()
		data, updatedAt = s.Data, s.UpdatedAt
	case models.ViewTopology:
		s := c.Topology()
		data, updatedAt = s.Data, s.UpdatedAt
	case models.ViewIncidents:
		s := c.Incidents()
		data, updatedAt = s.Data, s.UpdatedAt
	default:
		return Export{}, unknownView(view)
	}

	st := c.Status(view)
	out := Export{
		View:       view,
		State:      st.State.String(),
		Empty:      st.Zero,
		Optimistic: st.Optimistic,
		Selected:   st.Selected,
	}

	if st.Loaded {
		out.Data = data
		out.UpdatedAt = &updatedAt
	}

	if st.Err != nil {
		out.Error = st.Err.Error()
	}

	return out, nil
}
