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

// Package console wires the telemetry client, poll scheduler, view stores
// and mutation orchestrator into the live state every front end renders.
package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/carverauto/guardian/pkg/config"
	"github.com/carverauto/guardian/pkg/logger"
	"github.com/carverauto/guardian/pkg/metrics"
	"github.com/carverauto/guardian/pkg/models"
	"github.com/carverauto/guardian/pkg/mutation"
	"github.com/carverauto/guardian/pkg/notify"
	"github.com/carverauto/guardian/pkg/poller"
	"github.com/carverauto/guardian/pkg/telemetry"
)

// Options wires a Console. API and Config are required.
type Options struct {
	API     telemetry.API
	Config  *config.Console
	Logger  logger.Logger
	Clock   poller.Clock
	Metrics *metrics.Collectors
	Bus     *notify.Bus
}

// Console owns the per-view state of one session.
type Console struct {
	api     telemetry.API
	cfg     *config.Console
	logger  logger.Logger
	bus     *notify.Bus
	metrics *metrics.Collectors

	views     *views
	scheduler *poller.Scheduler
	mutations *mutation.Orchestrator

	mu   sync.Mutex
	open map[models.View]bool
}

// New creates a Console. No view polls until Open.
func New(opts Options) (*Console, error) {
	if opts.API == nil {
		return nil, errAPIRequired
	}

	if opts.Config == nil {
		return nil, errConfigRequired
	}

	c := &Console{
		api:     opts.API,
		cfg:     opts.Config,
		logger:  opts.Logger,
		bus:     opts.Bus,
		metrics: opts.Metrics,
		views:   newViews(),
		open:    make(map[models.View]bool),
	}

	if c.logger == nil {
		c.logger = logger.NewTestLogger()
	}

	if c.bus == nil {
		c.bus = notify.NewBus()
	}

	if c.metrics == nil {
		c.metrics = metrics.New()
	}

	c.scheduler = poller.New(poller.Config{
		Clock:     opts.Clock,
		Logger:    c.logger,
		OnError:   c.pollFailed,
		OnDiscard: c.pollDiscarded,
		Recorder:  c.metrics,
	})

	c.mutations = mutation.New(mutation.Config{
		API:      c.api,
		Effects:  c,
		Notifier: c.bus,
		Logger:   c.logger,
		Recorder: c.metrics,
	})

	return c, nil
}

// Open starts polling view with its configured interval. The first poll
// runs immediately. Opening an open view restarts it.
func (c *Console) Open(ctx context.Context, view models.View) error {
	task, err := c.task(view)
	if err != nil {
		return err
	}

	if err := c.scheduler.Start(ctx, view, c.cfg.Interval(view), task); err != nil {
		return fmt.Errorf("open %s: %w", view, err)
	}

	c.mu.Lock()
	c.open[view] = true
	c.mu.Unlock()

	return nil
}

// Close stops polling view. In-flight results are discarded. Closing a
// closed view is a no-op.
func (c *Console) Close(view models.View) {
	c.scheduler.Stop(view)

	c.mu.Lock()
	delete(c.open, view)
	c.mu.Unlock()
}

// Switch closes from and opens to, the way navigating between pages does.
func (c *Console) Switch(ctx context.Context, from, to models.View) error {
	if from != to {
		c.Close(from)
	}

	return c.Open(ctx, to)
}

// Refresh requests an out-of-band poll of an open view. A request made
// while a poll is in flight runs after it. It reports false when the view
// is closed.
func (c *Console) Refresh(view models.View) bool {
	return c.scheduler.Refresh(view)
}

// OpenViews lists the polling views in tab order.
func (c *Console) OpenViews() []models.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := []models.View{}

	for _, v := range models.Views() {
		if c.open[v] {
			out = append(out, v)
		}
	}

	return out
}

// IsOpen reports whether view is polling.
func (c *Console) IsOpen(view models.View) bool {
	return c.scheduler.Running(view)
}

// Shutdown stops every view and waits for in-flight polls.
func (c *Console) Shutdown() {
	c.scheduler.StopAll()

	c.mu.Lock()
	clear(c.open)
	c.mu.Unlock()
}

// pollFailed keeps the last good data of view and tells the user.
func (c *Console) pollFailed(view models.View, err error) {
	if v, ok := c.views.get(view); ok {
		v.Fail(err)
	}

	c.logger.Warn().
		Err(err).
		Str("view", view.String()).
		Bool("network", telemetry.IsNetwork(err)).
		Msg("View poll failed")

	c.bus.Error(view, "Failed to fetch %s", view)
}

// pollDiscarded ends the fetch of a poll that resolved after its view closed.
func (c *Console) pollDiscarded(view models.View) {
	if v, ok := c.views.get(view); ok {
		v.CancelFetch()
	}
}

// Select changes the selection of view. Selecting a behavioral device also
// refreshes the chart for it.
func (c *Console) Select(view models.View, id string) error {
	v, ok := c.views.get(view)
	if !ok {
		return unknownView(view)
	}

	if !v.Select(id) {
		return fmt.Errorf("%w: %s %q", errNotSelectable, view, id)
	}

	if view == models.ViewBehavioral {
		c.Refresh(view)
	}

	return nil
}

// Selected returns the selection of view.
func (c *Console) Selected(view models.View) string {
	if v, ok := c.views.get(view); ok {
		return v.Selected()
	}

	return ""
}

// Subscribe signals every change to view.
func (c *Console) Subscribe(view models.View) (<-chan struct{}, func(), error) {
	v, ok := c.views.get(view)
	if !ok {
		return nil, nil, unknownView(view)
	}

	ch, cancel := v.Subscribe()

	return ch, cancel, nil
}

// Notifications returns the toast bus.
func (c *Console) Notifications() *notify.Bus { return c.bus }

// Metrics returns the collectors the console records into.
func (c *Console) Metrics() *metrics.Collectors { return c.metrics }

// Mutations returns the orchestrator bound to this console's views.
func (c *Console) Mutations() *mutation.Orchestrator { return c.mutations }
