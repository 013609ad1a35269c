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

// Package poller drives the periodic refresh of console views.
package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carverauto/guardian/pkg/logger"
	"github.com/carverauto/guardian/pkg/models"
)

// Config wires a Scheduler's collaborators. Only Logger is required.
type Config struct {
	Clock     Clock
	Logger    logger.Logger
	OnError   ErrorHandler
	OnDiscard DiscardHandler
	Recorder  Recorder
}

// Scheduler runs at most one poll per view at a time. A tick that fires
// while the previous poll is unresolved is skipped, never queued. A
// Refresh that arrives during a poll is held and runs once it resolves.
type Scheduler struct {
	clock     Clock
	logger    logger.Logger
	onError   ErrorHandler
	onDiscard DiscardHandler
	recorder  Recorder

	mu   sync.Mutex
	runs map[models.View]*run
	wg   sync.WaitGroup
}

type run struct {
	view     models.View
	interval time.Duration
	task     Task

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	refreshCh chan struct{}
	closeOnce sync.Once

	// mu guards inFlight, pending and stopped, and is held while a commit
	// is applied so that stop never interleaves with one.
	mu       sync.Mutex
	inFlight bool
	pending  bool
	stopped  bool
}

// New creates a Scheduler.
func New(cfg Config) *Scheduler {
	s := &Scheduler{
		clock:     cfg.Clock,
		logger:    cfg.Logger,
		onError:   cfg.OnError,
		onDiscard: cfg.OnDiscard,
		recorder:  cfg.Recorder,
		runs:      make(map[models.View]*run),
	}

	if s.clock == nil {
		s.clock = realClock{}
	}

	if s.logger == nil {
		s.logger = logger.NewTestLogger()
	}

	if s.recorder == nil {
		s.recorder = nopRecorder{}
	}

	return s
}

// Start runs task immediately and then every interval until Stop. An
// interval of zero disables ticking; the view then polls only on Refresh.
// Starting a view that is already running replaces its schedule.
func (s *Scheduler) Start(ctx context.Context, view models.View, interval time.Duration, task Task) error {
	if !view.Valid() {
		return fmt.Errorf("%w: %q", errInvalidView, view)
	}

	if task == nil {
		return errNilTask
	}

	if interval < 0 {
		return fmt.Errorf("%w: %s", errInvalidInterval, interval)
	}

	runCtx, cancel := context.WithCancel(ctx)

	r := &run{
		view:      view,
		interval:  interval,
		task:      task,
		ctx:       runCtx,
		cancel:    cancel,
		done:      make(chan struct{}),
		refreshCh: make(chan struct{}, 1),
	}

	s.mu.Lock()
	previous := s.runs[view]
	s.runs[view] = r
	active := len(s.runs)
	s.wg.Add(1)
	s.mu.Unlock()

	if previous != nil {
		previous.stop()
	}

	s.recorder.ViewsActive(active)
	s.logger.Debug().Str("view", view.String()).Dur("interval", interval).Msg("Starting view poller")

	go s.loop(r)

	return nil
}

// Stop cancels future polls of view and discards any in-flight result.
// Stopping a view that is not running is a no-op.
func (s *Scheduler) Stop(view models.View) {
	s.mu.Lock()
	r, ok := s.runs[view]

	if ok {
		delete(s.runs, view)
	}

	active := len(s.runs)
	s.mu.Unlock()

	if !ok {
		return
	}

	r.stop()
	s.recorder.ViewsActive(active)
	s.logger.Debug().Str("view", view.String()).Msg("Stopped view poller")
}

// Refresh asks a running view to poll now. It reports false when the view
// is not running. When a poll is in flight the request is held and runs
// once that poll resolves; repeated requests collapse into one.
func (s *Scheduler) Refresh(view models.View) bool {
	s.mu.Lock()
	r, ok := s.runs[view]
	s.mu.Unlock()

	if !ok {
		return false
	}

	select {
	case r.refreshCh <- struct{}{}:
	default:
	}

	return true
}

// Running reports whether view has an active schedule.
func (s *Scheduler) Running(view models.View) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.runs[view]

	return ok
}

// StopAll stops every view and waits for their goroutines to exit.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	runs := s.runs
	s.runs = make(map[models.View]*run)
	s.mu.Unlock()

	for _, r := range runs {
		r.stop()
	}

	s.recorder.ViewsActive(0)
	s.wg.Wait()
}

func (r *run) stop() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	r.closeOnce.Do(func() {
		close(r.done)
	})

	r.cancel()
}

func (s *Scheduler) loop(r *run) {
	defer s.wg.Done()

	var tick <-chan time.Time

	if r.interval > 0 {
		ticker := s.clock.Ticker(r.interval)
		defer ticker.Stop()

		tick = ticker.Chan()
	}

	s.trigger(r, false)

	for {
		select {
		case <-r.done:
			return
		case <-r.ctx.Done():
			s.detach(r)

			return
		case <-tick:
			s.trigger(r, false)
		case <-r.refreshCh:
			s.trigger(r, true)
		}
	}
}

// detach removes r after its parent context ended.
func (s *Scheduler) detach(r *run) {
	s.mu.Lock()
	if s.runs[r.view] == r {
		delete(s.runs, r.view)
	}
	s.mu.Unlock()

	r.stop()
}

// trigger starts a poll unless one is in flight. A held request is
// remembered and run by execute; a tick is dropped.
func (s *Scheduler) trigger(r *run, hold bool) {
	r.mu.Lock()

	if r.stopped {
		r.mu.Unlock()

		return
	}

	if r.inFlight {
		if hold {
			r.pending = true
			r.mu.Unlock()

			s.logger.Debug().Str("view", r.view.String()).Msg("Refresh held until the poll in flight resolves")

			return
		}

		r.mu.Unlock()

		s.recorder.PollSkipped(r.view)
		s.logger.Debug().Str("view", r.view.String()).Msg("Previous poll still in flight, skipping tick")

		return
	}

	r.inFlight = true
	s.wg.Add(1)
	r.mu.Unlock()

	go s.execute(r)
}

func (s *Scheduler) execute(r *run) {
	defer s.wg.Done()

	start := s.clock.Now()
	commit, err := r.task(r.ctx)
	elapsed := s.clock.Now().Sub(start)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.inFlight = false

	if r.stopped {
		r.pending = false
		s.logger.Debug().Str("view", r.view.String()).Msg("Discarding poll result for stopped view")

		if s.onDiscard != nil {
			s.onDiscard(r.view)
		}

		return
	}

	s.recorder.PollCompleted(r.view, elapsed, err)

	switch {
	case err != nil:
		s.logger.Warn().Err(err).Str("view", r.view.String()).Msg("Poll failed")

		if s.onError != nil {
			s.onError(r.view, err)
		}
	case commit != nil:
		commit()
	}

	if r.pending {
		r.pending = false
		r.inFlight = true
		s.wg.Add(1)

		go s.execute(r)
	}
}
