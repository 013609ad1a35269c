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

// Package store holds the reconciled state of each console view.
package store

import (
	"slices"
	"sync"
	"time"

	"github.com/carverauto/guardian/pkg/models"
)

// State is the lifecycle position of a view.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateReady
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// Option configures a View.
type Option[T any] func(*View[T])

// WithSelection enables per-view selection. ids lists the selectable ids
// of a data value; with autoFirst an empty selection picks the first id on
// every commit.
func WithSelection[T any](ids func(T) []string, autoFirst bool) Option[T] {
	return func(v *View[T]) {
		v.ids = ids
		v.autoFirst = autoFirst
	}
}

// WithEmpty tells the view how to recognize a loaded-but-empty value.
func WithEmpty[T any](empty func(T) bool) Option[T] {
	return func(v *View[T]) {
		v.empty = empty
	}
}

// WithClock overrides the time source used for UpdatedAt.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(v *View[T]) {
		v.now = now
	}
}

// View is the reconciled state of one view. Data is replaced wholesale on
// every commit (last poll wins); Mutate installs a copy-on-write optimistic
// value that the next commit supersedes.
type View[T any] struct {
	name models.View

	ids       func(T) []string
	autoFirst bool
	empty     func(T) bool
	now       func() time.Time

	mu         sync.RWMutex
	state      State
	fetching   int
	data       T
	loaded     bool
	optimistic bool
	lastErr    error
	updatedAt  time.Time
	selected   string
	subs       []chan struct{}
}

// NewView creates an empty view.
func NewView[T any](name models.View, opts ...Option[T]) *View[T] {
	v := &View[T]{name: name, now: time.Now}

	for _, o := range opts {
		o(v)
	}

	return v
}

// Name returns the view this state belongs to.
func (v *View[T]) Name() models.View { return v.name }

// BeginFetch records that a poll was sent: Empty becomes Loading and Ready
// becomes Refreshing. Every BeginFetch must be followed by one Commit, Fail
// or CancelFetch.
func (v *View[T]) BeginFetch() State {
	v.mu.Lock()
	v.fetching++
	v.settleLocked()
	s := v.state
	v.mu.Unlock()

	v.signal()

	return s
}

// Commit installs authoritative data from a poll.
func (v *View[T]) Commit(data T) {
	v.mu.Lock()
	v.endFetchLocked()
	v.data = data
	v.loaded = true
	v.optimistic = false
	v.lastErr = nil
	v.updatedAt = v.now()
	v.reconcileLocked()
	v.settleLocked()
	v.mu.Unlock()

	v.signal()
}

// Fail records a failed poll. Previously loaded data stays visible; a view
// that never loaded falls back to Empty.
func (v *View[T]) Fail(err error) {
	v.mu.Lock()
	v.endFetchLocked()
	v.lastErr = err
	v.settleLocked()
	v.mu.Unlock()

	v.signal()
}

// CancelFetch ends a poll whose result was dropped. Data and error are left
// as they were.
func (v *View[T]) CancelFetch() {
	v.mu.Lock()
	v.endFetchLocked()
	v.settleLocked()
	v.mu.Unlock()

	v.signal()
}

func (v *View[T]) endFetchLocked() {
	if v.fetching > 0 {
		v.fetching--
	}
}

// settleLocked derives the state from whether data is loaded and whether a
// poll is still outstanding.
func (v *View[T]) settleLocked() {
	switch {
	case v.loaded && v.fetching > 0:
		v.state = StateRefreshing
	case v.loaded:
		v.state = StateReady
	case v.fetching > 0:
		v.state = StateLoading
	default:
		v.state = StateEmpty
	}
}

// Mutate applies a known effect to the current data. fn must return a new
// value rather than modify its argument, and reports whether anything
// changed. Mutate is a no-op before the first commit.
func (v *View[T]) Mutate(fn func(T) (T, bool)) bool {
	v.mu.Lock()

	if !v.loaded {
		v.mu.Unlock()

		return false
	}

	next, changed := fn(v.data)
	if changed {
		v.data = next
		v.optimistic = true

		v.reconcileLocked()
	}
	v.mu.Unlock()

	if changed {
		v.signal()
	}

	return changed
}

// Select makes id the view's selection. Selecting an id that is not in the
// current data fails; "" clears the selection.
func (v *View[T]) Select(id string) bool {
	v.mu.Lock()

	if id != "" && v.ids != nil && v.loaded && !slices.Contains(v.ids(v.data), id) {
		v.mu.Unlock()

		return false
	}

	changed := v.selected != id
	v.selected = id
	v.mu.Unlock()

	if changed {
		v.signal()
	}

	return true
}

// Selected returns the selected id or "".
func (v *View[T]) Selected() string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.selected
}

// reconcileLocked drops a selection whose id vanished and applies
// auto-select-first.
func (v *View[T]) reconcileLocked() {
	if v.ids == nil {
		return
	}

	ids := v.ids(v.data)

	if v.selected != "" && !slices.Contains(ids, v.selected) {
		v.selected = ""
	}

	if v.selected == "" && v.autoFirst && len(ids) > 0 {
		v.selected = ids[0]
	}
}

// Snapshot returns an immutable copy of the view state. Data is shared with
// the view, so callers must treat it as read-only.
func (v *View[T]) Snapshot() Snapshot[T] {
	v.mu.RLock()
	defer v.mu.RUnlock()

	zero := false
	if v.loaded && v.empty != nil {
		zero = v.empty(v.data)
	}

	return Snapshot[T]{
		View:       v.name,
		State:      v.state,
		Data:       v.data,
		Loaded:     v.loaded,
		Optimistic: v.optimistic,
		Err:        v.lastErr,
		UpdatedAt:  v.updatedAt,
		Selected:   v.selected,
		zero:       zero,
	}
}

// Subscribe returns a channel that receives a signal after every change.
// Signals coalesce: a slow reader sees at least one pending signal, never
// a backlog. cancel releases the subscription.
func (v *View[T]) Subscribe() (ch <-chan struct{}, cancel func()) {
	c := make(chan struct{}, 1)

	v.mu.Lock()
	v.subs = append(v.subs, c)
	v.mu.Unlock()

	return c, func() {
		v.mu.Lock()
		defer v.mu.Unlock()

		v.subs = slices.DeleteFunc(v.subs, func(s chan struct{}) bool { return s == c })
	}
}

func (v *View[T]) signal() {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, c := range v.subs {
		select {
		case c <- struct{}{}:
		default:
		}
	}
}

// Snapshot is a point-in-time read of a View.
type Snapshot[T any] struct {
	View       models.View
	State      State
	Data       T
	Loaded     bool
	Optimistic bool
	Err        error
	UpdatedAt  time.Time
	Selected   string

	zero bool
}

// Zero reports the loaded-with-no-entities state. It is distinct from
// Loading and from a failed first load.
func (s Snapshot[T]) Zero() bool { return s.zero }

// Stale reports that the shown data predates a failed refresh.
func (s Snapshot[T]) Stale() bool { return s.Loaded && s.Err != nil }
