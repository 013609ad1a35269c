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

package poller

//go:generate mockgen -destination=mock_poller.go -package=poller github.com/carverauto/guardian/pkg/poller Clock,Ticker

import (
	"context"
	"time"

	"github.com/carverauto/guardian/pkg/models"
)

// Clock abstracts time-related operations.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker abstracts the ticker behavior.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// Commit applies the result of a poll. The scheduler calls it only while
// the view is still running.
type Commit func()

// Task fetches one view. Exactly one of Commit, ErrorHandler or
// DiscardHandler follows every call.
type Task func(ctx context.Context) (Commit, error)

// ErrorHandler receives poll failures for views that are still running. It
// runs under the view lock and must not stop that view synchronously.
type ErrorHandler func(view models.View, err error)

// DiscardHandler is told when a poll resolved after its view stopped and
// its result was dropped. Like ErrorHandler it runs under the view lock.
type DiscardHandler func(view models.View)

// Recorder observes scheduler activity, typically for metrics.
type Recorder interface {
	PollCompleted(view models.View, elapsed time.Duration, err error)
	PollSkipped(view models.View)
	ViewsActive(n int)
}
