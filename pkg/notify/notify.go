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

// Package notify carries transient user-facing notifications (toasts).
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/carverauto/guardian/pkg/models"
	"github.com/google/uuid"
)

// Level is the tone of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"

	defaultHistory = 50
	// DefaultTTL is how long a toast stays visible.
	DefaultTTL = 5 * time.Second
)

// Notification is one toast.
type Notification struct {
	ID      string      `json:"id"`
	Level   Level       `json:"level"`
	View    models.View `json:"view,omitempty"`
	Message string      `json:"message"`
	Time    time.Time   `json:"time"`
}

// Expired reports whether the toast should no longer be shown at now.
func (n Notification) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(n.Time) >= ttl
}

// Publisher emits notifications.
type Publisher interface {
	Success(view models.View, format string, args ...interface{})
	Error(view models.View, format string, args ...interface{})
	Info(view models.View, format string, args ...interface{})
}

// Bus fans notifications out to subscribers and keeps a bounded history.
// Publishing never blocks: a subscriber whose buffer is full misses the
// notification but can still read it from Recent.
type Bus struct {
	mu      sync.Mutex
	history []Notification
	limit   int
	subs    map[int]chan Notification
	nextSub int
	now     func() time.Time
}

var _ Publisher = (*Bus)(nil)

// NewBus creates a Bus keeping the last 50 notifications.
func NewBus() *Bus {
	return &Bus{
		limit: defaultHistory,
		subs:  make(map[int]chan Notification),
		now:   time.Now,
	}
}

func (b *Bus) Success(view models.View, format string, args ...interface{}) {
	b.Publish(LevelSuccess, view, fmt.Sprintf(format, args...))
}

func (b *Bus) Error(view models.View, format string, args ...interface{}) {
	b.Publish(LevelError, view, fmt.Sprintf(format, args...))
}

func (b *Bus) Info(view models.View, format string, args ...interface{}) {
	b.Publish(LevelInfo, view, fmt.Sprintf(format, args...))
}

// Publish records and delivers a notification.
func (b *Bus) Publish(level Level, view models.View, message string) Notification {
	n := Notification{
		ID:      uuid.NewString(),
		Level:   level,
		View:    view,
		Message: message,
		Time:    b.now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.history = append(b.history, n)
	if over := len(b.history) - b.limit; over > 0 {
		b.history = append([]Notification(nil), b.history[over:]...)
	}

	for _, c := range b.subs {
		select {
		case c <- n:
		default:
		}
	}

	return n
}

// Subscribe returns a buffered channel of future notifications.
func (b *Bus) Subscribe(buffer int) (ch <-chan Notification, cancel func()) {
	c := make(chan Notification, max(buffer, 1))

	b.mu.Lock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = c
	b.mu.Unlock()

	return c, func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		delete(b.subs, id)
	}
}

// Recent returns the history, oldest first.
func (b *Bus) Recent() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]Notification(nil), b.history...)
}

// Latest returns the newest notification that has not expired at now.
func (b *Bus) Latest(now time.Time, ttl time.Duration) (Notification, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.history) == 0 {
		return Notification{}, false
	}

	n := b.history[len(b.history)-1]
	if n.Expired(now, ttl) {
		return Notification{}, false
	}

	return n, true
}
