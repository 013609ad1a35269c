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

package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the structured logger every console component receives.
type Logger interface {
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	Fatal() *zerolog.Event
	With() zerolog.Context
	WithComponent(component string) zerolog.Logger
	SetLevel(level zerolog.Level)
	SetDebug(debug bool)
}

// zlogger adapts a zerolog.Logger to Logger.
type zlogger struct {
	z zerolog.Logger
}

// Wrap exposes an existing zerolog.Logger through the Logger interface.
func Wrap(z zerolog.Logger) Logger {
	return &zlogger{z: z}
}

func (l *zlogger) Trace() *zerolog.Event { return l.z.Trace() }
func (l *zlogger) Debug() *zerolog.Event { return l.z.Debug() }
func (l *zlogger) Info() *zerolog.Event  { return l.z.Info() }
func (l *zlogger) Warn() *zerolog.Event  { return l.z.Warn() }
func (l *zlogger) Error() *zerolog.Event { return l.z.Error() }
func (l *zlogger) Fatal() *zerolog.Event { return l.z.Fatal() }
func (l *zlogger) With() zerolog.Context { return l.z.With() }

func (l *zlogger) WithComponent(component string) zerolog.Logger {
	return l.z.With().Str("component", component).Logger()
}

func (l *zlogger) SetLevel(level zerolog.Level) { l.z = l.z.Level(level) }

func (l *zlogger) SetDebug(debug bool) {
	if debug {
		l.SetLevel(zerolog.DebugLevel)
	} else {
		l.SetLevel(zerolog.InfoLevel)
	}
}

// NewTestLogger creates a no-op logger for testing that discards all output
func NewTestLogger() Logger {
	return Wrap(zerolog.New(io.Discard).Level(zerolog.Disabled))
}

// NewWriterLogger logs JSON lines at debug level to w. Tests use it to
// assert on emitted events.
func NewWriterLogger(w io.Writer) Logger {
	return Wrap(zerolog.New(w).Level(zerolog.DebugLevel))
}
