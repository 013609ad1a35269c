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

// Package logger provides JSON structured logging using zerolog
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var errOpenLogFile = errors.New("failed to open log file")

type Config struct {
	Level      string     `json:"level" yaml:"level"`
	Debug      bool       `json:"debug" yaml:"debug"`
	Output     string     `json:"output" yaml:"output"`
	File       string     `json:"file,omitempty" yaml:"file,omitempty"`
	TimeFormat string     `json:"time_format" yaml:"time_format"`
	OTel       OTelConfig `json:"otel" yaml:"otel"`
}

// New builds a Logger from config. When File is set output is appended to
// that file instead of stdout/stderr; the terminal UI relies on this so log
// lines never land on the rendered screen. The returned closer releases the
// file and is safe to call when no file was opened.
func New(config *Config) (Logger, io.Closer, error) {
	if config == nil {
		config = DefaultConfig()
	}

	output, closer, err := openOutput(config)
	if err != nil {
		return nil, nil, err
	}

	level, err := parseLevel(config)
	if err != nil {
		_ = closer.Close()

		return nil, nil, err
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	} else {
		zerolog.TimeFieldFormat = time.RFC3339
	}

	z := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return Wrap(z), closer, nil
}

func parseLevel(config *Config) (zerolog.Level, error) {
	if config.Debug {
		return zerolog.DebugLevel, nil
	}

	if config.Level == "" {
		return zerolog.InfoLevel, nil
	}

	return zerolog.ParseLevel(config.Level)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openOutput(config *Config) (io.Writer, io.Closer, error) {
	if config.File != "" {
		f, err := os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("%w %s: %w", errOpenLogFile, config.File, err)
		}

		return f, f, nil
	}

	if config.Output == "stderr" {
		return os.Stderr, nopCloser{}, nil
	}

	return os.Stdout, nopCloser{}, nil
}
