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
	"os"
	"strconv"
	"strings"
)

// DefaultServiceName identifies the console in exported traces.
const DefaultServiceName = "guardian-console"

// DefaultConfig reads logging settings from the environment. Each setting
// takes the console's GUARDIAN_LOGGING_* variable first, which is the name the
// config loader also binds, then the conventional name shared with other tools.
func DefaultConfig() *Config {
	return &Config{
		Level:      lookupEnv("info", "GUARDIAN_LOGGING_LEVEL", "LOG_LEVEL"),
		Debug:      lookupEnvBool(false, "GUARDIAN_LOGGING_DEBUG", "DEBUG"),
		Output:     lookupEnv("stderr", "GUARDIAN_LOGGING_OUTPUT", "LOG_OUTPUT"),
		File:       lookupEnv("", "GUARDIAN_LOGGING_FILE", "LOG_FILE"),
		TimeFormat: lookupEnv("", "GUARDIAN_LOGGING_TIME_FORMAT", "LOG_TIME_FORMAT"),
		OTel:       DefaultOTelConfig(),
	}
}

// DefaultOTelConfig reads the trace exporter settings. The signal specific
// OTLP variables win over the generic ones. Headers use the OTLP "k=v,k=v"
// form and are only read from the OTLP variables.
func DefaultOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled: lookupEnvBool(false, "GUARDIAN_LOGGING_OTEL_ENABLED", "OTEL_TRACES_ENABLED"),
		Endpoint: lookupEnv("", "GUARDIAN_LOGGING_OTEL_ENDPOINT",
			"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT"),
		Headers: parseHeaders(lookupEnv("",
			"OTEL_EXPORTER_OTLP_TRACES_HEADERS", "OTEL_EXPORTER_OTLP_HEADERS")),
		ServiceName: lookupEnv(DefaultServiceName, "GUARDIAN_LOGGING_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME"),
		Insecure: lookupEnvBool(false, "GUARDIAN_LOGGING_OTEL_INSECURE",
			"OTEL_EXPORTER_OTLP_TRACES_INSECURE", "OTEL_EXPORTER_OTLP_INSECURE"),
	}
}

// parseHeaders reads the OTLP "k1=v1,k2=v2" header list. Entries without a
// key are dropped. Nil is returned when nothing usable remains.
func parseHeaders(raw string) map[string]string {
	var headers map[string]string

	for pair := range strings.SplitSeq(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			continue
		}

		if headers == nil {
			headers = make(map[string]string)
		}

		headers[key] = strings.TrimSpace(value)
	}

	return headers
}

func lookupEnv(fallback string, keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}

	return fallback
}

// lookupEnvBool accepts strconv booleans plus "yes" and "on".
func lookupEnvBool(fallback bool, keys ...string) bool {
	raw := strings.ToLower(strings.TrimSpace(lookupEnv("", keys...)))

	switch raw {
	case "":
		return fallback
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return v
}
