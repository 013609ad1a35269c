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

// OTelConfig controls span export for outbound backend calls.
type OTelConfig struct {
	Enabled     bool              `json:"enabled" yaml:"enabled"`
	Endpoint    string            `json:"endpoint" yaml:"endpoint"`
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	ServiceName string            `json:"service_name" yaml:"service_name"`
	Insecure    bool              `json:"insecure" yaml:"insecure"`
}

// Exporting reports whether spans leave the process.
func (c *OTelConfig) Exporting() bool {
	return c != nil && c.Enabled && c.Endpoint != ""
}
