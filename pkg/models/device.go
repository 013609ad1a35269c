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

package models

import (
	"fmt"
	"slices"
)

// DeviceStatus is the connectivity state reported by discovery.
type DeviceStatus string

const (
	DeviceStatusOnline   DeviceStatus = "online"
	DeviceStatusOffline  DeviceStatus = "offline"
	DeviceStatusIsolated DeviceStatus = "isolated"
)

// Device is a discovered IoT device. Honeypots share the shape and are
// flagged with IsHoneypot.
type Device struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Type            string       `json:"device_type"`
	IP              string       `json:"ip_address"`
	MAC             string       `json:"mac_address"`
	Manufacturer    string       `json:"manufacturer"`
	Model           string       `json:"model,omitempty"`
	FirmwareVersion string       `json:"firmware_version"`
	RiskScore       int          `json:"risk_score"`
	Status          DeviceStatus `json:"status"`
	IsHoneypot      bool         `json:"is_honeypot"`
	OpenPorts       []int        `json:"open_ports"`
	Protocols       []string     `json:"protocols"`
	LastSeen        Timestamp    `json:"last_seen"`
}

// Isolated reports whether the device has already been cut off the network.
func (d *Device) Isolated() bool {
	return d.Status == DeviceStatusIsolated
}

// CloneDevices returns a copy of the collection so that a caller can patch
// entries without touching another view's slice.
func CloneDevices(in []Device) []Device {
	if in == nil {
		return []Device{}
	}

	return slices.Clone(in)
}

// DeviceIndex resolves weak device references (threat.device_id,
// incident.target_device_id, sample.device_id) by id.
type DeviceIndex map[string]Device

// IndexDevices builds a lookup table from the last known device collection.
func IndexDevices(devices []Device) DeviceIndex {
	ix := make(DeviceIndex, len(devices))

	for i := range devices {
		ix[devices[i].ID] = devices[i]
	}

	return ix
}

// Lookup returns the device for id; a miss is normal and must be tolerated.
func (ix DeviceIndex) Lookup(id string) (Device, bool) {
	d, ok := ix[id]

	return d, ok
}

// Label renders a device reference, falling back to the raw id on a miss.
func (ix DeviceIndex) Label(id string) string {
	if d, ok := ix[id]; ok && d.Name != "" {
		return d.Name
	}

	if id == "" {
		return "unknown device"
	}

	return fmt.Sprintf("unknown device (%s)", id)
}
