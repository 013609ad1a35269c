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

package metrics

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/carverauto/guardian/pkg/logger"
)

// HostSample is a point-in-time view of the machine running the console.
type HostSample struct {
	CPUPercent    float64   `json:"cpu_percent"`
	MemUsedBytes  uint64    `json:"mem_used_bytes"`
	MemTotalBytes uint64    `json:"mem_total_bytes"`
	MemPercent    float64   `json:"mem_percent"`
	Timestamp     time.Time `json:"timestamp"`
}

// HostSampler reads CPU and memory utilisation through gopsutil.
type HostSampler struct {
	log            logger.Logger
	sampleInterval time.Duration
	usageCollector func(context.Context, time.Duration, bool) ([]float64, error)
	memCollector   func(context.Context) (*mem.VirtualMemoryStat, error)
	now            func() time.Time
}

// NewHostSampler creates a sampler that measures CPU over sampleInterval.
// A zero interval compares against the previous call.
func NewHostSampler(log logger.Logger, sampleInterval time.Duration) *HostSampler {
	return &HostSampler{
		log:            log,
		sampleInterval: sampleInterval,
		usageCollector: cpu.PercentWithContext,
		memCollector:   mem.VirtualMemoryWithContext,
		now:            time.Now,
	}
}

// Sample never fails; a collector error leaves its fields at zero.
func (h *HostSampler) Sample(ctx context.Context) HostSample {
	s := HostSample{Timestamp: h.now()}

	if percent, err := h.usageCollector(ctx, h.sampleInterval, false); err != nil {
		h.log.Debug().Err(err).Msg("cpu.PercentWithContext failed; usage will be zero")
	} else if len(percent) > 0 {
		s.CPUPercent = percent[0]
	}

	if vm, err := h.memCollector(ctx); err != nil {
		h.log.Debug().Err(err).Msg("memory collection failed; reporting zeroes")
	} else {
		s.MemUsedBytes = vm.Used
		s.MemTotalBytes = vm.Total
		s.MemPercent = vm.UsedPercent
	}

	return s
}
