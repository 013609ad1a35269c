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

// Package metrics exposes console activity as Prometheus collectors.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carverauto/guardian/pkg/models"
)

const namespace = "guardian"

// Result labels.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var pollDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// Collectors holds every console metric on a private registry so tests
// and multiple consoles in one process do not collide.
type Collectors struct {
	registry *prometheus.Registry

	PollsTotal       *prometheus.CounterVec
	PollSkippedTotal *prometheus.CounterVec
	PollDuration     *prometheus.HistogramVec
	MutationsTotal   *prometheus.CounterVec
	ViewsActiveGauge prometheus.Gauge
	HostCPUPercent   prometheus.Gauge
	HostMemoryUsed   prometheus.Gauge
	HostMemoryTotal  prometheus.Gauge
}

// New registers the console collectors plus the Go runtime and process
// collectors on a fresh registry.
func New() *Collectors {
	reg := prometheus.NewRegistry()

	c := &Collectors{
		registry: reg,
		PollsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Count of completed view polls.",
		}, []string{"view", "result"}),
		PollSkippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_skipped_total",
			Help:      "Ticks dropped because the previous poll was still in flight.",
		}, []string{"view"}),
		PollDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Time taken for a view poll to resolve.",
			Buckets:   pollDurationBuckets,
		}, []string{"view"}),
		MutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Count of user-initiated mutations.",
		}, []string{"action", "result"}),
		ViewsActiveGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "views_active",
			Help:      "Number of views with a running poll schedule.",
		}),
		HostCPUPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "host_cpu_percent",
			Help:      "Host CPU utilisation observed by the console.",
		}),
		HostMemoryUsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "host_memory_used_bytes",
			Help:      "Host memory in use.",
		}),
		HostMemoryTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "host_memory_total_bytes",
			Help:      "Host memory installed.",
		}),
	}

	reg.MustRegister(
		c.PollsTotal,
		c.PollSkippedTotal,
		c.PollDuration,
		c.MutationsTotal,
		c.ViewsActiveGauge,
		c.HostCPUPercent,
		c.HostMemoryUsed,
		c.HostMemoryTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Registry returns the private registry.
func (c *Collectors) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// PollCompleted implements poller.Recorder.
func (c *Collectors) PollCompleted(view models.View, elapsed time.Duration, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}

	c.PollsTotal.WithLabelValues(string(view), result).Inc()
	c.PollDuration.WithLabelValues(string(view)).Observe(elapsed.Seconds())
}

// PollSkipped implements poller.Recorder.
func (c *Collectors) PollSkipped(view models.View) {
	c.PollSkippedTotal.WithLabelValues(string(view)).Inc()
}

// ViewsActive implements poller.Recorder.
func (c *Collectors) ViewsActive(n int) {
	c.ViewsActiveGauge.Set(float64(n))
}

// MutationCompleted implements mutation.Recorder.
func (c *Collectors) MutationCompleted(action, result string) {
	c.MutationsTotal.WithLabelValues(action, result).Inc()
}

// ObserveHost records a host sample.
func (c *Collectors) ObserveHost(s HostSample) {
	c.HostCPUPercent.Set(s.CPUPercent)
	c.HostMemoryUsed.Set(float64(s.MemUsedBytes))
	c.HostMemoryTotal.Set(float64(s.MemTotalBytes))
}

// IsServerClosed reports whether err is the normal result of Shutdown.
func IsServerClosed(err error) bool {
	return errors.Is(err, http.ErrServerClosed)
}
