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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carverauto/guardian/pkg/cli"
	"github.com/carverauto/guardian/pkg/metrics"
	"github.com/carverauto/guardian/pkg/models"
	"github.com/carverauto/guardian/pkg/version"
)

//nolint:gochecknoglobals // cobra flag bindings
var (
	watchView        string
	watchMetricsAddr string
	watchSkipInit    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the live console",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchView, "view", string(models.ViewDashboard), "View to open first")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	watchCmd.Flags().BoolVar(&watchSkipInit, "no-init", false, "Do not seed an empty backend on startup")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return cli.ErrNotATerminal
	}

	initial := models.View(watchView)
	if !initial.Valid() {
		return &exitError{code: exitConfig, err: fmt.Errorf("unknown view %q", watchView)}
	}

	ctx := cmd.Context()

	s, err := openSession(ctx, sessionOptions{interactive: true})
	if err != nil {
		return err
	}
	defer s.Close()

	if !watchSkipInit {
		// A failed bootstrap is shown as a toast and the console still opens.
		if _, err := s.console.Bootstrap(ctx); err != nil {
			s.log.Warn().Err(err).Msg("Bootstrap failed")
		}
	}

	addr := s.cfg.MetricsAddr
	if watchMetricsAddr != "" {
		addr = watchMetricsAddr
	}

	if addr != "" {
		stopMetrics := serveMetrics(ctx, s, addr)
		defer stopMetrics()
	}

	return cli.Run(ctx, cli.Options{
		Console: s.console,
		Sampler: metrics.NewHostSampler(s.log, 0),
		Logger:  s.log,
		Version: version.GetVersion(),
		Initial: initial,
	})
}

func serveMetrics(ctx context.Context, s *session, addr string) func() {
	srv, errCh := metrics.StartServer(ctx, addr, s.metrics.Handler(), s.log)
	if srv == nil {
		return func() {}
	}

	go func() {
		select {
		case err := <-errCh:
			s.log.Error().Err(err).Str("addr", addr).Msg("Metrics server stopped")
		case <-ctx.Done():
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}
}
