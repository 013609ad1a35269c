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
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carverauto/guardian/pkg/models"
)

//nolint:gochecknoglobals // cobra flag bindings
var mitigateAction string

var isolateCmd = &cobra.Command{
	Use:   "isolate <device-id>",
	Short: "Isolate a device from the network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			return s.console.IsolateDevice(ctx, args[0])
		})
	},
}

var mitigateCmd = &cobra.Command{
	Use:   "mitigate <threat-id>",
	Short: "Mark a threat as mitigated",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		action := models.MitigationAction(mitigateAction)
		if !action.Valid() {
			return &exitError{code: exitConfig, err: fmt.Errorf("unknown action %q (one of: %s)", mitigateAction, actionNames())}
		}

		return withSession(cmd, func(ctx context.Context, s *session) error {
			return s.console.MitigateThreat(ctx, args[0], action)
		})
	},
}

var incidentCmd = &cobra.Command{
	Use:   "incident",
	Short: "Work with incidents",
}

var incidentGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Ask the backend to synthesize an incident",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			inc, err := s.console.GenerateIncident(ctx)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), inc, false)
		})
	},
}

var behaviorsCmd = &cobra.Command{
	Use:   "behaviors",
	Short: "Work with behavior samples",
}

var behaviorsSimulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Ask the backend to synthesize behavior samples",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			_, err := s.console.SimulateBehaviors(ctx)

			return err
		})
	},
}

func init() {
	mitigateCmd.Flags().StringVarP(&mitigateAction, "action", "a", string(models.MitigationTrafficBlocked),
		"Mitigation to record ("+actionNames()+")")

	incidentCmd.AddCommand(incidentGenerateCmd)
	behaviorsCmd.AddCommand(behaviorsSimulateCmd)
}

func actionNames() string {
	actions := models.MitigationActions()
	names := make([]string, 0, len(actions))

	for _, a := range actions {
		names = append(names, string(a))
	}

	return strings.Join(names, ", ")
}

// withSession runs fn against a fresh session and echoes the toasts it
// raised to stderr.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	s, err := openSession(cmd.Context(), sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	err = fn(cmd.Context(), s)

	printToasts(cmd.ErrOrStderr(), s)

	return err
}

func printToasts(w io.Writer, s *session) {
	for _, n := range s.console.Notifications().Recent() {
		_, _ = fmt.Fprintf(w, "[%s] %s\n", n.Level, n.Message)
	}
}
