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

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed the backend with sample data when it has no devices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			res, err := s.console.Bootstrap(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			switch {
			case res.Initialized:
				_, _ = fmt.Fprintln(out, res.Message)
			case res.Stats != nil:
				_, _ = fmt.Fprintf(out, "Backend already has %d devices; nothing to do\n", res.Stats.TotalDevices)
			}

			return nil
		})
	},
}
