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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // cobra flag bindings
var (
	configPath string
	backendURL string
	debugFlag  bool
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:           "guardian",
	Short:         "Live console for the Guardian IoT security backend.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command; SIGINT and SIGTERM cancel its context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
	flags.StringVar(&backendURL, "backend-url", "", "Backend base URL (overrides config)")
	flags.BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	flags.StringVar(&logFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(
		watchCmd,
		snapshotCmd,
		deviceCmd,
		isolateCmd,
		mitigateCmd,
		incidentCmd,
		behaviorsCmd,
		initCmd,
		versionCmd,
	)
}
