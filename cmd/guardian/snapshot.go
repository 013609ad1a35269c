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
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/carverauto/guardian/pkg/models"
)

//nolint:gochecknoglobals // cobra flag bindings
var snapshotCompact bool

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [view...]",
	Short: "Poll views once and print them as JSON",
	Long: "Poll each named view once (all views when none are named) and print\n" +
		"the resulting snapshots as JSON. Views that fail still appear with\n" +
		"their error and the command exits non-zero.",
	ValidArgs: viewNames(),
	RunE:      runSnapshot,
}

func init() {
	snapshotCmd.Flags().BoolVar(&snapshotCompact, "compact", false, "Print one JSON document per line")
}

func viewNames() []string {
	views := models.Views()
	out := make([]string, 0, len(views))

	for _, v := range views {
		out = append(out, string(v))
	}

	return out
}

func parseViews(args []string) ([]models.View, error) {
	out := make([]models.View, 0, len(args))

	for _, arg := range args {
		v := models.View(arg)
		if !v.Valid() {
			return nil, &exitError{code: exitConfig, err: fmt.Errorf("unknown view %q", arg)}
		}

		out = append(out, v)
	}

	if len(out) == 0 {
		return models.Views(), nil
	}

	return out, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	views, err := parseViews(args)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	pollErr := s.console.PollOnce(cmd.Context(), views...)

	exports := make([]interface{}, 0, len(views))

	for _, v := range views {
		e, err := s.console.Export(v)
		if err != nil {
			return err
		}

		exports = append(exports, e)
	}

	if err := writeJSON(cmd.OutOrStdout(), exports, snapshotCompact); err != nil {
		return err
	}

	if pollErr != nil {
		return &exitError{code: exitFailure, err: pollErr}
	}

	return nil
}

func writeJSON(w io.Writer, v interface{}, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(v)
}
