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

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/guardian/pkg/aggregate"
	"github.com/carverauto/guardian/pkg/graph"
	"github.com/carverauto/guardian/pkg/models"
	"github.com/carverauto/guardian/pkg/notify"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaYellow     = "#F1FA8C"
	draculaComment    = "#6272A4"
)

type styles struct {
	title, tab, activeTab, header, selected, muted lipgloss.Style
	success, error, info, warning                  lipgloss.Style
	panel, app                                     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)).
			Padding(0, 1),
		activeTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)).
			Background(lipgloss.Color(draculaPurple)).
			Bold(true).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Bold(true),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)).
			Bold(true),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)),
		warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draculaPurple)).
			Padding(0, 1),
		app: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color(draculaForeground)),
	}
}

func (s styles) toast(level notify.Level) lipgloss.Style {
	switch level {
	case notify.LevelSuccess:
		return s.success
	case notify.LevelError:
		return s.error
	case notify.LevelInfo:
		return s.info
	default:
		return s.info
	}
}

func (s styles) severity(sev models.Severity) lipgloss.Style {
	switch sev {
	case models.SeverityCritical:
		return s.error
	case models.SeverityHigh:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(aggregate.ColorHigh))
	case models.SeverityMedium:
		return s.warning
	case models.SeverityLow:
		return s.success
	default:
		return s.warning
	}
}

func riskStyle(score int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(aggregate.Bucket(score).Color()))
}

func nodeStyle(n *models.GraphNode) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(graph.Encode(n).Color))
}
