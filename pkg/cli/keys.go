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

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Up        key.Binding
	Down      key.Binding
	Refresh   key.Binding
	Isolate   key.Binding
	Mitigate1 key.Binding
	Mitigate2 key.Binding
	Mitigate3 key.Binding
	Generate  key.Binding
	Simulate  key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab", "next view")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab", "prev view")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Isolate:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "isolate device")),
		Mitigate1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "isolate (threat)")),
		Mitigate2: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "block traffic")),
		Mitigate3: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "monitor")),
		Generate:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate incident")),
		Simulate:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "simulate behaviors")),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Refresh, k.Up, k.Down, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Up, k.Down, k.Refresh},
		{k.Isolate, k.Mitigate1, k.Mitigate2, k.Mitigate3},
		{k.Generate, k.Simulate, k.Copy},
		{k.Help, k.Quit},
	}
}
