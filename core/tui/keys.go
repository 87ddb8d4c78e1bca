/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Toggle, ShiftToggle   key.Binding
	SelectAll             key.Binding
	Sort                  key.Binding
	Widen, Narrow         key.Binding
	Click                 key.Binding
	Edit, Cancel          key.Binding
	Quit                  key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
	Toggle:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
	ShiftToggle: key.NewBinding(key.WithKeys("V"), key.WithHelp("V", "select range")),
	SelectAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
	Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Widen:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "widen")),
	Narrow:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrow")),
	Click:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "click")),
	Edit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
	Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Toggle, k.ShiftToggle, k.SelectAll, k.Sort, k.Widen, k.Narrow, k.Click, k.Edit, k.Quit}
}
