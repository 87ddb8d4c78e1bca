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

import tea "github.com/charmbracelet/bubbletea"

// InvalidateMsg asks the model to redraw after a grid state change that
// happened outside of Update, such as an expired hover or click timer.
type InvalidateMsg struct{}

// Notifier turns grid invalidations into bubbletea messages. Notify never
// blocks, so it is safe to call from inside Update; pending notifications
// coalesce into one.
type Notifier struct {
	ch chan struct{}
}

// NewNotifier returns a notifier with room for one pending notification.
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan struct{}, 1)}
}

// Notify is meant to be installed as the grid's OnInvalidate callback.
func (n *Notifier) Notify() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

func (n *Notifier) wait() tea.Cmd {
	return func() tea.Msg {
		<-n.ch
		return InvalidateMsg{}
	}
}
