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

package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/google/tabula/core/clock"
	"github.com/google/tabula/core/logging"
	"github.com/google/tabula/core/measure"
	"github.com/google/tabula/core/server"
	"github.com/google/tabula/core/tui"
)

// cellWidth is the nominal pixel width of one terminal cell.
const cellWidth = 8

type tuiParams struct {
	commonParams
	dataset string
}

func init() {
	RootCommand.AddCommand(newTUICommand())
}

func newTUICommand() *cobra.Command {
	var params tuiParams
	tuiCommand := &cobra.Command{
		Use:   "tui",
		Short: "Explore a dataset in the terminal",
		Long: `Open a dataset as an interactive terminal grid.

Arrow keys move the cursor, space selects, V extends the selection, s sorts
by the cursor column, +/- resize it and enter edits the cell.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, &params)
		},
	}
	params.addFlags(tuiCommand)
	addDatasetFlag(tuiCommand.Flags(), &params.dataset, "people")
	return tuiCommand
}

func runTUI(cmd *cobra.Command, params *tuiParams) error {
	cfg, err := params.load()
	if err != nil {
		return err
	}
	product, err := params.buildProduct()
	if err != nil {
		return err
	}
	d, err := product.Dataset(params.dataset)
	if err != nil {
		return err
	}

	// Logs would corrupt the alt screen; only errors go to stderr.
	logger := logging.New(logging.Options{Level: "error", Format: cfg.Log.Format, Output: cmd.ErrOrStderr()})
	cells := measure.CellMeasurer{CellWidth: cellWidth}
	notifier := tui.NewNotifier()
	grid := d.NewGrid(server.GridEnv{
		Limits:       cfg.Grid.Limits(),
		Measurer:     cells,
		Logger:       logger,
		Clock:        clock.Real(),
		OnInvalidate: notifier.Notify,
	})
	defer grid.Close()

	model := tui.New(d.DisplayName(), grid, cells, notifier)
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(cmd.OutOrStdout())).Run()
	return err
}
