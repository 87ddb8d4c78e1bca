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
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/google/tabula/core/logging"
	"github.com/google/tabula/core/tables"
)

type dumpParams struct {
	commonParams
	dataset string
	sortBy  string
	desc    bool
}

func init() {
	RootCommand.AddCommand(newDumpCommand())
}

func newDumpCommand() *cobra.Command {
	var params dumpParams
	dumpCommand := &cobra.Command{
		Use:   "dump",
		Short: "Print a dataset as an ASCII table",
		Long: `Print a dataset as an ASCII table, optionally sorted.

The --sort column is a header key, a header title or a zero-based index.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDump(cmd, &params)
		},
	}
	params.addFlags(dumpCommand)
	fs := dumpCommand.Flags()
	addDatasetFlag(fs, &params.dataset, "people")
	fs.StringVarP(&params.sortBy, "sort", "s", "", "sort by this column")
	fs.BoolVar(&params.desc, "desc", false, "sort descending")
	return dumpCommand
}

func runDump(cmd *cobra.Command, params *dumpParams) error {
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

	logger := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cmd.ErrOrStderr()})
	grid := d.NewGrid(envFromConfig(cfg, logger))
	defer grid.Close()

	if params.sortBy != "" {
		col, err := columnIndex(grid.View().Headers, params.sortBy)
		if err != nil {
			return err
		}
		grid.SortBy(col)
		if params.desc {
			grid.SortBy(col)
		}
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), grid.ToAscii())
	return err
}

// columnIndex resolves a header key, title or index.
func columnIndex(headers []tables.HeaderView, name string) (int, error) {
	for i, h := range headers {
		if h.Key == name || strings.EqualFold(h.Text, name) {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(name); err == nil && i >= 0 && i < len(headers) {
		return i, nil
	}
	return -1, fmt.Errorf("unknown column %q", name)
}
