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

// Package cmd implements the tabula command line.
package cmd

import (
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/google/tabula/core/config"
	"github.com/google/tabula/core/server"
	"github.com/google/tabula/datasources"
	"github.com/google/tabula/demo"
)

// RootCommand is the base CLI command that all subcommands are added to.
var RootCommand = &cobra.Command{
	Use:   path.Base(os.Args[0]),
	Short: "Tabula",
	Long:  "Serve and explore sortable, selectable, editable data grids.",
}

// commonParams are the flags shared by every subcommand.
type commonParams struct {
	configFile string
	logLevel   string
	logFormat  string
	sources    string
}

func (p *commonParams) addFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	addConfigFlag(fs, &p.configFile)
	addLogLevelFlag(fs, &p.logLevel)
	addLogFormatFlag(fs, &p.logFormat)
	addSourcesFlag(fs, &p.sources)
}

// load reads the configuration file and applies flag overrides.
func (p *commonParams) load() (*config.Config, error) {
	cfg, err := config.LoadOptional(p.configFile)
	if err != nil {
		return nil, err
	}
	if p.logLevel != "" {
		cfg.Log.Level = p.logLevel
	}
	if p.logFormat != "" {
		cfg.Log.Format = p.logFormat
	}
	return cfg, nil
}

// buildProduct assembles the demo product plus every dataset declared in the
// --sources file and any extra datasets given by the caller.
func (p *commonParams) buildProduct(extra ...server.Dataset) (*demo.Product, error) {
	if p.sources != "" {
		m := datasources.NewManager()
		if err := m.LoadConfig(p.sources); err != nil {
			return nil, err
		}
		declared, err := m.Datasets()
		if err != nil {
			return nil, err
		}
		extra = append(declared, extra...)
	}
	return demo.NewProduct(extra...)
}
