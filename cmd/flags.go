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
	"github.com/spf13/pflag"
)

func addConfigFlag(fs *pflag.FlagSet, file *string) {
	fs.StringVarP(file, "config", "c", "tabula.yaml", "set path of the configuration file (missing file uses defaults)")
}

func addLogLevelFlag(fs *pflag.FlagSet, level *string) {
	fs.StringVarP(level, "log-level", "l", "", "set log level: debug, info, warn or error")
}

func addLogFormatFlag(fs *pflag.FlagSet, format *string) {
	fs.StringVar(format, "log-format", "", "set log format: text or json")
}

func addDatasetFlag(fs *pflag.FlagSet, dataset *string, value string) {
	fs.StringVarP(dataset, "dataset", "d", value, "set the dataset to show")
}

func addSourcesFlag(fs *pflag.FlagSet, file *string) {
	fs.StringVar(file, "sources", "", "load extra datasets from this YAML data sources file")
}
