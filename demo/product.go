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

package demo

import (
	"fmt"
	"sort"

	"github.com/google/tabula/core/server"
	"github.com/google/tabula/core/tables"
)

// Product is a named collection of datasets served together.
type Product struct {
	// Name is the identifier for this product.
	Name string

	// Title is displayed on the landing page.
	Title string

	// Subtitle is displayed below the title.
	Subtitle string

	datasets []server.Dataset
}

// GetName returns the product name.
func (p *Product) GetName() string {
	return p.Name
}

// GetTitle returns the product title.
func (p *Product) GetTitle() string {
	return p.Title
}

// GetSubtitle returns the product subtitle.
func (p *Product) GetSubtitle() string {
	return p.Subtitle
}

// GetDatasets returns the datasets in registration order.
func (p *Product) GetDatasets() []server.Dataset {
	return p.datasets
}

// Add registers a dataset. A dataset with the same name is replaced.
func (p *Product) Add(d server.Dataset) {
	for i, existing := range p.datasets {
		if existing.Name() == d.Name() {
			p.datasets[i] = d
			return
		}
	}
	p.datasets = append(p.datasets, d)
}

// Dataset returns the dataset called name.
func (p *Product) Dataset(name string) (server.Dataset, error) {
	for _, d := range p.datasets {
		if d.Name() == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("unknown dataset %q, have %v", name, p.Names())
}

// Names returns the sorted dataset names.
func (p *Product) Names() []string {
	names := make([]string, 0, len(p.datasets))
	for _, d := range p.datasets {
		names = append(names, d.Name())
	}
	sort.Strings(names)
	return names
}

// funcDataset adapts a grid constructor to server.Dataset.
type funcDataset struct {
	name        string
	displayName string
	description string
	newGrid     func(env server.GridEnv) tables.Interactive
}

func (d *funcDataset) Name() string        { return d.name }
func (d *funcDataset) DisplayName() string { return d.displayName }
func (d *funcDataset) Description() string { return d.description }

func (d *funcDataset) NewGrid(env server.GridEnv) tables.Interactive {
	return d.newGrid(env)
}

var _ server.ProductConfig = (*Product)(nil)
