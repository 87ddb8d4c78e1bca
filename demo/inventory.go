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
	"sync"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/server"
	"github.com/google/tabula/core/tables"
)

// Item is a stock keeping unit as the host stores it.
type Item struct {
	SKU          string
	Name         string
	Category     string
	Price        float64
	Stock        int
	Discontinued bool
}

// itemRow is the display projection of an Item.
type itemRow struct {
	SKU          string
	Name         string
	Category     string
	Price        float64
	Stock        int
	Value        float64
	Status       string
	Discontinued bool
}

// lowStock is the stock level below which an item needs restocking.
const lowStock = 5

func formatItems(items []*Item) []itemRow {
	rows := make([]itemRow, len(items))
	for i, it := range items {
		status := "ok"
		switch {
		case it.Discontinued:
			status = "discontinued"
		case it.Stock < lowStock:
			status = "low"
		}
		rows[i] = itemRow{
			SKU:          it.SKU,
			Name:         it.Name,
			Category:     it.Category,
			Price:        it.Price,
			Stock:        it.Stock,
			Value:        it.Price * float64(it.Stock),
			Status:       status,
			Discontinued: it.Discontinued,
		}
	}
	return rows
}

// Edits are keyed by header, so editable headers name Item fields.
func inventoryColumns() []columns.Column[itemRow] {
	return []columns.Column[itemRow]{
		{Header: "sku", ReadOnly: true, Render: func(r itemRow) any { return r.SKU }},
		{Header: "name", Render: func(r itemRow) any { return r.Name }},
		{Header: "category", ReadOnly: true, Render: func(r itemRow) any { return r.Category }},
		{Header: "price", Render: func(r itemRow) any { return r.Price }, Input: cells.NumberInput{}},
		{Header: "stock", Render: func(r itemRow) any { return r.Stock }, Input: cells.NumberInput{}},
		{
			Header:   "value",
			ReadOnly: true,
			Render:   func(r itemRow) any { return fmt.Sprintf("%.2f", r.Value) },
			// Sort on the number, not the formatted text.
			SortValue: func(r itemRow) any { return r.Value },
		},
		{Header: "status", ReadOnly: true, Render: func(r itemRow) any { return r.Status }},
	}
}

// Inventory is a typed dataset: host records are *Item, cells render a
// projection, and row actions write back to the shared item list.
type Inventory struct {
	mu    sync.Mutex
	items []*Item
}

// NewInventory returns an inventory over items.
func NewInventory(items []*Item) *Inventory {
	return &Inventory{items: items}
}

// Items returns the current items.
func (inv *Inventory) Items() []*Item {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return append([]*Item(nil), inv.items...)
}

// update replaces item with a mutated copy and returns the new list.
// Items are never modified in place, so grids cloning them concurrently
// always see a consistent record.
func (inv *Inventory) update(item *Item, mutate func(*Item)) ([]*Item, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	for i, it := range inv.items {
		if it == item {
			cp := *it
			mutate(&cp)
			next := append([]*Item(nil), inv.items...)
			next[i] = &cp
			inv.items = next
			return append([]*Item(nil), next...), true
		}
	}
	return nil, false
}

// Dataset exposes the inventory to the server.
func (inv *Inventory) Dataset() server.Dataset {
	return &funcDataset{
		name:        "inventory",
		displayName: "Inventory",
		description: "Typed records with a display projection, row actions and tooltips",
		newGrid:     inv.newGrid,
	}
}

func (inv *Inventory) newGrid(env server.GridEnv) tables.Interactive {
	var grid *tables.Table[*Item, itemRow]
	log := env.Logger

	act := func(item *Item, what string, mutate func(*Item)) func() {
		return func() {
			items, ok := inv.update(item, mutate)
			if !ok {
				return
			}
			if log != nil {
				log.WithField("sku", item.SKU).Infof("%s", what)
			}
			grid.SetData(items)
		}
	}

	grid = tables.NewStandalone(tables.Config[*Item, itemRow]{
		Data:         inv.Items(),
		Format:       formatItems,
		FormatHeader: columns.TitleHeader,
		Columns:      inventoryColumns(),
		Actions: func(item *Item) []tables.Action {
			actions := []tables.Action{{
				ID:    "restock",
				Label: "Restock +10",
				Run:   act(item, "Restocked", func(it *Item) { it.Stock += 10 }),
			}}
			if !item.Discontinued {
				actions = append(actions, tables.Action{
					ID:    "discontinue",
					Label: "Discontinue",
					Run:   act(item, "Discontinued", func(it *Item) { it.Discontinued = true }),
				})
			}
			return actions
		},
		Tooltip: func(item *Item) string {
			return fmt.Sprintf("%s · %d in stock", item.Category, item.Stock)
		},
		OnCellChange: func(row, col int, value string) {
			if log != nil {
				log.WithField("table", "inventory").Infof("Row %d column %d set to %s", row, col, value)
			}
		},
		Measurer:     env.Measurer,
		Clock:        env.Clock,
		Logger:       log,
		Limits:       env.Limits,
		OnInvalidate: env.OnInvalidate,
	})
	return grid
}

// DefaultItems returns the demo stock list.
func DefaultItems() []*Item {
	return []*Item{
		{SKU: "KB-101", Name: "Mechanical keyboard", Category: "Peripherals", Price: 129.00, Stock: 14},
		{SKU: "MS-220", Name: "Wireless mouse", Category: "Peripherals", Price: 39.90, Stock: 3},
		{SKU: "MN-270", Name: "27\" monitor", Category: "Displays", Price: 319.00, Stock: 7},
		{SKU: "MN-320", Name: "32\" 4K monitor", Category: "Displays", Price: 549.50, Stock: 2},
		{SKU: "DK-010", Name: "USB-C dock", Category: "Accessories", Price: 189.99, Stock: 0},
		{SKU: "CB-003", Name: "HDMI cable", Category: "Accessories", Price: 9.99, Stock: 120},
		{SKU: "HS-550", Name: "Noise cancelling headset", Category: "Audio", Price: 249.00, Stock: 9},
		{SKU: "WC-900", Name: "1080p webcam", Category: "Video", Price: 79.00, Stock: 4, Discontinued: true},
	}
}
