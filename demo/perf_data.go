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

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/server"
	"github.com/google/tabula/core/tables"
)

// Performance dataset cardinalities. Users, products and categories repeat
// across transactions at decreasing rates.
const (
	PerfNumUsers      = 8_000
	PerfNumProducts   = 500
	PerfNumCategories = 20
)

// Transaction is a value record: the grid stores copies and edits return
// updated structs.
type Transaction struct {
	ID       uint32
	User     uint32 `grid:"user_id"`
	Product  uint32 `grid:"product_id"`
	Category uint32 `grid:"category_id"`
	Amount   uint32
	Status   string
}

// GenerateTransactions creates n deterministic transactions.
func GenerateTransactions(n int) []Transaction {
	statuses := []string{"pending", "completed", "cancelled", "processing"}
	out := make([]Transaction, n)
	for i := range out {
		id := uint32(i)
		category := id % PerfNumCategories
		// Make category 0 more common
		if id%7 == 0 {
			category = 0
		}
		out[i] = Transaction{
			ID:       id,
			User:     id % PerfNumUsers,
			Product:  id % PerfNumProducts,
			Category: category,
			Amount:   10 + id%1000,
			Status:   statuses[id%uint32(len(statuses))],
		}
	}
	return out
}

func transactionColumns() []columns.Column[Transaction] {
	return []columns.Column[Transaction]{
		{Header: "id", ReadOnly: true, Render: func(t Transaction) any { return t.ID }},
		{Header: "user_id", ReadOnly: true, Render: func(t Transaction) any { return t.User }},
		{Header: "product_id", ReadOnly: true, Render: func(t Transaction) any { return t.Product }},
		{Header: "category_id", ReadOnly: true, Render: func(t Transaction) any { return t.Category }},
		{Header: "amount", Render: func(t Transaction) any { return t.Amount }},
		{Header: "status", Render: func(t Transaction) any { return t.Status }},
	}
}

// NewTransactionsDataset serves n generated transactions for scale testing.
func NewTransactionsDataset(n int) server.Dataset {
	data := GenerateTransactions(n)
	return &funcDataset{
		name:        "transactions",
		displayName: "Transactions",
		description: fmt.Sprintf("%d generated transactions for sorting at scale", n),
		newGrid: func(env server.GridEnv) tables.Interactive {
			return tables.NewStandalone(tables.Config[Transaction, Transaction]{
				Data:         data,
				FormatHeader: columns.TitleHeader,
				Columns:      transactionColumns(),
				Measurer:     env.Measurer,
				Clock:        env.Clock,
				Logger:       env.Logger,
				Limits:       env.Limits,
				OnInvalidate: env.OnInvalidate,
			})
		},
	}
}
