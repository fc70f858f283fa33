// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared across pipeline stages.
package types

import "strings"

// Table is an in-memory worksheet table: a header row plus data rows, every
// cell already normalized to a trimmed string. Both the Graph reader and the
// local workbook reader produce this shape.
type Table struct {
	// Name is the workbook table name the data was read from.
	Name string

	// Columns holds the header row, in worksheet order.
	Columns []string

	// Rows holds the data rows. Every row has len(Columns) cells.
	Rows [][]string
}

// ColumnIndex returns the index of the first column whose name matches name
// case-insensitively, or -1 if there is no such column.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// AddColumn appends a column with the given value in every row. If a column
// with that name already exists (case-insensitive) its cells are overwritten
// instead.
func (t *Table) AddColumn(name, value string) {
	if i := t.ColumnIndex(name); i >= 0 {
		for r := range t.Rows {
			t.Rows[r][i] = value
		}
		return
	}

	t.Columns = append(t.Columns, name)
	for r := range t.Rows {
		t.Rows[r] = append(t.Rows[r], value)
	}
}
