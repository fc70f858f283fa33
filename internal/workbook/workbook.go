// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workbook reads tables from local .xlsx files, so an export can
// run against a downloaded workbook without Graph credentials. It yields
// the same in-memory table shape as the Graph reader.
package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/sheetfeed/pkg/types"
)

// ReadTable opens the workbook at path and returns the named table
// (matched case-insensitively across all sheets) as a string grid.
func ReadTable(path, tableName string) (*types.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		tables, err := f.GetTables(sheet)
		if err != nil {
			return nil, fmt.Errorf("listing tables on sheet %s: %w", sheet, err)
		}
		for _, tbl := range tables {
			if strings.EqualFold(tbl.Name, tableName) {
				return readRange(f, sheet, tbl.Range, tableName)
			}
		}
	}

	return nil, fmt.Errorf("table %s not found in %s", tableName, path)
}

// readRange extracts a table range (header row plus body) from a sheet.
func readRange(f *excelize.File, sheet, ref, tableName string) (*types.Table, error) {
	parts := strings.Split(ref, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("table %s has malformed range %q", tableName, ref)
	}

	left, top, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil, fmt.Errorf("parsing range %q: %w", ref, err)
	}
	right, bottom, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil, fmt.Errorf("parsing range %q: %w", ref, err)
	}
	if right < left || bottom < top {
		return nil, fmt.Errorf("table %s has inverted range %q", tableName, ref)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}

	// GetRows trims trailing empty cells, so rows are sliced defensively.
	cell := func(row, col int) string {
		if row-1 >= len(rows) {
			return ""
		}
		r := rows[row-1]
		if col-1 >= len(r) {
			return ""
		}
		return strings.TrimSpace(r[col-1])
	}

	width := right - left + 1
	columns := make([]string, width)
	for c := 0; c < width; c++ {
		columns[c] = cell(top, left+c)
	}

	var body [][]string
	for r := top + 1; r <= bottom; r++ {
		row := make([]string, width)
		for c := 0; c < width; c++ {
			row[c] = cell(r, left+c)
		}
		body = append(body, row)
	}

	return &types.Table{Name: tableName, Columns: columns, Rows: body}, nil
}
