// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/sheetfeed/pkg/types"
)

// valuesResponse is the shape of a workbook range response: a grid of
// JSON values, one inner slice per row.
type valuesResponse struct {
	Values [][]any `json:"values"`
}

// ReadTable fetches the named workbook table as a string grid: one call
// for the header row, one for the data body. Every cell is converted to
// a trimmed string; header names are taken from the first header row.
func (c *Client) ReadTable(ctx context.Context, siteID, itemID, tableName string) (*types.Table, error) {
	base := fmt.Sprintf("%s/sites/%s/drive/items/%s/workbook/tables/%s",
		graphBase, siteID, itemID, escape(tableName, ""))

	var header valuesResponse
	if err := c.get(ctx, base+"/headerRowRange", &header); err != nil {
		return nil, fmt.Errorf("reading header row of table %s: %w", tableName, err)
	}
	if len(header.Values) == 0 || len(header.Values[0]) == 0 {
		return nil, fmt.Errorf("table %s has no header row", tableName)
	}

	columns := make([]string, len(header.Values[0]))
	for i, cell := range header.Values[0] {
		columns[i] = cellString(cell)
	}

	var body valuesResponse
	if err := c.get(ctx, base+"/dataBodyRange", &body); err != nil {
		return nil, fmt.Errorf("reading data body of table %s: %w", tableName, err)
	}

	rows := make([][]string, 0, len(body.Values))
	for _, raw := range body.Values {
		row := make([]string, len(columns))
		for i := range columns {
			if i < len(raw) {
				row[i] = cellString(raw[i])
			}
		}
		rows = append(rows, row)
	}

	return &types.Table{Name: tableName, Columns: columns, Rows: rows}, nil
}

// cellString converts a decoded workbook cell to its trimmed string form.
// Numbers arrive as json.Number and keep their literal representation
// ("5" stays "5", "5.5" stays "5.5").
func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(c)
	case json.Number:
		return c.String()
	case bool:
		return strconv.FormatBool(c)
	default:
		return strings.TrimSpace(fmt.Sprint(c))
	}
}
