// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pdiddy/sheetfeed/pkg/types"
)

// WriteCSV writes the table with the header row first, RFC 4180 quoting.
func WriteCSV(t *types.Table, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
