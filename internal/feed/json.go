// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pdiddy/sheetfeed/pkg/types"
)

// WriteJSON writes the table as an array of objects, one per row. Objects
// are emitted by hand rather than through a map so keys keep the column
// order and repeated exports stay diff-friendly.
func WriteJSON(t *types.Table, w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("[\n")

	for r, row := range t.Rows {
		buf.WriteString("  {")
		for i, col := range t.Columns {
			if i > 0 {
				buf.WriteString(", ")
			}
			key, _ := json.Marshal(col)
			val, _ := json.Marshal(row[i])
			buf.Write(key)
			buf.WriteString(": ")
			buf.Write(val)
		}
		buf.WriteString("}")
		if r < len(t.Rows)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}

	buf.WriteString("]\n")
	_, err := w.Write(buf.Bytes())
	return err
}
