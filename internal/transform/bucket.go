// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform rewrites table columns for publication: stock counts
// become coarse string buckets and every row is stamped with the run time.
package transform

import (
	"strconv"
	"strings"

	"github.com/pdiddy/sheetfeed/pkg/types"
)

// Bucket maps raw stock text to one of the published buckets: "0", "<10",
// "<50", ">50". Decimal commas are accepted; empty cells, "None", "nan"
// and unparseable values count as zero stock.
func Bucket(raw string) string {
	s := strings.TrimSpace(raw)

	n := 0
	if s != "" && s != "None" && s != "nan" {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
			n = int(f)
		}
	}

	switch {
	case n <= 0:
		return "0"
	case n < 10:
		return "<10"
	case n < 50:
		return "<50"
	default:
		return ">50"
	}
}

// BucketColumn rewrites the named column (matched case-insensitively) in
// place with bucketed values. It reports whether the column was found;
// callers treat a missing column as a warning, not an error.
func BucketColumn(t *types.Table, column string) bool {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return false
	}

	for r := range t.Rows {
		t.Rows[r][idx] = Bucket(t.Rows[r][idx])
	}
	return true
}
