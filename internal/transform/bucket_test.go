// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"reflect"
	"testing"

	"github.com/pdiddy/sheetfeed/pkg/types"
)

func TestBucket(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "0"},
		{"whitespace", "   ", "0"},
		{"None sentinel", "None", "0"},
		{"nan sentinel", "nan", "0"},
		{"unparseable", "out of stock", "0"},
		{"zero", "0", "0"},
		{"negative", "-3", "0"},
		{"fraction below one truncates to zero", "0.7", "0"},
		{"one", "1", "<10"},
		{"nine", "9", "<10"},
		{"nine point nine truncates", "9.9", "<10"},
		{"ten", "10", "<50"},
		{"forty nine", "49", "<50"},
		{"fifty", "50", ">50"},
		{"large", "1200", ">50"},
		{"decimal comma", "12,5", "<50"},
		{"decimal comma small", "4,0", "<10"},
		{"padded", " 7 ", "<10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bucket(tt.in); got != tt.want {
				t.Errorf("Bucket(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBucketColumn(t *testing.T) {
	table := &types.Table{
		Columns: []string{"SKU", "Stock", "Price"},
		Rows: [][]string{
			{"A-1", "12", "149.99"},
			{"A-2", "0", "89.5"},
			{"A-3", "", "240"},
			{"A-4", "77", "15"},
		},
	}

	// Case-insensitive match on the configured name.
	if !BucketColumn(table, "stock") {
		t.Fatal("BucketColumn should find the Stock column")
	}

	want := [][]string{
		{"A-1", "<50", "149.99"},
		{"A-2", "0", "89.5"},
		{"A-3", "0", "240"},
		{"A-4", ">50", "15"},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Rows = %v, want %v", table.Rows, want)
	}
}

func TestBucketColumnMissing(t *testing.T) {
	table := &types.Table{
		Columns: []string{"SKU", "Price"},
		Rows:    [][]string{{"A-1", "149.99"}},
	}

	if BucketColumn(table, "Stock") {
		t.Error("BucketColumn should report a missing column")
	}
	// The table is untouched.
	if table.Rows[0][1] != "149.99" {
		t.Errorf("Rows = %v", table.Rows)
	}
}
