// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

// tableServer serves headerRowRange and dataBodyRange for a single table.
func tableServer(t *testing.T, table string, headerJSON, bodyJSON string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if !strings.Contains(p, "/workbook/tables/"+table+"/") {
			t.Errorf("unexpected request path %q", p)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch {
		case strings.HasSuffix(p, "/headerRowRange"):
			fmt.Fprint(w, headerJSON)
		case strings.HasSuffix(p, "/dataBodyRange"):
			fmt.Fprint(w, bodyJSON)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestReadTable(t *testing.T) {
	header := `{"values": [[" SKU ", "Name", "Stock", "Price"]]}`
	body := `{"values": [
		["A-1", "Angle grinder", 12, 149.99],
		["A-2", " Drill ", 0, 89.5],
		["A-3", "Sander", null, 240]
	]}`
	ts := tableServer(t, "_public_price_table", header, body)
	defer ts.Close()
	defer swapBase(ts.URL)()

	c := &Client{HTTP: ts.Client()}
	table, err := c.ReadTable(context.Background(), "site-1", "item-1", "_public_price_table")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}

	wantColumns := []string{"SKU", "Name", "Stock", "Price"}
	if !reflect.DeepEqual(table.Columns, wantColumns) {
		t.Errorf("Columns = %v, want %v", table.Columns, wantColumns)
	}

	wantRows := [][]string{
		{"A-1", "Angle grinder", "12", "149.99"},
		{"A-2", "Drill", "0", "89.5"},
		{"A-3", "Sander", "", "240"},
	}
	if !reflect.DeepEqual(table.Rows, wantRows) {
		t.Errorf("Rows = %v, want %v", table.Rows, wantRows)
	}
	if table.Name != "_public_price_table" {
		t.Errorf("Name = %q", table.Name)
	}
}

func TestReadTableEmptyBody(t *testing.T) {
	ts := tableServer(t, "t1", `{"values": [["A", "B"]]}`, `{"values": []}`)
	defer ts.Close()
	defer swapBase(ts.URL)()

	c := &Client{HTTP: ts.Client()}
	table, err := c.ReadTable(context.Background(), "site-1", "item-1", "t1")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if table.NumRows() != 0 {
		t.Errorf("NumRows = %d, want 0", table.NumRows())
	}
}

func TestReadTableNoHeader(t *testing.T) {
	ts := tableServer(t, "t1", `{"values": []}`, `{"values": []}`)
	defer ts.Close()
	defer swapBase(ts.URL)()

	c := &Client{HTTP: ts.Client()}
	if _, err := c.ReadTable(context.Background(), "site-1", "item-1", "t1"); err == nil {
		t.Fatal("expected error for missing header row")
	}
}

func TestReadTableRaggedRows(t *testing.T) {
	// Short rows are padded, long rows truncated to the header width.
	body := `{"values": [["A-1"], ["A-2", "x", "extra"]]}`
	ts := tableServer(t, "t1", `{"values": [["SKU", "Name"]]}`, body)
	defer ts.Close()
	defer swapBase(ts.URL)()

	c := &Client{HTTP: ts.Client()}
	table, err := c.ReadTable(context.Background(), "site-1", "item-1", "t1")
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	want := [][]string{{"A-1", ""}, {"A-2", "x"}}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Rows = %v, want %v", table.Rows, want)
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string trimmed", "  hello ", "hello"},
		{"integer number", json.Number("5"), "5"},
		{"decimal number", json.Number("5.5"), "5.5"},
		{"bool", true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cellString(tt.in); got != tt.want {
				t.Errorf("cellString(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
