// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// swapBase points the package at a test server and returns a restore func.
var swapBase = SwapBaseForTest

func TestResolveSite(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sites/contoso.sharepoint.com:/sites/Common" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		fmt.Fprint(w, `{"id": "contoso.sharepoint.com,abc-123,def-456", "displayName": "Common"}`)
	}))
	defer ts.Close()
	defer swapBase(ts.URL)()

	c := &Client{HTTP: ts.Client(), UserAgent: "sheetfeed/test"}
	id, err := c.ResolveSite(context.Background(), "contoso.sharepoint.com", "/sites/Common")
	if err != nil {
		t.Fatalf("ResolveSite: %v", err)
	}
	if id != "contoso.sharepoint.com,abc-123,def-456" {
		t.Errorf("id = %q", id)
	}
}

func TestResolveSiteHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"code": "accessDenied", "message": "no Sites.Read.All"}}`)
	}))
	defer ts.Close()
	defer swapBase(ts.URL)()

	c := &Client{HTTP: ts.Client()}
	_, err := c.ResolveSite(context.Background(), "contoso.sharepoint.com", "/sites/Common")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "HTTP 403") {
		t.Errorf("error should carry the status: %v", err)
	}
	if !strings.Contains(err.Error(), "accessDenied") {
		t.Errorf("error should carry the response body: %v", err)
	}
}

func TestResolveSiteMissingID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"displayName": "Common"}`)
	}))
	defer ts.Close()
	defer swapBase(ts.URL)()

	c := &Client{HTTP: ts.Client()}
	if _, err := c.ResolveSite(context.Background(), "contoso.sharepoint.com", "/sites/Common"); err == nil {
		t.Fatal("expected error for response without an id")
	}
}

func TestAPIErrorTruncatesBody(t *testing.T) {
	long := strings.Repeat("x", 2000)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, long)
	}))
	defer ts.Close()
	defer swapBase(ts.URL)()

	c := &Client{HTTP: ts.Client()}
	_, err := c.ResolveSite(context.Background(), "h", "/p")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Error()) > 600 {
		t.Errorf("error message should be truncated, got %d bytes", len(err.Error()))
	}
}
