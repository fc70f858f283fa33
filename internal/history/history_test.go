// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sheetfeed/pkg/types"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger", "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func sampleRun(status string) types.Run {
	return types.Run{
		StartedAt: time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC),
		Source:    "graph",
		TableName: "_public_price_table",
		Rows:      120,
		Formats:   "xml,csv,json",
		OutDir:    "docs",
		Status:    status,
	}
}

func TestRecordAndList(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	id1, err := s.Record(ctx, sampleRun(types.RunOK))
	require.NoError(t, err)

	failed := sampleRun(types.RunError)
	failed.Error = "graph GET failed with HTTP 403"
	failed.Rows = 0
	id2, err := s.Record(ctx, failed)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	runs, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, id2, runs[0].ID)
	assert.Equal(t, types.RunError, runs[0].Status)
	assert.Equal(t, "graph GET failed with HTTP 403", runs[0].Error)

	assert.Equal(t, types.RunOK, runs[1].Status)
	assert.Equal(t, 120, runs[1].Rows)
	assert.Equal(t, "_public_price_table", runs[1].TableName)
	assert.True(t, runs[1].StartedAt.Equal(sampleRun(types.RunOK).StartedAt))
}

func TestListLimit(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Record(ctx, sampleRun(types.RunOK))
		require.NoError(t, err)
	}

	runs, err := s.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestListEmpty(t *testing.T) {
	s, _ := openStore(t)

	runs, err := s.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), sampleRun(types.RunOK))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	runs, err := s2.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
