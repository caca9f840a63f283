// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giellalt/gramtest/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.HistoryConfig{Path: filepath.Join(t.TempDir(), "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(types.HistoryConfig{})
	require.Error(t, err)
}

func TestRecordAndRecent(t *testing.T) {
	s := openStore(t)

	when := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	id, err := s.Record(Run{
		When:     when,
		TestFile: "sme-FAIL.yaml",
		Variant:  "smegram",
		Engine:   "checker",
		Counts:   types.OutcomeCounts{TP: 5, FN2: 2},
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	runs, err := s.Recent("", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "sme-FAIL.yaml", runs[0].TestFile)
	assert.Equal(t, "smegram", runs[0].Variant)
	assert.Equal(t, types.OutcomeCounts{TP: 5, FN2: 2}, runs[0].Counts)
	assert.True(t, when.Equal(runs[0].When))
}

func TestRecentFiltersAndOrders(t *testing.T) {
	s := openStore(t)

	for i, file := range []string{"a.yaml", "b.yaml", "a.yaml"} {
		_, err := s.Record(Run{
			TestFile: file,
			Counts:   types.OutcomeCounts{TP: i},
		})
		require.NoError(t, err)
	}

	runs, err := s.Recent("a.yaml", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// Newest first.
	assert.Equal(t, 2, runs[0].Counts.TP)
	assert.Equal(t, 0, runs[1].Counts.TP)

	runs, err = s.Recent("", 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRecordFillsTimestamp(t *testing.T) {
	s := openStore(t)

	_, err := s.Record(Run{TestFile: "x.yaml"})
	require.NoError(t, err)

	runs, err := s.Recent("x.yaml", 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.WithinDuration(t, time.Now(), runs[0].When, time.Minute)
}
