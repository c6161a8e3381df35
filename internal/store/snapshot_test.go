package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/revtrack/internal/model"
)

const browserDoc = `{
  "targetAmount": 50000,
  "entries": [
    {"id": "e1", "date": "2025-01-05", "amount": 100, "note": "first sale"},
    {"id": "e2", "date": "2025-01-15", "amount": -30, "note": ""}
  ],
  "targetDate": "2025-12-31"
}`

func TestReadBrowserDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), StorageKey+".json")
	require.NoError(t, os.WriteFile(path, []byte(browserDoc), 0o600))

	snap, err := ReadSnapshotFile(path)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, snap.TargetAmount)
	assert.Equal(t, "2025-12-31", snap.TargetDate)
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, SnapshotEntry{ID: "e2", Date: "2025-01-15", Amount: -30}, snap.Entries[1])
}

func TestSnapshotStateDefaults(t *testing.T) {
	snap := Snapshot{
		TargetAmount: 1,
		Entries:      []SnapshotEntry{{Date: "2025-02-02", Amount: 5}},
	}
	st, err := snap.State(testDefaults)
	require.NoError(t, err)
	assert.Equal(t, testDefaults.TargetDate, st.Goal.TargetDate)
	require.Len(t, st.Entries, 1)
	assert.Len(t, st.Entries[0].ID, 36)
	assert.Equal(t, model.Day(2025, time.February, 2), st.Entries[0].Date)
}

func TestSnapshotStateRejectsBadInput(t *testing.T) {
	_, err := Snapshot{TargetDate: "tomorrow"}.State(testDefaults)
	require.ErrorIs(t, err, model.ErrInvalidDate)

	_, err = Snapshot{Entries: []SnapshotEntry{{ID: "x", Date: "2025-13-01"}}}.State(testDefaults)
	require.ErrorIs(t, err, model.ErrInvalidDate)

	_, err = Snapshot{Entries: []SnapshotEntry{
		{ID: "x", Date: "2025-01-01"},
		{ID: "x", Date: "2025-01-02"},
	}}.State(testDefaults)
	require.ErrorContains(t, err, "duplicate id")

	_, err = Snapshot{TargetAmount: -1, TargetDate: "2025-12-31"}.State(testDefaults)
	require.ErrorIs(t, err, model.ErrInvalidAmount)
}

func TestReplaceRejectsNegativeTarget(t *testing.T) {
	s := openTest(t)
	require.NoError(t, s.SaveGoal(model.GoalParameters{TargetAmount: 500, TargetDate: model.Day(2025, time.June, 1)}))

	err := s.Replace(Snapshot{TargetAmount: -500, Entries: []SnapshotEntry{{ID: "x", Date: "2025-01-01", Amount: 1}}}, testDefaults)
	require.ErrorIs(t, err, model.ErrInvalidAmount)

	goal, err := s.Goal(testDefaults)
	require.NoError(t, err)
	assert.Equal(t, 500.0, goal.TargetAmount)
	n, err := s.EntryCount()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReplaceAndExport(t *testing.T) {
	s := openTest(t)
	require.NoError(t, s.AddEntry(mkEntry("old", 2024, time.December, 1, 999, "")))

	snap := Snapshot{
		TargetAmount: 50000,
		TargetDate:   "2025-12-31",
		Entries: []SnapshotEntry{
			{ID: "e1", Date: "2025-01-05", Amount: 100, Note: "first sale"},
			{ID: "e2", Date: "2025-01-15", Amount: -30},
		},
	}
	require.NoError(t, s.Replace(snap, testDefaults))

	got, err := s.Snapshot(testDefaults)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestReplaceInvalidLeavesStoreUntouched(t *testing.T) {
	s := openTest(t)
	require.NoError(t, s.AddEntry(mkEntry("keep", 2024, time.December, 1, 1, "")))

	err := s.Replace(Snapshot{Entries: []SnapshotEntry{{ID: "x", Date: "bad"}}}, testDefaults)
	require.Error(t, err)

	n, err := s.EntryCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSnapshotFileFormats(t *testing.T) {
	dir := t.TempDir()
	snap := Snapshot{
		TargetAmount: 1234.5,
		TargetDate:   "2026-12-30",
		Entries:      []SnapshotEntry{{ID: "a", Date: "2025-01-01", Amount: 10, Note: "x: y"}},
	}

	for _, name := range []string{"state.json", "state.yaml", "state.YML"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteSnapshotFile(path, snap))
			got, err := ReadSnapshotFile(path)
			require.NoError(t, err)
			assert.Equal(t, snap, got)
		})
	}

	data, err := os.ReadFile(filepath.Join(dir, "state.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "targetAmount: 1234.5")
}

func TestReadSnapshotFileErrors(t *testing.T) {
	_, err := ReadSnapshotFile(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorContains(t, err, "reading snapshot")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = ReadSnapshotFile(path)
	require.ErrorContains(t, err, "parsing snapshot")
}
