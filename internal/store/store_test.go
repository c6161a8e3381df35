package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/revtrack/internal/model"
)

var testDefaults = model.GoalParameters{
	TargetAmount: 100000,
	TargetDate:   model.Day(2026, time.December, 30),
}

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "revtrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mkEntry(id string, y int, m time.Month, d int, amount float64, note string) model.Entry {
	return model.Entry{ID: id, Date: model.Day(y, m, d), Amount: amount, Note: note}
}

func TestOpenAppliesMigrations(t *testing.T) {
	s := openTest(t)

	v, dirty, err := SchemaVersion(s.Path())
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
	assert.False(t, dirty)

	n, err := s.EntryCount()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revtrack.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.AddEntry(mkEntry("a", 2025, time.January, 2, 100, "first")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	entries, err := s.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "first", entries[0].Note)
}

func TestAddAndListInInsertionOrder(t *testing.T) {
	s := openTest(t)
	want := []model.Entry{
		mkEntry("c", 2025, time.March, 1, 50, ""),
		mkEntry("a", 2025, time.January, 1, 100, "invoice"),
		mkEntry("b", 2025, time.February, 1, -20.5, "refund"),
	}
	for _, e := range want {
		require.NoError(t, s.AddEntry(e))
	}

	got, err := s.Entries()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	n, err := s.EntryCount()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	e, err := s.Entry("b")
	require.NoError(t, err)
	assert.Equal(t, want[2], e)
}

func TestAddDuplicateID(t *testing.T) {
	s := openTest(t)
	require.NoError(t, s.AddEntry(mkEntry("a", 2025, time.January, 1, 1, "")))
	require.Error(t, s.AddEntry(mkEntry("a", 2025, time.January, 2, 2, "")))
	require.Error(t, s.AddEntry(model.Entry{Amount: 1}))
}

func TestAddEntriesIsAtomic(t *testing.T) {
	s := openTest(t)
	require.NoError(t, s.AddEntry(mkEntry("a", 2025, time.January, 1, 1, "")))

	err := s.AddEntries([]model.Entry{
		mkEntry("b", 2025, time.January, 2, 2, ""),
		mkEntry("a", 2025, time.January, 3, 3, ""),
	})
	require.Error(t, err)

	n, err := s.EntryCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n, "failed batch must not leave partial rows")

	require.NoError(t, s.AddEntries([]model.Entry{
		mkEntry("b", 2025, time.January, 2, 2, ""),
		mkEntry("c", 2025, time.January, 3, -3, "refund"),
	}))
	require.NoError(t, s.AddEntries(nil))

	got, err := s.Entries()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[2].ID)
}

func TestDeleteEntry(t *testing.T) {
	s := openTest(t)
	require.NoError(t, s.AddEntry(mkEntry("a", 2025, time.January, 1, 1, "")))

	require.NoError(t, s.DeleteEntry("a"))
	require.ErrorIs(t, s.DeleteEntry("a"), ErrNotFound)

	_, err := s.Entry("a")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveID(t *testing.T) {
	s := openTest(t)
	require.NoError(t, s.AddEntry(mkEntry("abc123", 2025, time.January, 1, 1, "")))
	require.NoError(t, s.AddEntry(mkEntry("abd456", 2025, time.January, 1, 1, "")))

	id, err := s.ResolveID("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	id, err = s.ResolveID("abd456")
	require.NoError(t, err)
	assert.Equal(t, "abd456", id)

	_, err = s.ResolveID("ab")
	require.ErrorIs(t, err, ErrAmbiguous)

	_, err = s.ResolveID("zz")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.ResolveID("")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveIDPrefersExactMatch(t *testing.T) {
	s := openTest(t)
	require.NoError(t, s.AddEntry(mkEntry("a", 2025, time.January, 1, 1, "")))
	require.NoError(t, s.AddEntry(mkEntry("ab", 2025, time.January, 2, 2, "")))

	id, err := s.ResolveID("a")
	require.NoError(t, err)
	assert.Equal(t, "a", id)

	id, err = s.ResolveID("ab")
	require.NoError(t, err)
	assert.Equal(t, "ab", id)

	require.NoError(t, s.DeleteEntry(id))
	id, err = s.ResolveID("a")
	require.NoError(t, err)
	assert.Equal(t, "a", id)
}

func TestGoalDefaultsAndSave(t *testing.T) {
	s := openTest(t)

	goal, err := s.Goal(testDefaults)
	require.NoError(t, err)
	assert.Equal(t, testDefaults, goal)

	saved := model.GoalParameters{TargetAmount: 250000.5, TargetDate: model.Day(2027, time.June, 1)}
	require.NoError(t, s.SaveGoal(saved))

	goal, err = s.Goal(testDefaults)
	require.NoError(t, err)
	assert.Equal(t, saved, goal)
}

func TestLoadState(t *testing.T) {
	s := openTest(t)
	require.NoError(t, s.AddEntry(mkEntry("a", 2025, time.January, 1, 10, "")))

	st, err := s.Load(testDefaults)
	require.NoError(t, err)
	assert.Len(t, st.Entries, 1)
	assert.Equal(t, testDefaults, st.Goal)
}
