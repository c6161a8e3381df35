package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/revtrack/internal/log"
	"github.com/theirongolddev/revtrack/internal/model"
)

// StorageKey names the snapshot document in older browser-storage exports.
const StorageKey = "revenue_tracker_data_v1"

// Snapshot is the portable state document.
type Snapshot struct {
	TargetAmount float64         `json:"targetAmount" yaml:"targetAmount"`
	Entries      []SnapshotEntry `json:"entries" yaml:"entries"`
	TargetDate   string          `json:"targetDate,omitempty" yaml:"targetDate,omitempty"`
}

// SnapshotEntry is one entry inside a Snapshot.
type SnapshotEntry struct {
	ID     string  `json:"id" yaml:"id"`
	Date   string  `json:"date" yaml:"date"`
	Amount float64 `json:"amount" yaml:"amount"`
	Note   string  `json:"note" yaml:"note"`
}

// NewSnapshot builds a snapshot from loaded state.
func NewSnapshot(st State) Snapshot {
	snap := Snapshot{
		TargetAmount: st.Goal.TargetAmount,
		Entries:      make([]SnapshotEntry, 0, len(st.Entries)),
		TargetDate:   model.FormatDay(st.Goal.TargetDate),
	}
	for _, e := range st.Entries {
		snap.Entries = append(snap.Entries, SnapshotEntry{
			ID:     e.ID,
			Date:   model.FormatDay(e.Date),
			Amount: e.Amount,
			Note:   e.Note,
		})
	}
	return snap
}

// State converts the snapshot to typed state. A missing target date falls
// back to defaults.TargetDate and a missing entry ID gets a fresh one.
func (snap Snapshot) State(defaults model.GoalParameters) (State, error) {
	if snap.TargetAmount < 0 {
		return State{}, fmt.Errorf("targetAmount %v: %w: target must not be negative", snap.TargetAmount, model.ErrInvalidAmount)
	}
	st := State{Goal: model.GoalParameters{
		TargetAmount: snap.TargetAmount,
		TargetDate:   defaults.TargetDate,
	}}
	if strings.TrimSpace(snap.TargetDate) != "" {
		d, err := model.ParseDay(snap.TargetDate)
		if err != nil {
			return State{}, fmt.Errorf("targetDate: %w", err)
		}
		st.Goal.TargetDate = d
	}

	seen := make(map[string]bool, len(snap.Entries))
	for i, se := range snap.Entries {
		d, err := model.ParseDay(se.Date)
		if err != nil {
			return State{}, fmt.Errorf("entry %d: %w", i+1, err)
		}
		id := se.ID
		if id == "" {
			id = uuid.NewString()
		}
		if seen[id] {
			return State{}, fmt.Errorf("entry %d: duplicate id %s", i+1, id)
		}
		seen[id] = true
		st.Entries = append(st.Entries, model.Entry{
			ID:     id,
			Date:   d,
			Amount: se.Amount,
			Note:   se.Note,
		})
	}
	return st, nil
}

// Snapshot exports the stored state.
func (s *Store) Snapshot(defaults model.GoalParameters) (Snapshot, error) {
	st, err := s.Load(defaults)
	if err != nil {
		return Snapshot{}, err
	}
	return NewSnapshot(st), nil
}

// Replace swaps all stored entries and the goal for the snapshot's contents
// in a single transaction. Nothing changes if any part is invalid.
func (s *Store) Replace(snap Snapshot, defaults model.GoalParameters) error {
	st, err := snap.State(defaults)
	if err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO entries (id, day, amount, note, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, e := range st.Entries {
		if _, err := stmt.Exec(e.ID, model.FormatDay(e.Date), e.Amount, e.Note, now); err != nil {
			return fmt.Errorf("inserting entry %s: %w", e.ID, err)
		}
	}

	if err := saveGoalTx(tx, st.Goal); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.log.Info("snapshot imported", log.FieldOperation, log.OpImport, log.FieldCount, len(st.Entries))
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// ReadSnapshotFile decodes a snapshot file, YAML for .yaml/.yml and JSON
// otherwise.
func ReadSnapshotFile(path string) (Snapshot, error) {
	//nolint:gosec // snapshot path is chosen by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	if isYAML(path) {
		err = yaml.Unmarshal(data, &snap)
	} else {
		err = json.Unmarshal(data, &snap)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("parsing snapshot %s: %w", filepath.Base(path), err)
	}
	return snap, nil
}

// WriteSnapshotFile encodes snap to path, choosing the format like
// ReadSnapshotFile.
func WriteSnapshotFile(path string, snap Snapshot) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(snap)
	} else {
		data, err = json.MarshalIndent(snap, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
