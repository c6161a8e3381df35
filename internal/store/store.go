// Package store persists entries and the goal in a local SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/theirongolddev/revtrack/internal/log"
	"github.com/theirongolddev/revtrack/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no entry matches an ID or prefix.
var ErrNotFound = errors.New("entry not found")

// ErrAmbiguous is returned when an ID prefix matches more than one entry.
var ErrAmbiguous = errors.New("ambiguous entry id")

const (
	keyTargetAmount = "target_amount"
	keyTargetDate   = "target_date"
)

// Store provides SQLite-backed entry and goal storage.
type Store struct {
	db   *sql.DB
	path string
	log  *log.Logger
}

// Open opens or creates the database at the given path and applies
// pending migrations.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	return &Store{
		db:   db,
		path: dbPath,
		log:  log.Discard().WithComponent(log.ComponentStore),
	}, nil
}

// SetLogger replaces the store's logger.
func (s *Store) SetLogger(l *log.Logger) {
	s.log = l.WithComponent(log.ComponentStore)
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddEntry inserts e. Its ID must be unique.
func (s *Store) AddEntry(e model.Entry) error {
	if e.ID == "" {
		return errors.New("entry has no id")
	}
	_, err := s.db.Exec(
		`INSERT INTO entries (id, day, amount, note, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, model.FormatDay(e.Date), e.Amount, e.Note, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	s.log.Debug("entry added", log.FieldOperation, log.OpAdd, log.FieldEntryID, e.ID, log.FieldAmount, e.Amount)
	return nil
}

// AddEntries inserts all entries in one transaction. Nothing is stored if
// any insert fails.
func (s *Store) AddEntries(entries []model.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO entries (id, day, amount, note, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, e := range entries {
		if e.ID == "" {
			return errors.New("entry has no id")
		}
		if _, err := stmt.Exec(e.ID, model.FormatDay(e.Date), e.Amount, e.Note, now); err != nil {
			return fmt.Errorf("inserting entry %s: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.log.Info("entries imported", log.FieldOperation, log.OpImport, log.FieldCount, len(entries))
	return nil
}

// DeleteEntry removes the entry with the exact id.
func (s *Store) DeleteEntry(id string) error {
	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.log.Debug("entry deleted", log.FieldOperation, log.OpDelete, log.FieldEntryID, id)
	return nil
}

// ResolveID expands an ID prefix to the single full ID it matches. An exact
// ID wins even when it is also a prefix of other IDs.
func (s *Store) ResolveID(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	var exact string
	err := s.db.QueryRow(`SELECT id FROM entries WHERE id = ?`, prefix).Scan(&exact)
	switch {
	case err == nil:
		return exact, nil
	case !errors.Is(err, sql.ErrNoRows):
		return "", err
	}

	rows, err := s.db.Query(`SELECT id FROM entries WHERE substr(id, 1, ?) = ? LIMIT 2`, len(prefix), prefix)
	if err != nil {
		return "", err
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguous, prefix)
	}
}

// Entries returns all entries in insertion order.
func (s *Store) Entries() ([]model.Entry, error) {
	rows, err := s.db.Query(`SELECT id, day, amount, note FROM entries ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// Entry returns the entry with the exact id.
func (s *Store) Entry(id string) (model.Entry, error) {
	row := s.db.QueryRow(`SELECT id, day, amount, note FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, err
}

// EntryCount returns the number of stored entries.
func (s *Store) EntryCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (model.Entry, error) {
	var (
		e   model.Entry
		day string
	)
	if err := sc.Scan(&e.ID, &day, &e.Amount, &e.Note); err != nil {
		return model.Entry{}, err
	}
	d, err := model.ParseDay(day)
	if err != nil {
		return model.Entry{}, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	e.Date = d
	return e, nil
}

// Goal returns the saved goal. Settings never saved come from defaults.
func (s *Store) Goal(defaults model.GoalParameters) (model.GoalParameters, error) {
	goal := defaults

	rows, err := s.db.Query(`SELECT key, value FROM settings WHERE key IN (?, ?)`, keyTargetAmount, keyTargetDate)
	if err != nil {
		return goal, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return goal, err
		}
		switch key {
		case keyTargetAmount:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return goal, fmt.Errorf("setting %s: %w", key, err)
			}
			goal.TargetAmount = v
		case keyTargetDate:
			d, err := model.ParseDay(value)
			if err != nil {
				return goal, fmt.Errorf("setting %s: %w", key, err)
			}
			goal.TargetDate = d
		}
	}
	return goal, rows.Err()
}

// SaveGoal stores the target amount and date.
func (s *Store) SaveGoal(goal model.GoalParameters) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := saveGoalTx(tx, goal); err != nil {
		return err
	}
	return tx.Commit()
}

func saveGoalTx(tx *sql.Tx, goal model.GoalParameters) error {
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	if _, err := stmt.Exec(keyTargetAmount, strconv.FormatFloat(goal.TargetAmount, 'f', -1, 64)); err != nil {
		return fmt.Errorf("saving %s: %w", keyTargetAmount, err)
	}
	if _, err := stmt.Exec(keyTargetDate, model.FormatDay(goal.TargetDate)); err != nil {
		return fmt.Errorf("saving %s: %w", keyTargetDate, err)
	}
	return nil
}

// State is everything a report needs, loaded in one call.
type State struct {
	Entries []model.Entry
	Goal    model.GoalParameters
}

// Load reads all entries and the goal.
func (s *Store) Load(defaults model.GoalParameters) (State, error) {
	entries, err := s.Entries()
	if err != nil {
		return State{}, fmt.Errorf("loading entries: %w", err)
	}
	goal, err := s.Goal(defaults)
	if err != nil {
		return State{}, fmt.Errorf("loading goal: %w", err)
	}
	return State{Entries: entries, Goal: goal}, nil
}
