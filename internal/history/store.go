package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"idverify/internal/config"
	"idverify/internal/consistency"
	"idverify/internal/document"
)

// Run is one persisted check.
type Run struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Records   []document.Record   `json:"records"`
	Summary   consistency.Summary `json:"summary"`
}

// Entry is the listing view of a run.
type Entry struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	TotalRecords  int       `json:"total_records"`
	MismatchCount int       `json:"mismatch_count"`
	Sources       []string  `json:"sources"`
}

// Store manages run persistence backed by SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open initializes or connects to the history database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.HistoryPath())
}

// OpenPath opens the database at dbPath.
func OpenPath(dbPath string) (*Store, error) {
	lock := flock.New(dbPath + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquire history lock: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, now: time.Now}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save records a check run and returns it with its assigned ID.
func (s *Store) Save(ctx context.Context, records []document.Record, summary consistency.Summary) (*Run, error) {
	if records == nil {
		records = []document.Record{}
	}
	if summary.Mismatches == nil {
		summary.Mismatches = []consistency.Mismatch{}
	}
	run := &Run{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Records:   records,
		Summary:   summary,
	}

	recordsJSON, err := json.Marshal(run.Records)
	if err != nil {
		return nil, fmt.Errorf("marshal records: %w", err)
	}
	summaryJSON, err := json.Marshal(run.Summary)
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, created_at, total_records, mismatch_count, sources, records_json, summary_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.Format(timestampLayout),
		summary.TotalRecords,
		len(summary.Mismatches),
		nullableString(joinSources(records)),
		string(recordsJSON),
		string(summaryJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// Get fetches a run by ID. A unique ID prefix is also accepted.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, records_json, summary_json FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		id, escapeLike(id)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		if run.ID == id {
			return run, nil
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	switch len(runs) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return runs[0], nil
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

// List returns the most recent runs, newest first. A non-positive limit
// returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, created_at, total_records, mismatch_count, sources FROM runs ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			entry      Entry
			createdRaw string
			sources    sql.NullString
		)
		if err := rows.Scan(&entry.ID, &createdRaw, &entry.TotalRecords, &entry.MismatchCount, &sources); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		entry.CreatedAt = parseTimeString(createdRaw)
		entry.Sources = splitSources(sources.String)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return entries, nil
}

// Delete removes a run by exact ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run         Run
		createdRaw  string
		recordsJSON string
		summaryJSON string
	)
	if err := scanner.Scan(&run.ID, &createdRaw, &recordsJSON, &summaryJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	run.CreatedAt = parseTimeString(createdRaw)
	if err := json.Unmarshal([]byte(recordsJSON), &run.Records); err != nil {
		return nil, fmt.Errorf("decode records for run %s: %w", run.ID, err)
	}
	if err := json.Unmarshal([]byte(summaryJSON), &run.Summary); err != nil {
		return nil, fmt.Errorf("decode summary for run %s: %w", run.ID, err)
	}
	if run.Summary.Mismatches == nil {
		run.Summary.Mismatches = []consistency.Mismatch{}
	}
	return &run, nil
}
