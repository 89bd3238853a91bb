package export

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/texrefs/foundation/core/error"
	"github.com/msto63/texrefs/internal/texaux/record"
)

// Run describes one extraction stored in the database
type Run struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	IncludeBib bool      `json:"include_bib"`
	CreatedAt  time.Time `json:"created_at"`
	Records    int       `json:"records"`
}

// NewRun creates a run with a fresh id
func NewRun(source string, includeBib bool) Run {
	return Run{
		ID:         uuid.NewString(),
		Source:     source,
		IncludeBib: includeBib,
		CreatedAt:  time.Now().UTC(),
	}
}

// Store keeps extraction runs and their records in SQLite. Every Save adds
// a run so a database accumulates the history of a document.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// OpenStore opens or creates the database at path
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, dbError(err, "creating database directory").WithDetail("path", path)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	if err != nil {
		return nil, dbError(err, "opening database").WithDetail("path", path)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "initializing schema").WithDetail("path", path)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		include_bib INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		records INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS refs (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		type TEXT,
		tex_label TEXT NOT NULL,
		output_id TEXT,
		anchor TEXT NOT NULL,
		page TEXT,
		context TEXT,
		misc TEXT,
		PRIMARY KEY (run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_refs_tex_label ON refs(tex_label);
	CREATE INDEX IF NOT EXISTS idx_refs_type ON refs(type);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores run and its records in one transaction
func (s *Store) Save(ctx context.Context, run Run, records []record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.Records = len(records)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError(err, "beginning transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, include_bib, created_at, records)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.IncludeBib, run.CreatedAt, run.Records); err != nil {
		return dbError(err, "inserting run").WithDetail("run_id", run.ID)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO refs (run_id, position, type, tex_label, output_id, anchor, page, context, misc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return dbError(err, "preparing statement")
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, run.ID, i,
			rec.Type, rec.TexLabel, rec.OutputID, rec.Anchor, rec.Page,
			nullString(rec.Context), nullString(rec.Misc)); err != nil {
			return dbError(err, "inserting record").WithDetail("label", rec.TexLabel)
		}
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "committing transaction")
	}
	return nil
}

// Runs returns all runs, newest first
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, include_bib, created_at, records
		FROM runs ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, dbError(err, "querying runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Source, &run.IncludeBib, &run.CreatedAt, &run.Records); err != nil {
			return nil, dbError(err, "scanning run")
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "iterating runs")
	}
	return runs, nil
}

// Records returns the records of a run in their original order
func (s *Store) Records(ctx context.Context, runID string) ([]record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT type, tex_label, output_id, anchor, page, context, misc
		FROM refs WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, dbError(err, "querying records").WithDetail("run_id", runID)
	}
	defer rows.Close()

	var records []record.Record
	for rows.Next() {
		var rec record.Record
		var typ, outputID, page, contextText, misc sql.NullString
		if err := rows.Scan(&typ, &rec.TexLabel, &outputID, &rec.Anchor, &page, &contextText, &misc); err != nil {
			return nil, dbError(err, "scanning record").WithDetail("run_id", runID)
		}
		if typ.Valid {
			rec.Type = &typ.String
		}
		rec.Context = contextText.String
		rec.Misc = misc.String
		if outputID.Valid {
			rec.OutputID = &outputID.String
		}
		if page.Valid {
			rec.Page = &page.String
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "iterating records")
	}
	return records, nil
}

// Latest returns the newest run and its records
func (s *Store) Latest(ctx context.Context) (Run, []record.Record, error) {
	runs, err := s.Runs(ctx)
	if err != nil {
		return Run{}, nil, err
	}
	if len(runs) == 0 {
		return Run{}, nil, mdwerror.New("database contains no extraction runs").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("export")
	}
	records, err := s.Records(ctx, runs[0].ID)
	if err != nil {
		return Run{}, nil, err
	}
	return runs[0], records, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func dbError(err error, message string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation("export")
}
