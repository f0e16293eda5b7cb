package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/brezhoneg/brlex"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Store keeps compiled lexicons in a SQLite database, one run per Compile.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Run is a brlex.Emitter writing one compilation into the database inside
// a single transaction.
type Run struct {
	ID string

	tx       *sql.Tx
	addEntry *sql.Stmt
	addDiag  *sql.Stmt
	seq      int
	err      error
}

// BeginRun starts a new run and returns its emitter.
func (s *Store) BeginRun() (*Run, error) {
	id := uuid.New().String()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO runs (id, started_at) VALUES (?, ?)", id, time.Now()); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("insert run: %w", err)
	}
	addEntry, err := tx.Prepare("INSERT INTO entries (run_id, seq, word, lemma, tag) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("prepare entry insert: %w", err)
	}
	addDiag, err := tx.Prepare("INSERT INTO diagnostics (run_id, kind, word, lemma, tag, detail) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("prepare diagnostic insert: %w", err)
	}

	return &Run{ID: id, tx: tx, addEntry: addEntry, addDiag: addDiag}, nil
}

// Emit stores one lexicon record.
func (r *Run) Emit(rec brlex.OutputRecord) error {
	if r.err != nil {
		return r.err
	}
	r.seq++
	if _, err := r.addEntry.Exec(r.ID, r.seq, rec.Word, rec.Lemma, rec.Tag.String()); err != nil {
		r.err = fmt.Errorf("insert entry: %w", err)
	}
	return r.err
}

// Report stores one diagnostic. Errors surface in Finish.
func (r *Run) Report(d brlex.Diagnostic) {
	if r.err != nil {
		return
	}
	if _, err := r.addDiag.Exec(r.ID, string(d.Kind), d.Word, d.Lemma, d.Tag, d.Detail); err != nil {
		r.err = fmt.Errorf("insert diagnostic: %w", err)
	}
}

// Finish records the run counters and commits. On any earlier error the run
// is rolled back and that error returned.
func (r *Run) Finish(st *brlex.Stats) error {
	if r.err != nil {
		r.tx.Rollback()
		return r.err
	}
	_, err := r.tx.Exec(
		"UPDATE runs SET finished_at = ?, recognized = ?, unrecognized = ?, anomalies = ? WHERE id = ?",
		time.Now(), st.Recognized, st.Unrecognized, st.Anomalies, r.ID,
	)
	if err != nil {
		r.tx.Rollback()
		return fmt.Errorf("update run: %w", err)
	}
	if err := r.tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// Abort rolls the run back.
func (r *Run) Abort() error {
	return r.tx.Rollback()
}

// RunInfo summarises a stored run.
type RunInfo struct {
	ID           string
	StartedAt    time.Time
	Recognized   int
	Unrecognized int
	Anomalies    int
}

// LatestRun returns the most recently started finished run.
func (s *Store) LatestRun() (*RunInfo, error) {
	var ri RunInfo
	err := s.db.QueryRow(
		"SELECT id, started_at, recognized, unrecognized, anomalies FROM runs WHERE finished_at IS NOT NULL ORDER BY started_at DESC LIMIT 1",
	).Scan(&ri.ID, &ri.StartedAt, &ri.Recognized, &ri.Unrecognized, &ri.Anomalies)
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return &ri, nil
}

// Entries returns the records of a run in emission order.
func (s *Store) Entries(runID string) ([]brlex.OutputRecord, error) {
	rows, err := s.db.Query("SELECT word, lemma, tag FROM entries WHERE run_id = ? ORDER BY seq", runID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var out []brlex.OutputRecord
	for rows.Next() {
		var word, lemma, tag string
		if err := rows.Scan(&word, &lemma, &tag); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, brlex.OutputRecord{Word: word, Lemma: lemma, Tag: brlex.ParseTag(tag)})
	}
	return out, rows.Err()
}

// Lookup returns the stored records of a run for word.
func (s *Store) Lookup(runID, word string) ([]brlex.OutputRecord, error) {
	rows, err := s.db.Query("SELECT word, lemma, tag FROM entries WHERE run_id = ? AND word = ? ORDER BY seq", runID, word)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", word, err)
	}
	defer rows.Close()

	var out []brlex.OutputRecord
	for rows.Next() {
		var w, lemma, tag string
		if err := rows.Scan(&w, &lemma, &tag); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, brlex.OutputRecord{Word: w, Lemma: lemma, Tag: brlex.ParseTag(tag)})
	}
	return out, rows.Err()
}

// DiagnosticCount returns the number of stored diagnostics of kind for a run.
func (s *Store) DiagnosticCount(runID string, kind brlex.DiagnosticKind) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM diagnostics WHERE run_id = ? AND kind = ?", runID, string(kind)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count diagnostics: %w", err)
	}
	return n, nil
}
