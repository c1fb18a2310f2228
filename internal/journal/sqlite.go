package journal

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteJournal appends session events to a SQLite database.
type SQLiteJournal struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteJournal opens (or creates) the journal database and runs migrations.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so inspection tools can read while the session writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	j := &SQLiteJournal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite journal opened: %s", dbPath)
	return j, nil
}

func (j *SQLiteJournal) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetches (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			request_id TEXT,
			resource   TEXT,
			company    TEXT,
			outcome    TEXT,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_ts ON fetches(timestamp)`,

		`CREATE TABLE IF NOT EXISTS mutations (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			request_id TEXT,
			op         TEXT,
			company    TEXT,
			quantity   INTEGER,
			price      REAL,
			amount     INTEGER,
			outcome    TEXT,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mutations_ts ON mutations(timestamp)`,

		`CREATE TABLE IF NOT EXISTS refreshes (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			cause     TEXT,
			views     TEXT,
			failures  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refreshes_ts ON refreshes(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := j.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (j *SQLiteJournal) RecordFetch(evt *FetchEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.Exec(`INSERT INTO fetches
		(timestamp, request_id, resource, company, outcome, error)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.RequestID, evt.Resource, evt.Company, evt.Outcome, evt.Error,
	)
	return err
}

func (j *SQLiteJournal) RecordMutation(evt *MutationEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.Exec(`INSERT INTO mutations
		(timestamp, request_id, op, company, quantity, price, amount, outcome, error)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.RequestID, evt.Op, evt.Company,
		evt.Quantity, evt.Price, evt.Amount, evt.Outcome, evt.Error,
	)
	return err
}

func (j *SQLiteJournal) RecordRefresh(evt *RefreshEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.Exec(`INSERT INTO refreshes
		(timestamp, cause, views, failures)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), evt.Trigger, evt.Views, evt.Failures,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	log.Println("[INFO] closing sqlite journal")
	return j.db.Close()
}
