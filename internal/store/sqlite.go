package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultSQLiteFile is the SQLite index location relative to the working directory.
const DefaultSQLiteFile = "index.db"

// SQLite implements Backend on a single SQLite table.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite creates or opens a SQLite database at the given path and initializes the schema.
func OpenSQLite(dbPath string) (*SQLite, error) {
	if dbPath == "" {
		dbPath = DefaultSQLiteFile
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := Init(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLite{db: db, path: dbPath}, nil
}

func (s *SQLite) Load() (Index, error) {
	rows, err := s.db.Query("SELECT path, hash, summary, functions, variables, language FROM files")
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	idx := Index{}
	for rows.Next() {
		var (
			path, funcs, vars string
			r                 Record
		)
		if err := rows.Scan(&path, &r.Hash, &r.Summary, &funcs, &vars, &r.Language); err != nil {
			return nil, fmt.Errorf("scan file row: %w", err)
		}
		if err := json.Unmarshal([]byte(funcs), &r.Functions); err != nil {
			return nil, fmt.Errorf("%w: functions for %s: %v", ErrCorruptIndex, path, err)
		}
		if err := json.Unmarshal([]byte(vars), &r.Variables); err != nil {
			return nil, fmt.Errorf("%w: variables for %s: %v", ErrCorruptIndex, path, err)
		}
		idx[path] = r.normalize()
	}
	return idx, rows.Err()
}

// Save replaces the table contents in one transaction.
func (s *SQLite) Save(idx Index) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM files"); err != nil {
		return fmt.Errorf("clear files: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO files (path, hash, summary, functions, variables, language) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for path, r := range idx {
		r = r.normalize()
		funcs, err := json.Marshal(r.Functions)
		if err != nil {
			return fmt.Errorf("marshal functions for %s: %w", path, err)
		}
		vars, err := json.Marshal(r.Variables)
		if err != nil {
			return fmt.Errorf("marshal variables for %s: %w", path, err)
		}
		if _, err := stmt.Exec(path, r.Hash, r.Summary, string(funcs), string(vars), r.Language); err != nil {
			return fmt.Errorf("insert %s: %w", path, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
