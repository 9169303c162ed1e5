package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/kpango/glg"
)

// FileName is the on-disk store filename within the configured store
// directory (§6.3).
const FileName = "dcli.sqlite3"

// Store owns the single logical connection to the activity database.
// Multi-row writes go through BeginTx/Commit/Rollback, while single-statement
// writes (subscription, sync timestamp, queue marks) execute directly on DB;
// the connection pool is capped
// at one open connection to respect SQLite's single-writer model (§4.3).
type Store struct {
	DB *sql.DB
}

// Open creates parent directories as needed, opens (or creates) the store
// file at dir/dcli.sqlite3 under WAL journaling, and rebuilds the schema if
// the recorded version doesn't match DBSchemaVersion.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, newError(KindStorage, "failed creating store directory", err)
	}

	path := filepath.Join(dir, FileName)
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, newError(KindStorage, "failed opening store", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{DB: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) ensureSchema() error {
	version, err := s.recordedVersion()
	if err != nil {
		return err
	}

	if version == DBSchemaVersion {
		return nil
	}

	glg.Warnf("store schema version mismatch (have %d, want %d): rebuilding", version, DBSchemaVersion)

	for _, stmt := range dropAllTablesDDL {
		if _, err := s.DB.Exec(stmt); err != nil {
			return newError(KindSchema, "failed dropping existing tables", err)
		}
	}

	if _, err := s.DB.Exec(schemaDDL); err != nil {
		return newError(KindSchema, "failed applying schema DDL", err)
	}

	return nil
}

// recordedVersion returns the max value in the version table, or -1 if the
// table is absent or empty.
func (s *Store) recordedVersion() (int, error) {
	row := s.DB.QueryRow(`SELECT COALESCE(MAX(version), -1) FROM version`)

	var version int
	if err := row.Scan(&version); err != nil {
		// version table doesn't exist yet on a brand new file.
		return -1, nil
	}

	return version, nil
}

// BeginTx opens a new transaction for one logical write (a discovery family,
// a single PGCR insert). Callers must Commit or Rollback.
func (s *Store) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, newError(KindStorage, "failed beginning transaction", err)
	}
	return tx, nil
}

// Commit wraps tx.Commit with the package error taxonomy.
func Commit(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return newError(KindStorage, "failed committing transaction", err)
	}
	return nil
}

// Rollback wraps tx.Rollback, swallowing sql.ErrTxDone since callers may
// call it defensively after a successful Commit.
func Rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		glg.Warnf("rollback failed: %s", err.Error())
	}
}

// Optimize issues PRAGMA OPTIMIZE, run once after a fetch-phase chunk run
// touched the store (§4.4.3).
func (s *Store) Optimize() error {
	if _, err := s.DB.Exec(`PRAGMA OPTIMIZE`); err != nil {
		return newError(KindStorage, "failed running PRAGMA OPTIMIZE", err)
	}
	return nil
}
