// Package index mirrors a statement store into an in-memory SQLite database.
package index

import (
	"database/sql"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/aidanlsb/resdb/internal/logger"
	"github.com/aidanlsb/resdb/internal/model"
	"github.com/aidanlsb/resdb/internal/query"
	"github.com/aidanlsb/resdb/internal/sqlutil"
	"github.com/aidanlsb/resdb/internal/store"
)

// Database is the SQLite database handle.
type Database struct {
	db *sql.DB
}

// DB returns the underlying sql.DB for advanced queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// CurrentDBVersion is the current database schema version.
const CurrentDBVersion = 1

var registerOnce sync.Once
var registerErr error

// Open opens a private in-memory database. Nothing is written to disk.
func Open() (*Database, error) {
	registerOnce.Do(func() { registerErr = registerFunctions() })
	if registerErr != nil {
		return nil, errors.Wrap(registerErr, "register sqlite functions")
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	// Every connection to ":memory:" gets its own database.
	db.SetMaxOpenConns(1)

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) initialize() error {
	schema := `
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		-- pos is the position in the store and defines result order
		CREATE TABLE IF NOT EXISTS statements (
			pos INTEGER PRIMARY KEY,
			id INTEGER NOT NULL,
			subject TEXT NOT NULL,
			predicate TEXT NOT NULL,
			object TEXT NOT NULL,
			kind INTEGER NOT NULL
		);

		-- attribute lookups: subject + predicate, first by position
		CREATE INDEX IF NOT EXISTS idx_statements_subject ON statements(subject, predicate, pos);
		CREATE INDEX IF NOT EXISTS idx_statements_predicate ON statements(predicate);
		CREATE INDEX IF NOT EXISTS idx_statements_object ON statements(object);
		CREATE INDEX IF NOT EXISTS idx_statements_id ON statements(id);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return errors.Wrap(err, "failed to create schema")
	}
	if _, err := d.db.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES ('version', ?)", CurrentDBVersion,
	); err != nil {
		return errors.Wrap(err, "failed to set version")
	}
	return nil
}

// Load replaces the contents of the database with statements, keeping their
// order.
func (d *Database) Load(statements []model.Statement) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM statements"); err != nil {
		return errors.Wrap(err, "clear statements")
	}

	stmt, err := tx.Prepare(`
		INSERT INTO statements (pos, id, subject, predicate, object, kind)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for pos, st := range statements {
		if _, err := stmt.Exec(pos, st.ID(), st.Subject(), st.Predicate(), st.Object(), int(st.Kind())); err != nil {
			return errors.Wrapf(err, "insert statement %d", st.ID())
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Debugw("index loaded", "statements", len(statements))
	return nil
}

// LoadStore mirrors a snapshot of s.
func (d *Database) LoadStore(s *store.Store) error {
	return d.Load(s.All())
}

// Executor returns a query runner over this database.
func (d *Database) Executor() *query.SQLExecutor {
	return query.NewSQLExecutor(d.db)
}

// EngineVersion returns the version of the embedded SQLite library.
func (d *Database) EngineVersion() (string, error) {
	var v string
	if err := d.db.QueryRow("SELECT sqlite_version()").Scan(&v); err != nil {
		return "", errors.Wrap(err, "failed to read sqlite version")
	}
	return v, nil
}

// Stats returns counts over the mirrored statements.
func (d *Database) Stats() (*IndexStats, error) {
	var stats IndexStats
	counts := []struct {
		dst   *int
		query string
	}{
		{&stats.StatementCount, "SELECT COUNT(*) FROM statements"},
		{&stats.SubjectCount, "SELECT COUNT(DISTINCT subject) FROM statements"},
		{&stats.PredicateCount, "SELECT COUNT(DISTINCT predicate) FROM statements"},
		{&stats.ReificationCount, "SELECT COUNT(*) FROM statements WHERE " + query.SQLFuncRef + "(subject) >= 0"},
	}
	for _, c := range counts {
		n, err := sqlutil.QueryInt(d.db, c.query)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return &stats, nil
}

// IndexStats contains index statistics.
type IndexStats struct {
	StatementCount   int `json:"statements"`
	SubjectCount     int `json:"subjects"`
	PredicateCount   int `json:"predicates"`
	ReificationCount int `json:"reifications"`
}
