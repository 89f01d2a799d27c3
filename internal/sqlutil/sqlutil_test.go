package sqlutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE t (n INTEGER, s TEXT)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO t VALUES (1, 'a'), (2, 'b'), (3, 'c')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return db
}

func TestScanRows(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`SELECT n, s FROM t ORDER BY n`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	type row struct {
		n int
		s string
	}
	got, err := ScanRows(rows, func(rows *sql.Rows) (row, error) {
		var r row
		err := rows.Scan(&r.n, &r.s)
		return r, err
	})
	if err != nil {
		t.Fatalf("ScanRows: %v", err)
	}
	if len(got) != 3 || got[0] != (row{1, "a"}) || got[2] != (row{3, "c"}) {
		t.Errorf("ScanRows = %v", got)
	}

	empty, err := db.Query(`SELECT n FROM t WHERE n > 10`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	none, err := ScanRows(empty, func(rows *sql.Rows) (int, error) {
		var n int
		return n, rows.Scan(&n)
	})
	if err != nil || none != nil {
		t.Errorf("empty ScanRows = %v, %v; want nil, nil", none, err)
	}
}

func TestQueryInt(t *testing.T) {
	db := openTestDB(t)

	n, err := QueryInt(db, `SELECT COUNT(*) FROM t WHERE n >= ?`, 2)
	if err != nil {
		t.Fatalf("QueryInt: %v", err)
	}
	if n != 2 {
		t.Errorf("QueryInt = %d, want 2", n)
	}

	if _, err := QueryInt(db, `SELECT COUNT(*) FROM missing`); err == nil {
		t.Error("expected error for missing table")
	}
}
