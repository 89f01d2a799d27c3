// Package sqlutil holds small database/sql helpers.
package sqlutil

import (
	"database/sql"

	"github.com/cockroachdb/errors"
)

// ScanRows scans all rows into a slice using the provided scanner and
// closes rows.
func ScanRows[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan row")
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// QueryInt runs a query returning a single integer, such as a COUNT.
func QueryInt(db *sql.DB, query string, args ...any) (int, error) {
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, errors.Wrapf(err, "query %q", query)
	}
	return n, nil
}
