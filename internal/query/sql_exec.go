package query

import (
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/aidanlsb/resdb/internal/logger"
	"github.com/aidanlsb/resdb/internal/model"
	"github.com/aidanlsb/resdb/internal/sqlutil"
)

// SQLExecutor runs queries against a SQLite mirror of a store. The database
// must hold a StatementsTable and the SQLFunc* scalar functions; see
// index.Open.
type SQLExecutor struct {
	db *sql.DB
}

// NewSQLExecutor creates an executor over db.
func NewSQLExecutor(db *sql.DB) *SQLExecutor {
	return &SQLExecutor{db: db}
}

type sqlRow struct {
	stmt  model.Statement
	value Value
}

// Run validates q, compiles it to a single statement and scans the rows.
func (e *SQLExecutor) Run(q *Query) (*Result, error) {
	if err := Validate(q); err != nil {
		return nil, err
	}

	start := time.Now()
	sqlStr, args := buildSelectSQL(q)
	rows, err := e.db.Query(sqlStr, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "query failed (SQL: %s)", compactSQL(sqlStr))
	}

	projType := TypeNone
	if q.Projection != nil {
		projType = q.Projection.Type()
	}
	scanned, err := sqlutil.ScanRows(rows, func(rows *sql.Rows) (sqlRow, error) {
		var (
			id                         int
			subject, predicate, object string
			kind                       int
			raw                        any
		)
		if err := rows.Scan(&id, &subject, &predicate, &object, &kind, &raw); err != nil {
			return sqlRow{}, err
		}
		st := model.NewStatement(subject, predicate, object, model.Kind(kind))
		st.SetID(id)
		return sqlRow{stmt: st, value: valueFromSQL(projType, raw)}, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "scan query results")
	}

	res := &Result{Projection: q.Projection}
	for _, row := range scanned {
		res.Statements = append(res.Statements, row.stmt)
		if q.Projection != nil {
			res.Values = append(res.Values, row.value)
		}
	}

	logger.Debugw("query executed",
		"backend", "sqlite",
		"query", q.String(),
		"matches", len(res.Statements),
		"elapsed", time.Since(start))
	return res, nil
}

// valueFromSQL converts a scanned column back to a Value of the projection's
// static type. NULL is a missing value.
func valueFromSQL(typ ValueType, raw any) Value {
	if raw == nil {
		return None()
	}
	switch typ {
	case TypeString:
		switch v := raw.(type) {
		case string:
			return StringValue(v)
		case []byte:
			return StringValue(string(v))
		}
	case TypeInt:
		if n, ok := raw.(int64); ok {
			return IntValue(n)
		}
	case TypeFloat:
		switch v := raw.(type) {
		case float64:
			return FloatValue(v)
		case int64:
			return FloatValue(float64(v))
		}
	case TypeKind:
		if n, ok := raw.(int64); ok {
			return KindValue(model.Kind(n))
		}
	}
	return None()
}
