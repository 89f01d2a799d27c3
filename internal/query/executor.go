package query

import (
	"time"

	"github.com/aidanlsb/resdb/internal/logger"
	"github.com/aidanlsb/resdb/internal/model"
	"github.com/aidanlsb/resdb/internal/store"
)

// Runner runs validated queries. Executor and SQLExecutor both implement it
// and return identical results for the same store contents.
type Runner interface {
	Run(q *Query) (*Result, error)
}

// Executor evaluates queries directly against a statement store.
type Executor struct {
	store *store.Store
}

// NewExecutor creates a new in-memory query executor.
func NewExecutor(s *store.Store) *Executor {
	return &Executor{store: s}
}

// Run validates q and evaluates it under the store's read lock.
func (e *Executor) Run(q *Query) (*Result, error) {
	if err := Validate(q); err != nil {
		return nil, err
	}

	start := time.Now()
	var res *Result
	err := e.store.View(func(r store.Reader) error {
		res = run(r, q)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debugw("query executed",
		"backend", "memory",
		"query", q.String(),
		"matches", len(res.Statements),
		"elapsed", time.Since(start))
	return res, nil
}

// Select returns the statements matching expr in store order.
func (e *Executor) Select(expr Expr) ([]model.Statement, error) {
	res, err := e.Run(&Query{Where: expr})
	if err != nil {
		return nil, err
	}
	return res.Statements, nil
}

// SelectValues projects every statement matching expr through term. The
// result is in store order and is not deduplicated.
func (e *Executor) SelectValues(term Term, expr Expr) ([]Value, error) {
	if term == nil {
		return nil, &ValidationError{Message: "projection term is nil", Suggestion: "Use Select to fetch whole statements"}
	}
	res, err := e.Run(&Query{Projection: term, Where: expr})
	if err != nil {
		return nil, err
	}
	return res.Values, nil
}

// Execute parses a query string and runs it.
func Execute(r Runner, queryStr string) (*Result, error) {
	q, err := Parse(queryStr)
	if err != nil {
		return nil, err
	}
	return r.Run(q)
}
