package query

import "github.com/aidanlsb/resdb/internal/model"

// Result holds the statements that matched a query, in store order. When
// the query has a projection, Values[i] is the projection of Statements[i].
type Result struct {
	Projection Term
	Statements []model.Statement
	Values     []Value
}

// Len returns the number of matches.
func (r *Result) Len() int { return len(r.Statements) }

// Projected reports whether the query projected its matches.
func (r *Result) Projected() bool { return r.Projection != nil }
