package store

import "github.com/aidanlsb/resdb/internal/model"

// Reader is a read-only view handed out by Store.View. It is only valid
// inside the View callback.
type Reader struct {
	s *Store
}

// Len returns the number of statements.
func (r Reader) Len() int { return len(r.s.stmts) }

// At returns the statement at position i (0 <= i < Len) in insertion order.
func (r Reader) At(i int) model.Statement { return r.s.stmts[i] }

// Attribute returns the object of the first statement, in store order, with
// the given subject and predicate.
func (r Reader) Attribute(subject, predicate string) (string, bool) {
	for _, pos := range r.s.bySubject[subject] {
		if st := r.s.stmts[pos]; st.Predicate() == predicate {
			return st.Object(), true
		}
	}
	return "", false
}

// BySubject returns the statements with the given subject in store order.
func (r Reader) BySubject(subject string) []model.Statement {
	return r.collect(r.s.bySubject[subject])
}

// ByPredicate returns the statements with the given predicate in store order.
func (r Reader) ByPredicate(predicate string) []model.Statement {
	return r.collect(r.s.byPredicate[predicate])
}

// ByObject returns the statements with the given object in store order.
func (r Reader) ByObject(object string) []model.Statement {
	return r.collect(r.s.byObject[object])
}

// ByID returns the first statement carrying the given id.
func (r Reader) ByID(id int) (model.Statement, bool) {
	positions := r.s.byID[id]
	if len(positions) == 0 {
		return model.Statement{}, false
	}
	return r.s.stmts[positions[0]], true
}

func (r Reader) collect(positions []int) []model.Statement {
	if len(positions) == 0 {
		return nil
	}
	out := make([]model.Statement, len(positions))
	for i, pos := range positions {
		out[i] = r.s.stmts[pos]
	}
	return out
}
