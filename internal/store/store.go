// Package store keeps statements in insertion order and indexes them for
// lookup by subject, predicate, object and id.
package store

import (
	"sync"

	"github.com/aidanlsb/resdb/internal/logger"
	"github.com/aidanlsb/resdb/internal/model"
)

// Store is an append-only, insertion-ordered statement collection.
//
// Add takes the write lock and View the read lock, so a statement can never
// be added while a query is scanning. Any number of views may run at once.
type Store struct {
	mu     sync.RWMutex
	stmts  []model.Statement
	nextID int

	// Positions into stmts, each list in store order.
	bySubject   map[string][]int
	byPredicate map[string][]int
	byObject    map[string][]int
	byID        map[int][]int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		bySubject:   make(map[string][]int),
		byPredicate: make(map[string][]int),
		byObject:    make(map[string][]int),
		byID:        make(map[int][]int),
	}
}

// Add appends a statement and returns its id. A statement with an
// unassigned id gets the next sequential id, starting at 0. A statement that
// already carries an id keeps it, and later ids continue after it.
//
// Invalid statements are stored as-is; callers check IsValid.
func (s *Store) Add(st model.Statement) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.ID() == model.UnassignedID {
		st.SetID(s.nextID)
	}
	if st.ID() >= s.nextID {
		s.nextID = st.ID() + 1
	}

	pos := len(s.stmts)
	s.stmts = append(s.stmts, st)
	s.bySubject[st.Subject()] = append(s.bySubject[st.Subject()], pos)
	s.byPredicate[st.Predicate()] = append(s.byPredicate[st.Predicate()], pos)
	s.byObject[st.Object()] = append(s.byObject[st.Object()], pos)
	s.byID[st.ID()] = append(s.byID[st.ID()], pos)

	if !st.IsValid() {
		logger.Debugw("stored invalid statement", "id", st.ID(), "subject", st.Subject(), "object", st.Object())
	}
	return st.ID()
}

// Len returns the number of stored statements.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stmts)
}

// All returns a copy of every statement in insertion order.
func (s *Store) All() []model.Statement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Statement, len(s.stmts))
	copy(out, s.stmts)
	return out
}

// ByID returns the first statement carrying the given id.
func (s *Store) ByID(id int) (model.Statement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reader().ByID(id)
}

// Invalid returns the statements that fail model.Statement.IsValid.
func (s *Store) Invalid() []model.Statement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Statement
	for _, st := range s.stmts {
		if !st.IsValid() {
			out = append(out, st)
		}
	}
	return out
}

// View runs fn with a read-only view of the store. The store cannot change
// until fn returns. fn must not call Add.
func (s *Store) View(fn func(r Reader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.reader())
}

func (s *Store) reader() Reader {
	return Reader{s: s}
}
