package store

import "github.com/aidanlsb/resdb/internal/logger"

// Dump logs every statement in insertion order at info level.
func (s *Store) Dump() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logger.Infow("statement store", "count", len(s.stmts))
	for _, st := range s.stmts {
		logger.Infow("statement",
			"id", st.ID(),
			"subject", st.Subject(),
			"predicate", st.Predicate(),
			"object", st.Object(),
			"kind", st.Kind().String(),
			"valid", st.IsValid(),
		)
	}
}
