package testutil

import (
	"reflect"
	"testing"

	"github.com/aidanlsb/resdb/internal/model"
)

// AssertIDs fails the test unless stmts carry exactly the ids want, in order.
func AssertIDs(t *testing.T, stmts []model.Statement, want ...int) {
	t.Helper()
	got := make([]int, len(stmts))
	for i, st := range stmts {
		got[i] = st.ID()
	}
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("statement ids = %v, want %v", got, want)
	}
}

// AssertStrings fails the test unless got equals want, treating nil and
// empty as equal.
func AssertStrings(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

// AssertQueryCount runs a query through the CLI and verifies the match count.
func (w *TestWorkspace) AssertQueryCount(query string, expectedCount int) {
	w.t.Helper()
	result := w.RunCLI("query", query)
	result.MustSucceed(w.t)

	results := result.DataList("items")
	if len(results) != expectedCount {
		w.t.Errorf("query %q: expected %d results, got %d\nRaw: %s",
			query, expectedCount, len(results), result.RawJSON)
	}
}
