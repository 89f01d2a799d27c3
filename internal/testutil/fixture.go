// Package testutil provides reusable test utilities for resdb tests.
package testutil

import (
	"strconv"

	"github.com/aidanlsb/resdb/internal/model"
	"github.com/aidanlsb/resdb/internal/store"
)

// PersonnelStore returns a store holding the personnel fixture:
//
//	0  PiiResourceDatabase my:designer Topi (resource)
//	1  #0 my:evaluation "true"
//	2  PiiResourceDatabase my:designer Lasse (resource)
//	3  #2 my:evaluation "true"
//	4  PiiResourceDatabase my:designer Olli (resource)
//	5  #4 my:evaluation "false"
//	6  Topi my:title "CTO"
//	7  Topi my:wife Anna (resource)
//	8  Lasse my:title "Software Engineer"
//	9  Lasse my:wife Tuulikki (resource)
//	10 Olli my:title "Keisari"
//	11 Olli my:wife Johanna (resource)
//	12 Topi my:kids "6"
//	13 Lasse my:kids "3"
//	14 Olli my:kids "1"
func PersonnelStore() *store.Store {
	s := store.New()
	for _, st := range PersonnelStatements() {
		s.Add(st)
	}
	return s
}

// PersonnelStatements returns the personnel fixture with ids assigned.
func PersonnelStatements() []model.Statement {
	var out []model.Statement
	add := func(st model.Statement) int {
		st.SetID(len(out))
		out = append(out, st)
		return st.ID()
	}

	designers := []struct {
		name, evaluation string
	}{
		{"Topi", "true"},
		{"Lasse", "true"},
		{"Olli", "false"},
	}
	for _, d := range designers {
		id := add(model.Resource("PiiResourceDatabase", "my:designer", d.name))
		add(model.LiteralAbout(id, "my:evaluation", d.evaluation))
	}

	add(model.Literal("Topi", "my:title", "CTO"))
	add(model.Resource("Topi", "my:wife", "Anna"))
	add(model.Literal("Lasse", "my:title", "Software Engineer"))
	add(model.Resource("Lasse", "my:wife", "Tuulikki"))
	add(model.Literal("Olli", "my:title", "Keisari"))
	add(model.Resource("Olli", "my:wife", "Johanna"))

	for _, k := range []struct {
		name string
		kids int
	}{{"Topi", 6}, {"Lasse", 3}, {"Olli", 1}} {
		add(model.Literal(k.name, "my:kids", strconv.Itoa(k.kids)))
	}
	return out
}

// PersonnelYAML is the personnel fixture as a dataset file.
const PersonnelYAML = `statements:
  - label: topi
    subject: PiiResourceDatabase
    predicate: my:designer
    object: Topi
    kind: resource
  - about: topi
    predicate: my:evaluation
    object: "true"
  - label: lasse
    subject: PiiResourceDatabase
    predicate: my:designer
    object: Lasse
    kind: resource
  - about: lasse
    predicate: my:evaluation
    object: "true"
  - label: olli
    subject: PiiResourceDatabase
    predicate: my:designer
    object: Olli
    kind: resource
  - about: olli
    predicate: my:evaluation
    object: "false"
  - {subject: Topi, predicate: my:title, object: CTO}
  - {subject: Topi, predicate: my:wife, object: Anna, kind: resource}
  - {subject: Lasse, predicate: my:title, object: Software Engineer}
  - {subject: Lasse, predicate: my:wife, object: Tuulikki, kind: resource}
  - {subject: Olli, predicate: my:title, object: Keisari}
  - {subject: Olli, predicate: my:wife, object: Johanna, kind: resource}
  - {subject: Topi, predicate: my:kids, object: "6"}
  - {subject: Lasse, predicate: my:kids, object: "3"}
  - {subject: Olli, predicate: my:kids, object: "1"}
`
