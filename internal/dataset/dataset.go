// Package dataset loads statements from YAML files.
//
// A dataset lists statements in order. A statement may carry a label so
// later statements can be about it:
//
//	statements:
//	  - label: topi
//	    subject: PiiResourceDatabase
//	    predicate: my:designer
//	    object: Topi
//	    kind: resource
//	  - about: topi
//	    predicate: my:evaluation
//	    object: "true"
package dataset

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/resdb/internal/logger"
	"github.com/aidanlsb/resdb/internal/model"
	"github.com/aidanlsb/resdb/internal/store"
)

// ErrInvalidDataset is the base error for dataset content problems.
var ErrInvalidDataset = errors.New("invalid dataset")

// File is the on-disk form of a dataset.
type File struct {
	Statements []Entry `yaml:"statements"`
}

// Entry is one statement in a dataset file. Exactly one of Subject and
// About is normally set; About names an earlier statement by label or id.
type Entry struct {
	Label     string `yaml:"label,omitempty"`
	Subject   string `yaml:"subject,omitempty"`
	About     string `yaml:"about,omitempty"`
	Predicate string `yaml:"predicate"`
	Object    string `yaml:"object"`
	Kind      string `yaml:"kind,omitempty"`
}

// Report describes what a load added to the store.
type Report struct {
	Added   int            `json:"added"`
	Labels  map[string]int `json:"labels,omitempty"`
	Invalid []int          `json:"invalid,omitempty"`
}

// Load reads the dataset at path into st.
func Load(path string, st *store.Store) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dataset %s", path)
	}
	report, err := Decode(bytes.NewReader(data), st)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset %s", path)
	}
	logger.Infow("dataset loaded", "path", path, "statements", report.Added, "invalid", len(report.Invalid))
	return report, nil
}

// Decode reads a dataset from r into st.
func Decode(r io.Reader, st *store.Store) (*Report, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Mark(errors.Wrap(err, "failed to parse dataset"), ErrInvalidDataset)
	}
	return Apply(f.Statements, st)
}

// Apply adds entries to st in order. Labels resolve to the ids the store
// assigns, so "about" may only refer backwards. Bad kinds and labels are
// reported before anything is added; a numeric "about" must name a statement
// already in the store when its entry is reached.
func Apply(entries []Entry, st *store.Store) (*Report, error) {
	if err := check(entries); err != nil {
		return nil, err
	}

	report := &Report{Labels: make(map[string]int)}
	for _, e := range entries {
		subject := e.Subject
		if e.About != "" {
			id, err := resolveAbout(e.About, report.Labels, st)
			if err != nil {
				return nil, err
			}
			subject = model.RefSubject(id)
		}

		kind, _ := model.ParseKind(e.Kind)
		stmt := model.NewStatement(subject, e.Predicate, e.Object, kind)
		id := st.Add(stmt)

		report.Added++
		if e.Label != "" {
			report.Labels[e.Label] = id
		}
		if !stmt.IsValid() {
			report.Invalid = append(report.Invalid, id)
		}
	}
	if len(report.Labels) == 0 {
		report.Labels = nil
	}
	return report, nil
}

// check rejects entries whose references or kinds cannot be resolved.
func check(entries []Entry) error {
	labels := make(map[string]bool)
	for i, e := range entries {
		n := i + 1
		if _, err := model.ParseKind(e.Kind); err != nil {
			return invalid(errors.Newf("statement %d: unknown kind %q", n, e.Kind),
				"kind is literal, resource or invalid")
		}
		if e.Subject != "" && e.About != "" {
			return invalid(errors.Newf("statement %d: both subject and about are set", n),
				"use subject for a resource and about to refer to an earlier statement")
		}
		if e.About != "" && !labels[e.About] {
			if _, err := strconv.Atoi(e.About); err != nil {
				return invalid(errors.Newf("statement %d: about %q does not name an earlier statement", n, e.About),
					"about must be the label of an earlier statement or a statement id")
			}
		}
		if e.Label != "" {
			if labels[e.Label] {
				return invalid(errors.Newf("statement %d: duplicate label %q", n, e.Label),
					"labels must be unique within a dataset")
			}
			labels[e.Label] = true
		}
	}
	return nil
}

func resolveAbout(about string, labels map[string]int, st *store.Store) (int, error) {
	if id, ok := labels[about]; ok {
		return id, nil
	}
	id, err := strconv.Atoi(about)
	if err != nil {
		return 0, invalid(errors.Newf("about %q does not name an earlier statement", about), "")
	}
	if _, ok := st.ByID(id); !ok {
		return 0, invalid(errors.Newf("about %d: no statement with that id", id),
			"a numeric about must refer to a statement added earlier")
	}
	return id, nil
}

func invalid(err error, hint string) error {
	if hint != "" {
		err = errors.WithHint(err, hint)
	}
	return errors.Mark(err, ErrInvalidDataset)
}
