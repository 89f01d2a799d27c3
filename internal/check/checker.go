// Package check reports problems in a statement store.
//
// Statement validity is advisory: invalid statements are stored and take
// part in queries like any other. The checker only reports them.
package check

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/resdb/internal/model"
	"github.com/aidanlsb/resdb/internal/store"
)

// IssueLevel indicates the severity of an issue.
type IssueLevel int

const (
	LevelError IssueLevel = iota
	LevelWarning
)

func (l IssueLevel) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARN"
	default:
		return "UNKNOWN"
	}
}

// IssueType identifies the rule that produced an issue.
type IssueType string

const (
	IssueInvalidStatement   IssueType = "invalid_statement"
	IssueMalformedReference IssueType = "malformed_reference"
	IssueDanglingReference  IssueType = "dangling_reference"
	IssueDuplicateStatement IssueType = "duplicate_statement"
	IssueShadowedAttribute  IssueType = "shadowed_attribute"
)

// Issue represents a problem with one statement.
type Issue struct {
	Level       IssueLevel
	Type        IssueType
	StatementID int
	Message     string
	Suggestion  string
}

// Report is the result of checking a store.
type Report struct {
	Statements int
	Issues     []Issue
}

// Errors returns the number of error-level issues.
func (r *Report) Errors() int {
	return r.count(LevelError)
}

// Warnings returns the number of warning-level issues.
func (r *Report) Warnings() int {
	return r.count(LevelWarning)
}

func (r *Report) count(level IssueLevel) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Level == level {
			n++
		}
	}
	return n
}

type tripleKey struct {
	subject, predicate, object string
	kind                       model.Kind
}

type attrKey struct {
	subject, predicate string
}

// Checker walks a store and collects issues.
type Checker struct {
	seen      map[tripleKey]int
	firstAttr map[attrKey]int
}

// NewChecker creates a new checker.
func NewChecker() *Checker {
	return &Checker{
		seen:      make(map[tripleKey]int),
		firstAttr: make(map[attrKey]int),
	}
}

// Check checks every statement of s in store order.
func Check(s *store.Store) *Report {
	report := &Report{}
	_ = s.View(func(r store.Reader) error {
		report = NewChecker().Run(r)
		return nil
	})
	return report
}

// Run checks the statements visible through r.
func (c *Checker) Run(r store.Reader) *Report {
	report := &Report{Statements: r.Len()}
	for i := 0; i < r.Len(); i++ {
		report.Issues = append(report.Issues, c.checkStatement(r, r.At(i))...)
	}
	return report
}

func (c *Checker) checkStatement(r store.Reader, st model.Statement) []Issue {
	var issues []Issue

	if !st.IsValid() {
		issues = append(issues, Issue{
			Level:       LevelError,
			Type:        IssueInvalidStatement,
			StatementID: st.ID(),
			Message:     fmt.Sprintf("Invalid statement: %s", invalidReason(st)),
			Suggestion:  "Statements need a subject, an object and a literal or resource kind",
		})
	}

	if strings.HasPrefix(st.Subject(), "#") {
		if id, ok := model.ParseRef(st.Subject()); !ok {
			issues = append(issues, Issue{
				Level:       LevelWarning,
				Type:        IssueMalformedReference,
				StatementID: st.ID(),
				Message:     fmt.Sprintf("Subject %q looks like a back-reference but is not '#' followed by digits", st.Subject()),
				Suggestion:  "ref(subject) evaluates to -1 for this statement",
			})
		} else if _, exists := r.ByID(id); !exists {
			issues = append(issues, Issue{
				Level:       LevelWarning,
				Type:        IssueDanglingReference,
				StatementID: st.ID(),
				Message:     fmt.Sprintf("Subject refers to statement %s which does not exist", model.RefSubject(id)),
			})
		}
	}

	key := tripleKey{st.Subject(), st.Predicate(), st.Object(), st.Kind()}
	if first, dup := c.seen[key]; dup {
		issues = append(issues, Issue{
			Level:       LevelWarning,
			Type:        IssueDuplicateStatement,
			StatementID: st.ID(),
			Message:     fmt.Sprintf("Duplicate of statement %s", model.RefSubject(first)),
			Suggestion:  "Query results are not deduplicated, so this statement is returned twice",
		})
		return issues
	}
	c.seen[key] = st.ID()

	attr := attrKey{st.Subject(), st.Predicate()}
	if first, shadowed := c.firstAttr[attr]; shadowed {
		issues = append(issues, Issue{
			Level:       LevelWarning,
			Type:        IssueShadowedAttribute,
			StatementID: st.ID(),
			Message: fmt.Sprintf("attr(%q) of %s resolves to statement %s, not this one",
				st.Predicate(), st.Subject(), model.RefSubject(first)),
		})
	} else {
		c.firstAttr[attr] = st.ID()
	}

	return issues
}

func invalidReason(st model.Statement) string {
	var missing []string
	if st.Subject() == "" {
		missing = append(missing, "empty subject")
	}
	if st.Object() == "" {
		missing = append(missing, "empty object")
	}
	if st.Kind() == model.KindInvalid {
		missing = append(missing, "invalid kind")
	}
	return strings.Join(missing, ", ")
}
