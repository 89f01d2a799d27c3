// Package model defines the statement type stored by resdb.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind tells how the object of a statement should be interpreted.
type Kind int

const (
	// KindInvalid marks a statement that carries no usable object.
	KindInvalid Kind = iota
	// KindLiteral means the object is a string literal.
	KindLiteral
	// KindResource means the object is a resource identifier.
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindResource:
		return "resource"
	default:
		return "invalid"
	}
}

// ParseKind parses the textual form produced by Kind.String.
// An empty string is read as KindLiteral.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "literal":
		return KindLiteral, nil
	case "resource":
		return KindResource, nil
	case "invalid":
		return KindInvalid, nil
	}
	return KindInvalid, fmt.Errorf("unknown statement kind %q (expected literal or resource)", s)
}

// UnassignedID is the id of a statement that has not been added to a store.
const UnassignedID = -1

// Statement is a subject-predicate-object triple.
//
// The subject always names a resource. The predicate describes which aspect
// of the subject is being described and may be empty. The object is either a
// string literal or another resource identifier, depending on Kind.
//
// Statements are values: once built only the id may change, and the store
// sets it at most once. The zero value is an invalid statement with an
// unassigned id.
type Statement struct {
	subject   string
	predicate string
	object    string
	kind      Kind
	// id+1, so that zero means UnassignedID.
	slot int
}

// NewStatement creates a statement with an unassigned id.
func NewStatement(subject, predicate, object string, kind Kind) Statement {
	return Statement{
		subject:   subject,
		predicate: predicate,
		object:    object,
		kind:      kind,
	}
}

// Literal creates a statement whose object is a string literal.
func Literal(subject, predicate, object string) Statement {
	return NewStatement(subject, predicate, object, KindLiteral)
}

// Resource creates a statement whose object references another resource.
func Resource(subject, predicate, object string) Statement {
	return NewStatement(subject, predicate, object, KindResource)
}

// LiteralAbout creates a literal statement about the statement with the
// given id. The subject becomes "#<id>", so these are equal:
//
//	Literal("#123", "pii:connector", "MyConnector")
//	LiteralAbout(123, "pii:connector", "MyConnector")
func LiteralAbout(id int, predicate, object string) Statement {
	return Literal(RefSubject(id), predicate, object)
}

// ResourceAbout is LiteralAbout for resource objects.
func ResourceAbout(id int, predicate, object string) Statement {
	return Resource(RefSubject(id), predicate, object)
}

// Subject returns the resource the statement is about.
func (s Statement) Subject() string { return s.subject }

// Predicate returns the described aspect of the subject.
func (s Statement) Predicate() string { return s.predicate }

// Object returns the value of the aspect.
func (s Statement) Object() string { return s.object }

// Kind returns how Object should be interpreted.
func (s Statement) Kind() Kind { return s.kind }

// ID returns the id assigned by the store, or UnassignedID.
func (s Statement) ID() int { return s.slot - 1 }

// SetID sets the statement id.
func (s *Statement) SetID(id int) { s.slot = id + 1 }

// IsValid reports whether both subject and object are non-empty and the kind
// is not KindInvalid. The predicate may be empty.
func (s Statement) IsValid() bool {
	return s.subject != "" && s.object != "" && s.kind != KindInvalid
}

// IsReification reports whether the subject is a back-reference to another
// statement.
func (s Statement) IsReification() bool {
	_, ok := ParseRef(s.subject)
	return ok
}

func (s Statement) String() string {
	obj := fmt.Sprintf("%q", s.object)
	if s.kind == KindResource {
		obj = "<" + s.object + ">"
	}
	return fmt.Sprintf("%d: <%s> %s %s", s.ID(), s.subject, s.predicate, obj)
}

type statementJSON struct {
	ID        int    `json:"id"`
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
	Kind      string `json:"kind"`
}

// MarshalJSON renders the statement with its kind spelled out.
func (s Statement) MarshalJSON() ([]byte, error) {
	return json.Marshal(statementJSON{
		ID:        s.ID(),
		Subject:   s.subject,
		Predicate: s.predicate,
		Object:    s.object,
		Kind:      s.kind.String(),
	})
}
