package model

import (
	"encoding/json"
	"testing"
)

func TestFactoriesRoundTrip(t *testing.T) {
	lit := Literal("Topi", "my:title", "CTO")
	if lit.Subject() != "Topi" || lit.Predicate() != "my:title" || lit.Object() != "CTO" {
		t.Fatalf("literal fields = %q %q %q", lit.Subject(), lit.Predicate(), lit.Object())
	}
	if lit.Kind() != KindLiteral {
		t.Errorf("literal kind = %v", lit.Kind())
	}
	if lit.ID() != UnassignedID {
		t.Errorf("literal id = %d, want %d", lit.ID(), UnassignedID)
	}

	res := Resource("Topi", "my:wife", "Anna")
	if res.Subject() != "Topi" || res.Predicate() != "my:wife" || res.Object() != "Anna" {
		t.Fatalf("resource fields = %q %q %q", res.Subject(), res.Predicate(), res.Object())
	}
	if res.Kind() != KindResource {
		t.Errorf("resource kind = %v", res.Kind())
	}
}

func TestAboutUsesBackReference(t *testing.T) {
	a := LiteralAbout(123, "pii:connector", "MyConnector")
	b := Literal("#123", "pii:connector", "MyConnector")
	if a != b {
		t.Fatalf("LiteralAbout = %+v, want %+v", a, b)
	}
	if got := ResourceAbout(7, "p", "o"); got.Subject() != "#7" || got.Kind() != KindResource {
		t.Fatalf("ResourceAbout = %+v", got)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		st   Statement
		want bool
	}{
		{"zero value", Statement{}, false},
		{"literal", Literal("s", "p", "o"), true},
		{"empty predicate", Literal("s", "", "o"), true},
		{"empty subject", Literal("", "p", "o"), false},
		{"empty object", Resource("s", "p", ""), false},
		{"invalid kind", NewStatement("s", "p", "o", KindInvalid), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.st.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetID(t *testing.T) {
	st := Literal("s", "p", "o")
	st.SetID(4)
	if st.ID() != 4 {
		t.Fatalf("ID() = %d", st.ID())
	}
	st.SetID(0)
	if st.ID() != 0 {
		t.Fatalf("ID() after SetID(0) = %d", st.ID())
	}
}

func TestUnassignedID(t *testing.T) {
	tests := []struct {
		name string
		st   Statement
	}{
		{"zero value", Statement{}},
		{"literal", Literal("s", "p", "o")},
		{"resource", Resource("s", "p", "o")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.st.ID(); got != UnassignedID {
				t.Errorf("ID() = %d, want %d", got, UnassignedID)
			}
		})
	}
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"#0", 0, true},
		{"#42", 42, true},
		{"#", 0, false},
		{"42", 0, false},
		{"#4a", 0, false},
		{"#-1", 0, false},
		{"# 1", 0, false},
		{"#99999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseRef(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseRef(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if RefID("Topi") != -1 {
		t.Errorf("RefID(Topi) = %d", RefID("Topi"))
	}
	if RefID(RefSubject(12)) != 12 {
		t.Errorf("RefID(RefSubject(12)) = %d", RefID(RefSubject(12)))
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindInvalid, KindLiteral, KindResource} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if got, _ := ParseKind(""); got != KindLiteral {
		t.Errorf("ParseKind(\"\") = %v", got)
	}
	if _, err := ParseKind("blob"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestMarshalJSON(t *testing.T) {
	st := Resource("Topi", "my:wife", "Anna")
	st.SetID(3)
	data, err := json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":3,"subject":"Topi","predicate":"my:wife","object":"Anna","kind":"resource"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}
