package check

import (
	"strings"
	"testing"

	"github.com/aidanlsb/resdb/internal/model"
	"github.com/aidanlsb/resdb/internal/store"
	"github.com/aidanlsb/resdb/internal/testutil"
)

func TestCheckPersonnel(t *testing.T) {
	report := Check(testutil.PersonnelStore())

	if report.Statements != 15 {
		t.Errorf("Statements = %d, want 15", report.Statements)
	}
	if report.Errors() != 0 {
		t.Errorf("Errors() = %d, want 0: %v", report.Errors(), report.Issues)
	}

	// The three designers share subject and predicate; only the first is
	// visible to attr(my:designer).
	var shadowed []int
	for _, issue := range report.Issues {
		if issue.Type == IssueShadowedAttribute {
			shadowed = append(shadowed, issue.StatementID)
		}
	}
	if len(shadowed) != 2 || shadowed[0] != 2 || shadowed[1] != 4 {
		t.Errorf("shadowed statements = %v, want [2 4]", shadowed)
	}
	if report.Warnings() != 2 {
		t.Errorf("Warnings() = %d, want 2: %v", report.Warnings(), report.Issues)
	}
}

func TestCheckRules(t *testing.T) {
	tests := []struct {
		name       string
		statements []model.Statement
		wantType   IssueType
		wantLevel  IssueLevel
		wantID     int
		wantMsg    string
	}{
		{
			name:       "empty subject",
			statements: []model.Statement{model.Literal("", "my:title", "CTO")},
			wantType:   IssueInvalidStatement,
			wantLevel:  LevelError,
			wantID:     0,
			wantMsg:    "empty subject",
		},
		{
			name:       "invalid kind and empty object",
			statements: []model.Statement{model.NewStatement("Topi", "my:title", "", model.KindInvalid)},
			wantType:   IssueInvalidStatement,
			wantLevel:  LevelError,
			wantID:     0,
			wantMsg:    "empty object, invalid kind",
		},
		{
			name:       "malformed reference",
			statements: []model.Statement{model.Literal("#x1", "my:evaluation", "true")},
			wantType:   IssueMalformedReference,
			wantLevel:  LevelWarning,
			wantID:     0,
			wantMsg:    "#x1",
		},
		{
			name:       "dangling reference",
			statements: []model.Statement{model.LiteralAbout(7, "my:evaluation", "true")},
			wantType:   IssueDanglingReference,
			wantLevel:  LevelWarning,
			wantID:     0,
			wantMsg:    "#7",
		},
		{
			name: "duplicate statement",
			statements: []model.Statement{
				model.Resource("Topi", "my:wife", "Anna"),
				model.Resource("Topi", "my:wife", "Anna"),
			},
			wantType:  IssueDuplicateStatement,
			wantLevel: LevelWarning,
			wantID:    1,
			wantMsg:   "#0",
		},
		{
			name: "shadowed attribute",
			statements: []model.Statement{
				model.Literal("Topi", "my:title", "CTO"),
				model.Literal("Topi", "my:title", "CEO"),
			},
			wantType:  IssueShadowedAttribute,
			wantLevel: LevelWarning,
			wantID:    1,
			wantMsg:   "#0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.New()
			for _, st := range tt.statements {
				s.Add(st)
			}
			report := Check(s)
			if len(report.Issues) != 1 {
				t.Fatalf("expected 1 issue, got %d: %v", len(report.Issues), report.Issues)
			}
			issue := report.Issues[0]
			if issue.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", issue.Type, tt.wantType)
			}
			if issue.Level != tt.wantLevel {
				t.Errorf("Level = %s, want %s", issue.Level, tt.wantLevel)
			}
			if issue.StatementID != tt.wantID {
				t.Errorf("StatementID = %d, want %d", issue.StatementID, tt.wantID)
			}
			if !strings.Contains(issue.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want it to contain %q", issue.Message, tt.wantMsg)
			}
		})
	}
}

func TestCheckValidReferenceIsClean(t *testing.T) {
	s := store.New()
	id := s.Add(model.Resource("PiiResourceDatabase", "my:designer", "Topi"))
	s.Add(model.LiteralAbout(id, "my:evaluation", "true"))

	report := Check(s)
	if len(report.Issues) != 0 {
		t.Errorf("expected no issues, got %v", report.Issues)
	}
}

func TestIssueLevelString(t *testing.T) {
	if LevelError.String() != "ERROR" || LevelWarning.String() != "WARN" {
		t.Errorf("unexpected level strings %q %q", LevelError, LevelWarning)
	}
	if IssueLevel(9).String() != "UNKNOWN" {
		t.Errorf("unexpected unknown level string")
	}
}
