package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/resdb/internal/check"
	"github.com/aidanlsb/resdb/internal/model"
	"github.com/aidanlsb/resdb/internal/ui"
)

var checkStrict bool

type checkIssueView struct {
	Level       string `json:"level"`
	Code        string `json:"code"`
	StatementID int    `json:"statement_id"`
	Message     string `json:"message"`
	Suggestion  string `json:"suggestion,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report invalid statements and suspicious references",
	Long: `Check the loaded statements.

Errors:
  invalid statements (empty subject or object, invalid kind)

Warnings:
  subjects that start with '#' but are not back-references
  back-references to statements that do not exist
  duplicate statements
  statements hidden from attr() by an earlier statement with the same
  subject and predicate

Invalid statements are still stored and queried. Use --strict to fail on
warnings as well as errors.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, loadErr := loadStore()
		if loadErr != nil {
			return handleCLIError(loadErr)
		}

		report := check.Check(st)
		failed := report.Errors() > 0 || (checkStrict && report.Warnings() > 0)

		if isJSONOutput() {
			issues := make([]checkIssueView, 0, len(report.Issues))
			for _, issue := range report.Issues {
				issues = append(issues, checkIssueView{
					Level:       issue.Level.String(),
					Code:        issueCode(issue.Type),
					StatementID: issue.StatementID,
					Message:     issue.Message,
					Suggestion:  issue.Suggestion,
				})
			}
			outputSuccess(map[string]interface{}{
				"statements": report.Statements,
				"errors":     report.Errors(),
				"warnings":   report.Warnings(),
				"valid":      !failed,
				"issues":     issues,
			}, &Meta{Count: len(issues)})
			return nil
		}

		for _, issue := range report.Issues {
			line := fmt.Sprintf("%s %s", ui.StatementID(issue.StatementID), issue.Message)
			if issue.Level == check.LevelError {
				fmt.Println(ui.Error(line))
			} else {
				fmt.Println(ui.Warning(line))
			}
			if issue.Suggestion != "" {
				fmt.Println("  " + ui.Hint(issue.Suggestion))
			}
		}

		if len(report.Issues) == 0 {
			fmt.Println(ui.Successf("Checked %s, no issues found",
				ui.Count(report.Statements, "statement", "statements")))
			return nil
		}
		fmt.Printf("\nChecked %d statements %s\n", report.Statements,
			ui.ErrorWarningCounts(report.Errors(), report.Warnings()))
		if failed {
			return fmt.Errorf("check failed")
		}
		return nil
	},
}

func issueCode(t check.IssueType) string {
	switch t {
	case check.IssueInvalidStatement:
		return WarnInvalidStatement
	case check.IssueMalformedReference:
		return WarnMalformedReference
	case check.IssueDanglingReference:
		return WarnDanglingReference
	case check.IssueDuplicateStatement:
		return WarnDuplicateStatement
	case check.IssueShadowedAttribute:
		return WarnShadowedAttribute
	}
	return string(t)
}

// checkWarnings turns load-time invalid statements into envelope warnings.
func checkWarnings(invalid []int) []Warning {
	var warnings []Warning
	for _, id := range invalid {
		id := id
		warnings = append(warnings, Warning{
			Code:        WarnInvalidStatement,
			Message:     fmt.Sprintf("statement %s is invalid", model.RefSubject(id)),
			StatementID: &id,
		})
	}
	return warnings
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Treat warnings as errors")
	rootCmd.AddCommand(checkCmd)
}
