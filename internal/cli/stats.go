package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/resdb/internal/index"
	"github.com/aidanlsb/resdb/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dataset statistics",
	Long:  `Load the dataset into the SQLite index and report statement, subject, predicate and reification counts.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, report, loadErr := loadStore()
		if loadErr != nil {
			return handleCLIError(loadErr)
		}

		db, err := index.Open()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer db.Close()

		if err := db.LoadStore(st); err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		stats, err := db.Stats()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"statements":     stats.StatementCount,
				"subjects":       stats.SubjectCount,
				"predicates":     stats.PredicateCount,
				"reifications":   stats.ReificationCount,
				"invalid":        len(report.Invalid),
				"labels":         len(report.Labels),
				"schema_version": index.CurrentDBVersion,
			}, nil)
			return nil
		}

		tbl := ui.NewTable(2)
		tbl.AddRow(ui.Bold.Render("Statements"), fmt.Sprint(stats.StatementCount))
		tbl.AddRow(ui.Bold.Render("Subjects"), fmt.Sprint(stats.SubjectCount))
		tbl.AddRow(ui.Bold.Render("Predicates"), fmt.Sprint(stats.PredicateCount))
		tbl.AddRow(ui.Bold.Render("Reifications"), fmt.Sprint(stats.ReificationCount))
		tbl.AddRow(ui.Bold.Render("Invalid"), fmt.Sprint(len(report.Invalid)))
		fmt.Print(tbl.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
