package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/resdb/internal/model"
	"github.com/aidanlsb/resdb/internal/ui"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print every loaded statement in store order",
	Long: `Print every statement of the dataset in store order, with its id.

Statements are also written to the debug log, so
  resdb dump --log-level debug
shows the log sink's view of the store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, report, loadErr := loadStore()
		if loadErr != nil {
			return handleCLIError(loadErr)
		}
		st.Dump()
		stmts := st.All()

		if isJSONOutput() {
			items := stmts
			if items == nil {
				items = []model.Statement{}
			}
			outputSuccess(map[string]interface{}{
				"statements": items,
				"labels":     report.Labels,
				"invalid":    report.Invalid,
			}, &Meta{Count: len(stmts)})
			return nil
		}

		if len(stmts) == 0 {
			fmt.Println(ui.Hint("Dataset is empty."))
			return nil
		}
		fmt.Printf("%s %s\n\n", ui.Header(resolveDataPath()), ui.Hint(ui.Count(len(stmts), "statement", "statements")))
		fmt.Println(ui.RenderStatements(ui.NewDisplayContext(), stmts))
		if n := len(report.Invalid); n > 0 {
			fmt.Println(ui.Warningf("%s invalid. Run 'resdb check' for details.", ui.Count(n, "statement", "statements")))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
