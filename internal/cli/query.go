package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/resdb/internal/config"
	"github.com/aidanlsb/resdb/internal/index"
	"github.com/aidanlsb/resdb/internal/logger"
	"github.com/aidanlsb/resdb/internal/model"
	"github.com/aidanlsb/resdb/internal/query"
	"github.com/aidanlsb/resdb/internal/store"
	"github.com/aidanlsb/resdb/internal/ui"
)

var (
	queryBackend backendValue
	querySave    string
)

var queryCmd = &cobra.Command{
	Use:   "query <query-string|saved-name>",
	Short: "Run a query against the loaded statements",
	Long: `Query statements using the resdb query language.

  select [term] [where condition]

Terms:
  subject, predicate, object, id, kind
  attr("name")       object of the subject's first "name" statement
  int(t) float(t)    parse a string term as a number
  ref(t)             N for a "#N" back-reference, else -1

Conditions compare a term with a literal, another term or a subquery,
and combine with &&, || and !. A subquery is compared with == (membership)
or != (non-membership) only.

Examples:
  resdb query 'select where predicate == "my:designer"'
  resdb query 'select object where predicate == "my:kids" && int(object) >= 3'
  resdb query 'select where subject == (select object where predicate == "my:designer")'
  resdb query designers                 # Run saved query
  resdb query --list                    # List saved queries
  resdb query 'select subject' --save everyone`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		cfg := getConfig()

		listFlag, _ := cmd.Flags().GetBool("list")
		if listFlag {
			return listSavedQueries(cfg)
		}
		deleteName, _ := cmd.Flags().GetString("delete")
		if deleteName != "" {
			return deleteSavedQuery(deleteName)
		}

		if len(args) == 0 {
			return handleErrorMsg(ErrMissingArgument, "specify a query string", "Run 'resdb query --list' to see saved queries")
		}

		queryStr := args[0]
		savedName := ""
		if !looksLikeQuery(queryStr) {
			saved, ok := cfg.Query(queryStr)
			if !ok {
				return handleErrorMsg(ErrQueryNotFound,
					fmt.Sprintf("unknown query: %s", queryStr),
					"Queries start with 'select', or name a saved query. Run 'resdb query --list' to see saved queries.")
			}
			savedName = queryStr
			queryStr = saved
		}

		q, err := query.Parse(queryStr)
		if err != nil {
			suggestion := "Run 'resdb docs query-language' for the syntax"
			var verr *query.ValidationError
			if errors.As(err, &verr) {
				suggestion = verr.Suggestion
			}
			return handleError(ErrQueryInvalid, err, suggestion)
		}

		if querySave != "" {
			if savedName != "" {
				return handleErrorMsg(ErrInvalidInput, "--save needs query text, not a saved query name", "")
			}
			if nameErr := checkSaveName(querySave); nameErr != nil {
				return handleCLIError(nameErr)
			}
		}

		st, report, loadErr := loadStore()
		if loadErr != nil {
			return handleCLIError(loadErr)
		}

		backend := queryBackend.resolve(cfg)
		res, err := runQuery(st, backend, q)
		if err != nil {
			var verr *query.ValidationError
			if errors.As(err, &verr) {
				return handleError(ErrQueryInvalid, err, verr.Suggestion)
			}
			return handleError(ErrDatabaseError, err, "")
		}

		if querySave != "" {
			if saveErr := saveQuery(querySave, queryStr); saveErr != nil {
				return handleCLIError(saveErr)
			}
			savedName = querySave
		}
		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			outputSuccessWithWarnings(queryResultData(q, backend, savedName, res), checkWarnings(report.Invalid), &Meta{
				Count:       res.Len(),
				QueryTimeMs: elapsed,
			})
			return nil
		}

		printQueryResult(q, res)
		return nil
	},
}

// looksLikeQuery reports whether s is query text rather than a saved name.
func looksLikeQuery(s string) bool {
	fields := strings.Fields(s)
	return len(fields) > 0 && strings.EqualFold(fields[0], "select")
}

// runQuery runs q on the chosen backend.
func runQuery(st *store.Store, backend string, q *query.Query) (*query.Result, error) {
	var runner query.Runner
	switch backend {
	case config.BackendSQLite:
		db, err := index.Open()
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if err := db.LoadStore(st); err != nil {
			return nil, err
		}
		runner = db.Executor()
	default:
		runner = query.NewExecutor(st)
	}

	logger.Debugw("running query", "backend", backend, "query", q.String())
	return runner.Run(q)
}

type projectedItem struct {
	Value     query.Value     `json:"value"`
	Statement model.Statement `json:"statement"`
}

func queryResultData(q *query.Query, backend, savedName string, res *query.Result) map[string]interface{} {
	data := map[string]interface{}{
		"query":   q.String(),
		"backend": backend,
	}
	if savedName != "" {
		data["saved_query"] = savedName
	}

	if res.Projected() {
		items := make([]projectedItem, res.Len())
		for i := range res.Statements {
			items[i] = projectedItem{Value: res.Values[i], Statement: res.Statements[i]}
		}
		data["items"] = items
		return data
	}

	items := res.Statements
	if items == nil {
		items = []model.Statement{}
	}
	data["items"] = items
	return data
}

func printQueryResult(q *query.Query, res *query.Result) {
	if res.Len() == 0 {
		fmt.Println(ui.Hint("No results."))
		return
	}

	fmt.Printf("%s %s\n\n", ui.Header(q.String()), ui.Hint(ui.Count(res.Len(), "match", "matches")))
	display := ui.NewDisplayContext()
	if res.Projected() {
		fmt.Println(ui.RenderValues(display, query.Strings(res.Values), res.Statements))
		return
	}
	fmt.Println(ui.RenderStatements(display, res.Statements))
}

func listSavedQueries(cfg *config.Config) error {
	names := cfg.QueryNames()

	if isJSONOutput() {
		queries := make([]map[string]string, 0, len(names))
		for _, name := range names {
			text, _ := cfg.Query(name)
			queries = append(queries, map[string]string{"name": name, "query": text})
		}
		outputSuccess(map[string]interface{}{"queries": queries}, &Meta{Count: len(queries)})
		return nil
	}

	if len(names) == 0 {
		fmt.Println(ui.Hint("No saved queries. Save one with: resdb query '<query>' --save <name>"))
		return nil
	}

	tbl := ui.NewTable(2)
	for _, name := range names {
		text, _ := cfg.Query(name)
		tbl.AddRow(ui.AccentBold.Render(name), text)
	}
	fmt.Print(tbl.String())
	return nil
}

// checkSaveName reports why name cannot be used for a new saved query.
func checkSaveName(name string) *cliError {
	if !validQueryName(name) {
		return &cliError{
			code:       ErrInvalidInput,
			err:        errors.Newf("invalid query name %q", name),
			suggestion: "Names use letters, digits, '-' and '_' and must not start with 'select'",
		}
	}
	if _, exists := getConfig().Query(name); exists {
		return &cliError{
			code:       ErrDuplicateName,
			err:        errors.Newf("saved query %q already exists", name),
			suggestion: fmt.Sprintf("Remove it first with: resdb query --delete %s", name),
		}
	}
	return nil
}

// saveQuery persists text under name once the query has run.
func saveQuery(name, text string) *cliError {
	if err := config.SaveQuery(getConfigPath(), name, text); err != nil {
		return &cliError{code: ErrInternal, err: err}
	}
	logger.Infow("saved query", "name", name, "config", getConfigPath())
	if !isJSONOutput() {
		fmt.Println(ui.Successf("Saved query %s", name))
	}
	return nil
}

func deleteSavedQuery(name string) error {
	removed, err := config.RemoveQuery(getConfigPath(), name)
	if err != nil {
		return handleError(ErrInternal, err, "")
	}
	if !removed {
		return handleErrorMsg(ErrQueryNotFound, fmt.Sprintf("no saved query %q", name), "Run 'resdb query --list' to see saved queries")
	}
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"deleted": name}, nil)
		return nil
	}
	fmt.Println(ui.Successf("Deleted query %s", name))
	return nil
}

func validQueryName(name string) bool {
	if name == "" || looksLikeQuery(name) {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func init() {
	queryCmd.Flags().Bool("list", false, "List saved queries")
	queryCmd.Flags().String("delete", "", "Delete a saved query")
	queryCmd.Flags().StringVar(&querySave, "save", "", "Save the query text under a name")
	queryCmd.Flags().Var(&queryBackend, "backend", "Query backend: memory or sqlite (default from config)")
	rootCmd.AddCommand(queryCmd)
}
