// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/resdb/internal/config"
	"github.com/aidanlsb/resdb/internal/dataset"
	"github.com/aidanlsb/resdb/internal/logger"
	"github.com/aidanlsb/resdb/internal/store"
	"github.com/aidanlsb/resdb/internal/ui"
)

var (
	// Global flags
	configPath   string
	dataPathFlag string
	logLevelFlag string

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
)

// errReported marks an error that has already been written as a JSON
// response.
var errReported = errors.New("error already reported")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "resdb",
	Short: "resdb - a resource statement store",
	Long: `resdb loads subject/predicate/object statements and queries them with a
typed predicate language: comparisons, boolean combinators, correlated
attribute lookups, back-references and subqueries.

  resdb query 'select object where predicate == "my:designer"'
  resdb docs query-language`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return reportPreRun(ErrConfigInvalid, err, "Fix the config file or pass --config")
		}

		if !cmd.Flags().Changed("json") && cfg.Output.Format == config.FormatJSON {
			jsonOutput = true
		}

		level := cfg.Log.Level
		if logLevelFlag != "" {
			level = logLevelFlag
		}
		if err := logger.Initialize(level, cfg.Log.JSON); err != nil {
			return reportPreRun(ErrInvalidInput, err, "Log levels are debug, info, warn and error")
		}

		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&dataPathFlag, "data", "d", "", "Dataset file to load (overrides data in config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// getConfigPath returns the resolved global config path.
func getConfigPath() string {
	return resolvedConfigPath
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}

// resolveDataPath returns the dataset to load: --data first, then the
// config's data setting.
func resolveDataPath() string {
	if dataPathFlag != "" {
		return dataPathFlag
	}
	if cfg == nil {
		return ""
	}
	return config.ResolveDataPath(resolvedConfigPath, cfg.Data)
}

// loadStore loads the resolved dataset into a new store. Errors are already
// mapped to codes; callers return them through handleError.
func loadStore() (*store.Store, *dataset.Report, *cliError) {
	path := resolveDataPath()
	if path == "" {
		return nil, nil, &cliError{
			code:       ErrDataNotFound,
			err:        errors.New("no dataset specified"),
			suggestion: "Pass --data <file.yaml> or set data in config.toml",
		}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, &cliError{
			code:       ErrDataNotFound,
			err:        errors.Newf("dataset not found: %s", path),
			suggestion: "Check the --data path or the data setting in config.toml",
		}
	}

	st := store.New()
	report, err := dataset.Load(path, st)
	if err != nil {
		code := ErrFileReadError
		if errors.Is(err, dataset.ErrInvalidDataset) {
			code = ErrDataInvalid
		}
		return nil, nil, &cliError{code: code, err: err, suggestion: hintOf(err)}
	}
	return st, report, nil
}

// reportPreRun reports an error raised before a command runs. In JSON mode
// the response is written immediately.
func reportPreRun(code string, err error, suggestion string) error {
	if jsonOutput {
		outputErrorFromErr(code, err, suggestionFor(err, suggestion))
		return errReported
	}
	return errors.WithHint(err, suggestion)
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintln(os.Stderr, ui.Hint("  "+hint))
	}
}
