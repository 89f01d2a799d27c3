package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/resdb/internal/config"
	"github.com/aidanlsb/resdb/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create the resdb config file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := getConfigPath()
		_, statErr := os.Stat(path)
		exists := statErr == nil

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path, "exists": exists}, nil)
			return nil
		}
		fmt.Println(path)
		if !exists {
			fmt.Println(ui.Hint("(not created yet; run 'resdb config init')"))
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := getConfigPath()
		_, statErr := os.Stat(path)
		existed := statErr == nil

		if _, err := config.CreateDefault(path); err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path, "created": !existed}, nil)
			return nil
		}
		if existed {
			fmt.Println(ui.Info(fmt.Sprintf("Config already exists at %s", path)))
			return nil
		}
		fmt.Println(ui.Successf("Created %s", path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		data := map[string]interface{}{
			"path":    getConfigPath(),
			"data":    resolveDataPath(),
			"backend": cfg.BackendOrDefault(),
			"queries": len(cfg.Queries),
		}

		if isJSONOutput() {
			outputSuccess(data, nil)
			return nil
		}

		tbl := ui.NewTable(2)
		tbl.AddRow(ui.Bold.Render("config"), getConfigPath())
		tbl.AddRow(ui.Bold.Render("data"), resolveDataPath())
		tbl.AddRow(ui.Bold.Render("backend"), cfg.BackendOrDefault())
		tbl.AddRow(ui.Bold.Render("queries"), fmt.Sprint(len(cfg.Queries)))
		fmt.Print(tbl.String())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
