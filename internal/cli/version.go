package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/resdb/internal/buildinfo"
	"github.com/aidanlsb/resdb/internal/config"
	"github.com/aidanlsb/resdb/internal/index"
	"github.com/aidanlsb/resdb/internal/logger"
)

// versionInfo describes the build and the query engines it carries.
type versionInfo struct {
	Version        string   `json:"version"`
	Commit         string   `json:"commit,omitempty"`
	Date           string   `json:"date,omitempty"`
	GoVersion      string   `json:"go_version"`
	Platform       string   `json:"platform"`
	Backends       []string `json:"backends"`
	DefaultBackend string   `json:"default_backend"`
	SQLiteVersion  string   `json:"sqlite_version,omitempty"`
	IndexSchema    int      `json:"index_schema"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show resdb version and query engines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		fmt.Printf("resdb %s\n", info.Version)
		if info.Commit != "" {
			fmt.Printf("commit:   %s %s\n", info.Commit, info.Date)
		}
		fmt.Printf("go:       %s %s\n", info.GoVersion, info.Platform)
		fmt.Printf("backends: memory, sqlite (default %s)\n", info.DefaultBackend)
		if info.SQLiteVersion != "" {
			fmt.Printf("sqlite:   %s, index schema %d\n", info.SQLiteVersion, info.IndexSchema)
		}
		return nil
	},
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:        "devel",
		Commit:         buildinfo.Commit,
		Date:           buildinfo.Date,
		GoVersion:      runtime.Version(),
		Platform:       runtime.GOOS + "/" + runtime.GOARCH,
		Backends:       []string{config.BackendMemory, config.BackendSQLite},
		DefaultBackend: config.BackendMemory,
		IndexSchema:    index.CurrentDBVersion,
	}
	if cfg := getConfig(); cfg != nil {
		info.DefaultBackend = cfg.BackendOrDefault()
	}

	// Link-time metadata wins; module and VCS stamps fill the gaps.
	if buildinfo.Version != "" {
		info.Version = buildinfo.Version
	}
	if bi, ok := readBuildInfo(); ok && bi != nil {
		if info.Version == "devel" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == "":
				info.Commit = s.Value
			case s.Key == "vcs.time" && info.Date == "":
				info.Date = s.Value
			}
		}
	}

	db, err := index.Open()
	if err != nil {
		logger.Warnw("sqlite backend unavailable", "error", err)
		return info
	}
	defer db.Close()
	if v, err := db.EngineVersion(); err == nil {
		info.SQLiteVersion = v
	} else {
		logger.Warnw("sqlite backend unavailable", "error", err)
	}
	return info
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
