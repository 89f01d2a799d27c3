// Package buildinfo carries release metadata set at link time:
//
//	go build -ldflags "-X github.com/aidanlsb/resdb/internal/buildinfo.Version=v0.3.0"
package buildinfo

// Empty for local builds; `resdb version` then falls back to debug.BuildInfo.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
