package docs

import "embed"

// FS contains the Markdown docs bundled with the resdb binary.
//
//go:embed index.yaml *.md
var FS embed.FS
