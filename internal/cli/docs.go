package cli

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	builtindocs "github.com/aidanlsb/resdb/docs"
	"github.com/aidanlsb/resdb/internal/ui"
)

const docsIndexPath = "index.yaml"

var (
	docsDisplayContext = func() *ui.DisplayContext { return ui.DisplayFor(os.Stdout) }
	docsMarkdownRender = ui.RenderMarkdown
)

type docsTopic struct {
	ID      string `yaml:"id" json:"id"`
	Title   string `yaml:"title" json:"title"`
	Path    string `yaml:"path" json:"path"`
	Summary string `yaml:"summary" json:"summary,omitempty"`
}

type docsIndex struct {
	Topics []docsTopic `yaml:"topics"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the bundled documentation",
	Long: `List documentation topics, or show one.

  resdb docs                    # list topics
  resdb docs query-language     # show a topic`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := loadDocsIndex(builtindocs.FS)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if len(args) == 0 {
			return listDocsTopics(index)
		}

		topic, ok := findDocsTopic(index, args[0])
		if !ok {
			return handleErrorMsg(ErrTopicNotFound,
				fmt.Sprintf("unknown docs topic %q", args[0]),
				"Run 'resdb docs' to list topics")
		}
		return showDocsTopic(topic)
	},
}

func loadDocsIndex(fsys fs.FS) (*docsIndex, error) {
	raw, err := fs.ReadFile(fsys, docsIndexPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read docs index")
	}
	var index docsIndex
	if err := yaml.Unmarshal(raw, &index); err != nil {
		return nil, errors.Wrap(err, "failed to parse docs index")
	}
	return &index, nil
}

func findDocsTopic(index *docsIndex, id string) (docsTopic, bool) {
	id = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(id)), ".md")
	for _, topic := range index.Topics {
		if topic.ID == id {
			return topic, true
		}
	}
	return docsTopic{}, false
}

func listDocsTopics(index *docsIndex) error {
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"topics": index.Topics}, &Meta{Count: len(index.Topics)})
		return nil
	}

	tbl := ui.NewTable(2)
	for _, topic := range index.Topics {
		tbl.AddRow(ui.AccentBold.Render(topic.ID), topic.Summary)
	}
	fmt.Print(tbl.String())
	fmt.Println()
	fmt.Println(ui.Hint("Show a topic with: resdb docs <topic>"))
	return nil
}

func showDocsTopic(topic docsTopic) error {
	content, err := fs.ReadFile(builtindocs.FS, topic.Path)
	if err != nil {
		return handleError(ErrInternal, errors.Wrapf(err, "failed to read %s", topic.Path), "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"topic":   topic.ID,
			"title":   topic.Title,
			"path":    topic.Path,
			"content": string(content),
		}, nil)
		return nil
	}

	renderedContent := string(content)
	display := docsDisplayContext()
	if display.IsTTY {
		if rendered, renderErr := docsMarkdownRender(string(content), display.TermWidth); renderErr == nil {
			renderedContent = rendered
		}
	}

	fmt.Print(renderedContent)
	if !strings.HasSuffix(renderedContent, "\n") {
		fmt.Println()
	}
	return nil
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
