package cli

import (
	"fmt"
	"io"

	"todo-cli/internal/docs"
	"todo-cli/internal/format"
	"todo-cli/internal/tui"

	"github.com/spf13/cobra"
)

type docView struct {
	Topic    string `json:"topic"`
	Markdown string `json:"markdown"`
}

// WriteText renders the markdown for the terminal.
func (v docView) WriteText(w io.Writer) error {
	_, err := fmt.Fprintln(w, tui.RenderMarkdown(v.Markdown, 80))
	return err
}

type topicsView struct {
	Topics []docs.Topic `json:"topics"`
}

func (v topicsView) WriteText(w io.Writer) error {
	rows := make([][]string, 0, len(v.Topics))
	for _, t := range v.Topics {
		rows = append(rows, []string{t.Name, t.Title})
	}
	return format.WriteTable(w, rows)
}

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, envelope{Data: topicsView{Topics: docs.Topics()}})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `todo docs` to list topics)", topic))
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, envelope{Data: docView{Topic: topic, Markdown: body}})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")

	return cmd
}
