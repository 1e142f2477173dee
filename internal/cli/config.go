package cli

import (
	"fmt"
	"io"
	"strings"

	"todo-cli/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings in config.json",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

type configView struct {
	Path      string         `json:"path"`
	File      *config.Config `json:"file"`
	Effective struct {
		APIURL   string `json:"apiUrl"`
		Timeout  string `json:"timeout"`
		DebugLog string `json:"debugLog,omitempty"`
		Format   string `json:"format"`
	} `json:"effective"`
}

func (v configView) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "path      %s\napiUrl    %s\ntimeout   %s\ndebugLog  %s\nformat    %s\n",
		v.Path, v.Effective.APIURL, v.Effective.Timeout, v.Effective.DebugLog, v.Effective.Format)
	return err
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the config file and the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			v := configView{Path: path, File: app.cfg}
			v.Effective.APIURL = app.APIURL
			v.Effective.Timeout = app.Timeout.String()
			v.Effective.DebugLog = app.DebugLog
			v.Effective.Format = app.Format
			return writeOut(cmd, app, envelope{Data: v})
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one setting (empty value clears it)",
		Long:  "Keys: " + strings.Join(config.Keys(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg
			if cfg == nil {
				cfg = &config.Config{}
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := config.Save(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope{Data: cfg})
		},
	}
}
