package cli

import (
	"github.com/dgallion1/outlinetree/internal/query"
	"github.com/dgallion1/outlinetree/internal/render"
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		format string
		where  string
		title  string
	)
	cmd := &cobra.Command{
		Use:   "show <file|->",
		Short: "Print an outline",
		Long: `The show command parses an outline and prints it in one of the
supported formats: text, table, markdown, html, json, yaml or paths.

A --where filter keeps matching entries and their ancestors. Filters are
expressions over title, cells, depth, row, children, leaf and path.

Example:
  outline show notes.txt
  outline show notes.txt --format table --headers Name,Owner
  outline show notes.md --where 'depth <= 2'
  cat notes.txt | outline show - --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			in, err := a.load(args[0])
			if err != nil {
				return err
			}

			opts := render.Options{Title: in.title}
			if cmd.Flags().Changed("title") {
				opts.Title = title
			}
			if where != "" {
				filter, err := query.Compile(where)
				if err != nil {
					return err
				}
				if opts.Only, err = query.Select(in.tree, filter); err != nil {
					return err
				}
				a.log.Debug("filter applied", "where", filter.String(), "matches", len(opts.Only))
			}
			return render.Render(a.stdout, in.tree, f, opts)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatText), "Output format")
	cmd.Flags().StringVarP(&where, "where", "w", "", "Only show entries matching this expression")
	cmd.Flags().StringVar(&title, "title", "", "Document title (defaults to the file's)")
	return cmd
}
