package cli

import (
	"fmt"

	"github.com/dgallion1/outlinetree/internal/outline"
	"github.com/spf13/cobra"
)

func newHeadersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "headers <file|->",
		Short: "List column headers",
		Long: `The headers command prints the horizontal header of each column,
one per line, as a view would label them. Columns past the last header
label are listed with an empty label.

Example:
  outline headers people.csv
  outline headers notes.txt --headers Name,Owner`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.load(args[0])
			if err != nil {
				return err
			}
			m := outline.NewModel(in.tree)
			columns := max(len(in.tree.Headers()), in.tree.Stats().MaxColumns)
			for c := 0; c < columns; c++ {
				if _, err := fmt.Fprintf(a.stdout, "%d\t%s\n", c, m.HeaderLabel(c)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
