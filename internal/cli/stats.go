package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "stats <file|->",
		Short: "Show outline statistics",
		Long: `The stats command reports node, top-level and leaf counts, the
deepest nesting level and the widest row of an outline.

Example:
  outline stats notes.txt
  outline stats notes.txt --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.load(args[0])
			if err != nil {
				return err
			}
			s := in.tree.Stats()
			if jsonOut {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			_, err = fmt.Fprintf(a.stdout,
				"Nodes:       %d\nTop level:   %d\nLeaves:      %d\nMax depth:   %d\nMax columns: %d\n",
				s.Nodes, s.TopLevel, s.Leaves, s.MaxDepth, s.MaxColumns)
			return err
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	return cmd
}
