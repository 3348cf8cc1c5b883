package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/outlinetree/internal/render"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newDiffCmd(a *app) *cobra.Command {
	var colorMode string
	cmd := &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Compare two outlines",
		Long: `The diff command compares two outlines entry by entry. Each entry is
identified by its full path of titles, so a moved entry shows up as a
removal and an addition.

Example:
  outline diff old.txt new.txt
  outline diff old.md new.md --color never`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			colored, err := useColor(colorMode, a.stdout)
			if err != nil {
				return err
			}
			left, err := a.load(args[0])
			if err != nil {
				return err
			}
			right, err := a.load(args[1])
			if err != nil {
				return err
			}

			diffs := render.Diff(left.tree, right.tree)
			if !render.HasChanges(diffs) {
				a.log.Debug("outlines are identical", "a", args[0], "b", args[1])
				return nil
			}
			return render.WriteDiff(a.stdout, diffs, colored)
		},
	}
	cmd.Flags().StringVar(&colorMode, "color", "auto", "Colorize output: auto, always or never")
	return cmd
}

// useColor resolves a --color value. auto colors only terminals, and
// honors NO_COLOR.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("invalid --color %q: want auto, always or never", mode)
	}
}
