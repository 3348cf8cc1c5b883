package render

import (
	"io"
	"strings"

	"github.com/dgallion1/outlinetree/internal/outline"
	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff compares the Paths renderings of two outlines line by line, so moved
// or renamed entries show up under their full breadcrumb.
func Diff(a, b *outline.Tree) []diffpatch.Diff {
	return DiffText(Paths(a, Options{}), Paths(b, Options{}))
}

// DiffText is a line-level diff of two texts.
func DiffText(a, b string) []diffpatch.Diff {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ca, cb, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// HasChanges reports whether diffs contain any insertion or deletion.
func HasChanges(diffs []diffpatch.Diff) bool {
	for _, d := range diffs {
		if d.Type != diffpatch.DiffEqual {
			return true
		}
	}
	return false
}

// WriteDiff prints diffs with "+ ", "- " and "  " line prefixes.
func WriteDiff(w io.Writer, diffs []diffpatch.Diff, colored bool) error {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	same := color.New(color.Reset)
	for _, c := range []*color.Color{added, removed, same} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, d := range diffs {
		prefix, c := "  ", same
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix, c = "+ ", added
		case diffpatch.DiffDelete:
			prefix, c = "- ", removed
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			if _, err := c.Fprintln(w, prefix+line); err != nil {
				return err
			}
		}
	}
	return nil
}
