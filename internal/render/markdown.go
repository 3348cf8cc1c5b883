package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/outlinetree/internal/outline"
	"github.com/yuin/goldmark"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`|`, `\|`,
)

// escapeMarkdown escapes inline markup, and a leading "-", "+" or "1." / "1)"
// that would otherwise open a nested list item.
func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(s)
	if s == "" {
		return s
	}
	if s[0] == '-' || s[0] == '+' {
		return `\` + s
	}
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(s) && (s[digits] == '.' || s[digits] == ')') {
		return s[:digits] + `\` + s[digits:]
	}
	return s
}

// Markdown renders the outline as a nested bullet list. The first cell is the
// item text; other cells follow after a colon, separated by " | ".
func Markdown(t *outline.Tree, opts Options) string {
	var sb strings.Builder
	if opts.Title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(opts.Title))
	}
	for _, r := range Flatten(t, opts) {
		sb.WriteString(strings.Repeat("  ", r.Depth-1))
		sb.WriteString("- ")
		sb.WriteString(escapeMarkdown(r.Cells[0]))
		if len(r.Cells) > 1 {
			rest := make([]string, 0, len(r.Cells)-1)
			for _, c := range r.Cells[1:] {
				rest = append(rest, escapeMarkdown(c))
			}
			sb.WriteString(": ")
			sb.WriteString(strings.Join(rest, ` \| `))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// HTML converts the Markdown rendering with goldmark. Raw HTML in cells is
// escaped, never passed through.
func HTML(w io.Writer, t *outline.Tree, opts Options) error {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(t, opts)), &buf); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
