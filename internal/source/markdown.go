package source

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownLoader maps headings and nested lists to outline depth.
type MarkdownLoader struct{}

func (l *MarkdownLoader) Load(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	h := newHeadingStack()
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			h.heading(node.Level, inlineText(node, src))
		case *ast.List:
			addMarkdownList(h.top(), node, src)
		case *ast.Paragraph, *ast.Blockquote:
			h.paragraph(inlineText(node, src))
		}
	}

	return &Document{
		Title: titleFromFilename(filename),
		Text:  outlineText(h.root),
	}, nil
}

func addMarkdownList(parent *section, list *ast.List, src []byte) {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		title := cell(inlineText(item, src))
		target := parent
		if title != "" {
			target = parent.add(title)
		}
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				addMarkdownList(target, sub, src)
			}
		}
	}
}

// inlineText gets the text content of a goldmark node, leaving out nested
// lists.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.List:
			if c != n {
				return ast.WalkSkipChildren, nil
			}
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			return ast.WalkSkipChildren, nil
		}
		if c.Kind() == ast.KindParagraph || c.Kind() == ast.KindTextBlock {
			if c.PreviousSibling() != nil {
				buf.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
