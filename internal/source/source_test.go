package source

import (
	"strings"
	"testing"

	"github.com/dgallion1/outlinetree/internal/outline"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"notes.txt", "*source.TextLoader"},
		{"plan.outline", "*source.TextLoader"},
		{"plan.OTL", "*source.TextLoader"},
		{"README", "*source.TextLoader"},
		{"doc.md", "*source.MarkdownLoader"},
		{"doc.markdown", "*source.MarkdownLoader"},
		{"sheet.csv", "*source.CSVLoader"},
		{"page.htm", "*source.HTMLLoader"},
		{"report.pdf", "*source.PDFLoader"},
		{"memo.docx", "*source.DOCXLoader"},
	}
	for _, tt := range tests {
		l, err := ForFile(tt.filename, Options{})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.filename, err)
		}
		if got := typeName(l); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.filename, tt.want, got)
		}
	}

	if _, err := ForFile("image.png", Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestForFile_PDFFallback(t *testing.T) {
	l, err := ForFile("a.pdf", Options{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.(*PDFLoader).FallbackPdftotext {
		t.Error("expected fallback to be enabled")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	for _, name := range []string{"a.txt", "a.MD", "a.html", "a.csv", "a.pdf", "a.docx", "a.otl", "Makefile"} {
		if !IsSupportedExtension(name) {
			t.Errorf("expected %s to be supported", name)
		}
	}
	for _, name := range []string{"a.png", "a.xlsx", "a.go"} {
		if IsSupportedExtension(name) {
			t.Errorf("expected %s to be unsupported", name)
		}
	}
}

func TestTextLoader_Verbatim(t *testing.T) {
	input := "A\tone\n  B\n\tC\r\n"
	doc, err := (&TextLoader{}).Load(strings.NewReader(input), "dir/notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if doc.Text != input {
		t.Errorf("expected text unchanged, got %q", doc.Text)
	}
	if doc.Headers != nil {
		t.Errorf("expected nil headers, got %v", doc.Headers)
	}
}

func TestMarkdownLoader_HeadingsAndLists(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

More A.

- item one
- item *two*
  - nested

## Section B
`
	doc, err := (&MarkdownLoader{}).Load(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", doc.Title)
	}

	want := "Title\tIntro text.\n" +
		"  Section A\tSection A content.\n" +
		"    More A.\n" +
		"    item one\n" +
		"    item two\n" +
		"      nested\n" +
		"  Section B\n"
	if doc.Text != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, doc.Text)
	}

	tree := doc.Parse()
	if got := tree.Stats().MaxDepth; got != 4 {
		t.Errorf("expected max depth 4, got %d", got)
	}
}

func TestMarkdownLoader_NoHeadings(t *testing.T) {
	input := "Just a paragraph\nwrapped over lines.\n\n1. first\n2. second\n"
	doc, err := (&MarkdownLoader{}).Load(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Just a paragraph wrapped over lines.\nfirst\nsecond\n"
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
}

func TestHTMLLoader(t *testing.T) {
	input := `<html><head><title>Guide</title></head><body>
<nav><a href="/">home</a></nav>
<h1>Start</h1><p>Overview here.</p>
<ul><li>One<ul><li>One.a</li></ul></li><li>Two</li></ul>
<h2>Details</h2><p>First</p><p>Second</p>
<script>var x = 1;</script>
</body></html>`

	doc, err := (&HTMLLoader{}).Load(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Guide" {
		t.Errorf("expected title %q, got %q", "Guide", doc.Title)
	}

	want := "Start\tOverview here.\n" +
		"  One\n" +
		"    One.a\n" +
		"  Two\n" +
		"  Details\tFirst\n" +
		"    Second\n"
	if doc.Text != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, doc.Text)
	}
}

func TestHTMLLoader_TitleFallsBackToFilename(t *testing.T) {
	doc, err := (&HTMLLoader{}).Load(strings.NewReader("<p>x</p>"), "index.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "index" {
		t.Errorf("expected title %q, got %q", "index", doc.Title)
	}
	if doc.Text != "x\n" {
		t.Errorf("expected %q, got %q", "x\n", doc.Text)
	}
}

func TestCSVLoader(t *testing.T) {
	input := "Title,Summary,Owner\n" +
		"Plan,top,\n" +
		"  Build,\"compile, link\",ci\n" +
		"  Test,,qa\n" +
		"Ship\n"

	doc, err := (&CSVLoader{}).Load(strings.NewReader(input), "plan.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantHeaders := []string{"Title", "Summary", "Owner"}
	if strings.Join(doc.Headers, ",") != strings.Join(wantHeaders, ",") {
		t.Errorf("expected headers %v, got %v", wantHeaders, doc.Headers)
	}

	want := "Plan\ttop\n" +
		"  Build\tcompile, link\tci\n" +
		"  Test\tqa\n" +
		"Ship\n"
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}

	tree := doc.Parse()
	if got := tree.Headers(); len(got) != 3 || got[2] != "Owner" {
		t.Errorf("expected csv headers on the tree, got %v", got)
	}
	plan, _ := tree.Root().Child(0)
	if plan.ChildCount() != 2 {
		t.Errorf("expected Plan to have 2 children, got %d", plan.ChildCount())
	}
}

func TestCSVLoader_Empty(t *testing.T) {
	doc, err := (&CSVLoader{}).Load(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" || doc.Headers != nil {
		t.Errorf("expected empty document, got %+v", doc)
	}
}

func TestDocument_ParseOptionsOverrideHeaders(t *testing.T) {
	doc := &Document{Headers: []string{"A", "B"}, Text: "x\ty"}
	tree := doc.Parse(outline.WithHeaders("Name"))
	if got := tree.Headers(); len(got) != 1 || got[0] != "Name" {
		t.Errorf("expected [Name], got %v", got)
	}
	if got := doc.Parse().Headers(); len(got) != 2 {
		t.Errorf("expected document headers, got %v", got)
	}
	if got := (&Document{Text: "x"}).Parse().Headers(); len(got) != len(outline.DefaultHeaders) {
		t.Errorf("expected default headers, got %v", got)
	}
}

func TestBinaryLoaders_RejectGarbage(t *testing.T) {
	for _, l := range []Loader{&PDFLoader{}, &DOCXLoader{}} {
		if _, err := l.Load(strings.NewReader("not a real file"), "x"); err == nil {
			t.Errorf("%s: expected error for invalid input", typeName(l))
		}
	}
}

func typeName(l Loader) string {
	switch l.(type) {
	case *TextLoader:
		return "*source.TextLoader"
	case *MarkdownLoader:
		return "*source.MarkdownLoader"
	case *CSVLoader:
		return "*source.CSVLoader"
	case *HTMLLoader:
		return "*source.HTMLLoader"
	case *PDFLoader:
		return "*source.PDFLoader"
	case *DOCXLoader:
		return "*source.DOCXLoader"
	}
	return "unknown"
}
