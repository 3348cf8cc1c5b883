// Package source loads outline text from files of various formats. Each
// loader maps the structure of its format (headings, lists, indentation)
// onto the two-space indentation and tab-separated cells that outline.Parse
// reads.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/outlinetree/internal/outline"
)

// Document is loaded outline text plus what the format says about it.
type Document struct {
	Title   string   // from metadata or filename
	Headers []string // column labels; nil means the outline defaults
	Text    string   // outline text
}

// Parse builds the outline tree. opts are applied after the document's
// own headers, so they can override them.
func (d *Document) Parse(opts ...outline.Option) *outline.Tree {
	all := make([]outline.Option, 0, len(opts)+1)
	if d.Headers != nil {
		all = append(all, outline.WithHeaders(d.Headers...))
	}
	all = append(all, opts...)
	return outline.Parse(d.Text, all...)
}

// Loader converts raw file bytes into outline text.
type Loader interface {
	Load(r io.Reader, filename string) (*Document, error)
}

// Options tune loader behavior.
type Options struct {
	// PDFFallbackPdftotext retries failed PDF extraction with the pdftotext
	// binary when it is installed.
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions that can be loaded.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".outline":  true,
	".otl":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the loader for a filename.
func ForFile(filename string, opts Options) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".outline", ".otl", "":
		return &TextLoader{}, nil
	case ".md", ".markdown":
		return &MarkdownLoader{}, nil
	case ".csv":
		return &CSVLoader{}, nil
	case ".html", ".htm":
		return &HTMLLoader{}, nil
	case ".pdf":
		return &PDFLoader{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXLoader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported. Names
// without an extension load as plain outline text.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == "" || SupportedExtensions[ext]
}

// titleFromFilename strips directories and the extension.
func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
