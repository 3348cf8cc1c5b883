// Package cli implements the outline command-line tool.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/outlinetree/internal/outline"
	"github.com/dgallion1/outlinetree/internal/source"
	"github.com/dgallion1/outlinetree/internal/version"
	"github.com/spf13/cobra"
)

// app carries the global flags and streams shared by every subcommand.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	verbose  bool
	headers  []string
	tabWidth int
	pdftotxt bool

	log *slog.Logger
}

// NewRootCmd builds the command tree reading from stdin and writing to
// stdout and stderr.
func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "outline",
		Short: "Parse and inspect indented outlines",
		Long: `outline reads indentation-structured text, one entry per line with
tab-separated columns, and prints the resulting tree.

Markdown, HTML, CSV, DOCX and PDF files are converted to outline text
first, based on their extension. Use "-" to read plain outline text from
standard input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
		},
	}
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("outline %s\n", version.String()))
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	pf.StringSliceVar(&a.headers, "headers", nil, "Column header labels, comma separated")
	pf.IntVar(&a.tabWidth, "tab-width", 0, "Expand leading tabs to this many spaces (0 keeps tabs literal)")
	pf.BoolVar(&a.pdftotxt, "pdftotext", false, "Fall back to the pdftotext binary for unreadable PDFs")

	rootCmd.AddCommand(
		newShowCmd(a),
		newStatsCmd(a),
		newDiffCmd(a),
		newHeadersCmd(a),
	)
	return rootCmd
}

// Execute runs the CLI against the process streams and exits non-zero on
// error.
func Execute() {
	cmd := NewRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loaded is an input file after conversion and parsing.
type loaded struct {
	title string
	tree  *outline.Tree
}

// load reads path, or standard input for "-", and parses it with the
// global header and tab-width flags.
func (a *app) load(path string) (*loaded, error) {
	var (
		doc *source.Document
		err error
	)
	if path == "-" {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, a.stdin); err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		doc = &source.Document{Text: buf.String()}
	} else {
		doc, err = a.loadFile(path)
		if err != nil {
			return nil, err
		}
	}

	var opts []outline.Option
	if len(a.headers) > 0 {
		opts = append(opts, outline.WithHeaders(a.headers...))
	}
	if a.tabWidth > 0 {
		opts = append(opts, outline.WithTabWidth(a.tabWidth))
	}
	tree := doc.Parse(opts...)
	a.log.Debug("parsed outline", "input", path, "nodes", tree.Len()-1, "headers", tree.Headers())
	return &loaded{title: doc.Title, tree: tree}, nil
}

func (a *app) loadFile(path string) (*source.Document, error) {
	loader, err := source.ForFile(path, source.Options{PDFFallbackPdftotext: a.pdftotxt})
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a.log.Debug("loading file", "path", path, "loader", fmt.Sprintf("%T", loader))
	doc, err := loader.Load(f, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}
