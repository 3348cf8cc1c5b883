package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVLoader reads one outline line per record. The first record holds the
// column headers. Leading spaces of a record's first field are its
// indentation.
type CSVLoader struct{}

func (l *CSVLoader) Load(r io.Reader, filename string) (*Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &Document{Title: titleFromFilename(filename)}
	if len(records) == 0 {
		return doc, nil
	}

	doc.Headers = make([]string, 0, len(records[0]))
	for _, h := range records[0] {
		if h = cell(h); h != "" {
			doc.Headers = append(doc.Headers, h)
		}
	}

	var sb strings.Builder
	for _, rec := range records[1:] {
		first := rec[0]
		indent := len(first) - len(strings.TrimLeft(first, " "))

		cells := make([]string, 0, len(rec))
		for _, c := range rec {
			if c = cell(c); c != "" {
				cells = append(cells, c)
			}
		}
		if len(cells) == 0 {
			continue
		}
		sb.WriteString(strings.Repeat(" ", indent))
		sb.WriteString(strings.Join(cells, "\t"))
		sb.WriteString("\n")
	}
	doc.Text = sb.String()
	return doc, nil
}
