package source

import (
	"fmt"
	"io"
)

// TextLoader reads outline text as is.
type TextLoader struct{}

func (l *TextLoader) Load(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	return &Document{
		Title: titleFromFilename(filename),
		Text:  string(data),
	}, nil
}
