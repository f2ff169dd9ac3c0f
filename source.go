package horizon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirSource reads each sheet from a "<sheet>.csv" file in a directory.
type DirSource string

func (d DirSource) Records(_ context.Context, sheet string) ([]Record, error) {
	path := filepath.Join(string(d), sheet+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return records, nil
}

// TextSource holds sheets as delimited text in memory.
type TextSource map[string]string

func (t TextSource) Records(_ context.Context, sheet string) ([]Record, error) {
	text, ok := t[sheet]
	if !ok {
		return nil, fmt.Errorf("no sheet %q", sheet)
	}
	return DecodeRecords(text), nil
}
