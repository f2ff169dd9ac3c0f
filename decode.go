package horizon

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// DecodeRecords parses delimited text into records.
//
// The first non-blank line is the header, every other non-blank line is a
// data row. Fields are separated by ',' or ';' (both can appear in the same
// file) and may be double quoted to protect separators. Blank lines, including
// the final newline, are skipped.
//
// It never fails: malformed lines still produce a record.
func DecodeRecords(text string) []Record {
	var rows [][]string
	text = strings.TrimPrefix(text, "\uFEFF")
	for _, line := range strings.Split(text, "\n") {
		if trimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitLine(line))
	}
	return RecordsFromRows(rows)
}

// ReadRecords reads all of r and decodes it with DecodeRecords.
func ReadRecords(r io.Reader) ([]Record, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading delimited text: %w", err)
	}
	return DecodeRecords(string(content)), nil
}

// splitLine cuts a line on every ',' or ';' followed by an even number of
// quote characters, that is a separator outside of any quoted field.
func splitLine(line string) []string {
	quotesAfter := strings.Count(line, `"`)
	var fields []string
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			quotesAfter--
		case ',', ';':
			if quotesAfter%2 == 0 {
				fields = append(fields, cleanField(line[start:i]))
				start = i + 1
			}
		}
	}
	return append(fields, cleanField(line[start:]))
}

// cleanField drops one leading and one trailing quote, then trims.
func cleanField(f string) string {
	f = strings.TrimPrefix(f, `"`)
	f = strings.TrimSuffix(f, `"`)
	return trimSpace(f)
}

// trimSpace trims white space and byte order marks, which spreadsheet exports
// like to prepend to the header.
func trimSpace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
