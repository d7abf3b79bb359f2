// package csv implements the comma-separated codec used for score import and
// export.
//
// The dialect is deliberately lenient on parse: a field may be wrapped in
// double quotes, a doubled quote inside a quoted field is a literal quote, a
// comma inside a quoted field is not a separator, and every field is
// whitespace-trimmed. Encoding always quotes every field. The standard
// library's encoding/csv is stricter on both counts (no per-field trimming,
// hard errors on stray quotes), so round-tripping files produced by
// spreadsheet tools requires this codec.
package csv

import (
	"strings"

	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/shared"
)

// Header is the column row written at the top of every export and discarded
// from the top of every import.
const Header = "Title,Composer,Arranger,Genre,Genre 2,Difficulty,Duration,Notes"

// ParseLine splits one line into fields, honoring quoting and escaping.
func ParseLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				// Escaped quote
				current.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// EncodeLine joins fields into one CSV line, wrapping every field in double
// quotes with internal quotes doubled.
func EncodeLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// Split breaks a CSV document into its data lines: blank lines are dropped
// and the first non-blank line (the header) is discarded.
//
// Returns [shared.ErrEmptyFile] when the document has no data rows.
func Split(doc string) ([]string, error) {
	var lines []string
	for _, line := range strings.Split(doc, "\n") {
		if strings.TrimSpace(strings.TrimSuffix(line, "\r")) != "" {
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
	}

	if len(lines) < 2 {
		return nil, shared.ErrEmptyFile
	}

	return lines[1:], nil
}

// RowScore maps a parsed row to a [models.Score] using the fixed positional
// order of [Header]. Missing trailing fields are left empty.
func RowScore(fields []string) models.Score {
	at := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	return models.Score{
		Title:      at(0),
		Composer:   at(1),
		Arranger:   at(2),
		Genre:      at(3),
		Genre2:     at(4),
		Difficulty: at(5),
		Duration:   at(6),
		Notes:      at(7),
	}
}

// EncodeScore renders a score as one CSV line in [Header] order.
func EncodeScore(s models.Score) string {
	return EncodeLine([]string{
		s.Title,
		s.Composer,
		s.Arranger,
		s.Genre,
		s.Genre2,
		s.Difficulty,
		s.Duration,
		s.Notes,
	})
}
