// Package csv decodes single-line price-list CSV rows into product records.
//
// Each physical line is one record; multi-line quoted fields are not
// supported. Quoting follows RFC4180-style semantics: fields containing
// commas or quotes are wrapped in double quotes, and a doubled quote inside
// a quoted field stands for one literal quote.
package csv

import "strings"

// DecodeLine splits one raw CSV line into its fields.
//
// The decoder is a two-state scan (quoted/unquoted): a comma outside quotes
// is a field boundary, a quote toggles the state, and "" inside quotes emits
// a literal quote. Empty fields between consecutive commas produce empty
// strings, a trailing comma produces a final empty field, and no whitespace
// trimming is performed.
func DecodeLine(line string) []string {
	fields := make([]string, 0, 8)
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]

		if c == '"' {
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
			continue
		}

		if c == ',' && !inQuotes {
			fields = append(fields, current.String())
			current.Reset()
			continue
		}

		current.WriteByte(c)
	}

	fields = append(fields, current.String())
	return fields
}

// EncodeLine joins fields into one CSV line, quoting any field that contains
// a comma or a quote. Inverse of DecodeLine for single-line records.
func EncodeLine(fields []string) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		if strings.ContainsAny(f, `,"`) {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
			continue
		}
		b.WriteString(f)
	}
	return b.String()
}
