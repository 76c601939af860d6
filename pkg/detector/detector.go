// Package detector decides which line layout a sensor log uses.
package detector

import (
	"strings"
)

// Detection holds the outcome of inspecting a file's first line.
type Detection struct {
	// Format is the layout every line of the file is read under.
	Format FileFormat

	// Line is the inspected line with any byte-order mark removed.
	Line string

	// Mismatches lists header columns that differed from the tagged-CSV
	// header. Empty when Format is FormatTaggedCSV.
	Mismatches []HeaderMismatch
}

// HeaderMismatch describes one header column that did not match.
type HeaderMismatch struct {
	Column   int    `json:"column"`   // 0-based column index
	Expected string `json:"expected"` // Expected header token
	Actual   string `json:"actual"`   // Token found, empty if the line had too few columns
}

// ConsumesFirstLine reports whether the first line is a header rather than data.
func (d *Detection) ConsumesFirstLine() bool {
	return d.Format == FormatTaggedCSV
}

// StripBOM removes a leading UTF-8 byte-order mark.
func StripBOM(line string) string {
	return strings.TrimPrefix(line, "\ufeff")
}

// Detect inspects the first line of a file. When every comma-separated token
// equals the tagged-CSV header token at the same position the file is tagged
// CSV; anything else selects the bracketed-triplet layout. Columns beyond the
// seventh are not compared.
func Detect(firstLine string) *Detection {
	line := StripBOM(firstLine)
	d := &Detection{Line: line}

	actual := strings.Split(strings.TrimSpace(line), ",")
	for i, expected := range HeaderTokens() {
		got := ""
		if i < len(actual) {
			got = strings.TrimSpace(actual[i])
		}
		if got != expected {
			d.Mismatches = append(d.Mismatches, HeaderMismatch{
				Column:   i,
				Expected: expected,
				Actual:   got,
			})
		}
	}

	if len(d.Mismatches) == 0 {
		d.Format = FormatTaggedCSV
	} else {
		d.Format = FormatBracketedTriplet
	}

	return d
}
