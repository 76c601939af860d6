package detector

import (
	"regexp"
	"strings"
)

// FileFormat identifies the line layout a sensor log follows.
type FileFormat int

const (
	// FormatUnknown is returned for input with no detection line.
	FormatUnknown FileFormat = iota

	// FormatTaggedCSV is the header-declared 7-column comma layout with a
	// compact YYYYMMDDHHMMSS timestamp in the last column.
	FormatTaggedCSV

	// FormatBracketedTriplet is free text carrying a bracketed timestamp
	// followed by three comma-separated signed integers.
	FormatBracketedTriplet
)

// String returns the human-readable format name.
func (f FileFormat) String() string {
	switch f {
	case FormatTaggedCSV:
		return "tagged-csv"
	case FormatBracketedTriplet:
		return "bracketed-triplet"
	default:
		return "unknown"
	}
}

// TaggedCSV column positions.
const (
	ColumnX = iota
	ColumnY
	ColumnZ
	ColumnAccuracy
	ColumnSpeed
	ColumnAzimuth
	ColumnTime

	// TaggedCSVColumns is the fixed number of fields in a tagged-CSV row.
	TaggedCSVColumns
)

// TaggedCSVHeader is the header line that marks a tagged-CSV file.
const TaggedCSVHeader = "X axis,Y axis,Z axis,GNSS Accuracy,Speed,Azimuth,TIME"

var headerTokens = strings.Split(TaggedCSVHeader, ",")

// HeaderTokens returns the expected tagged-CSV header tokens in column order.
// The returned slice is shared and must not be modified.
func HeaderTokens() []string {
	return headerTokens
}

// BracketedTripletPatternStr matches "[YYYY-MM-DD_HH:MM:SS(:fff)] a,b,c" anywhere
// in a line. Group 1 is the timestamp text, groups 2-4 the integers.
const BracketedTripletPatternStr = `\[(\d{4}-\d{2}-\d{2}_\d{2}:\d{2}:\d{2}(?::\d{3})?)\]\s*(-?\d+),(-?\d+),(-?\d+)`

// BracketedTripletPattern is the compiled form of BracketedTripletPatternStr.
var BracketedTripletPattern = regexp.MustCompile(BracketedTripletPatternStr)
