package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ccollicutt/sensorlog/pkg/detector"
)

// Extract parses a single content line under the given file format.
// The returned error wraps one of the per-line failure kinds.
func Extract(format detector.FileFormat, line string) (Sample, error) {
	switch format {
	case detector.FormatTaggedCSV:
		return ExtractTaggedCSV(line)
	case detector.FormatBracketedTriplet:
		return ExtractBracketedTriplet(line)
	default:
		return Sample{}, fmt.Errorf("%w: unsupported format %s", ErrPatternMismatch, format)
	}
}

// ExtractTaggedCSV parses a 7-column tagged-CSV row. Accuracy and azimuth
// are ignored; the axis and speed columns accept integer or decimal values.
func ExtractTaggedCSV(line string) (Sample, error) {
	fields := strings.Split(line, ",")
	if len(fields) != detector.TaggedCSVColumns {
		return Sample{}, fmt.Errorf("%w: want %d, got %d", ErrColumnCount, detector.TaggedCSVColumns, len(fields))
	}

	var (
		s   Sample
		err error
	)
	if s.X, err = parseNumber(fields[detector.ColumnX], "X axis"); err != nil {
		return Sample{}, err
	}
	if s.Y, err = parseNumber(fields[detector.ColumnY], "Y axis"); err != nil {
		return Sample{}, err
	}
	if s.Z, err = parseNumber(fields[detector.ColumnZ], "Z axis"); err != nil {
		return Sample{}, err
	}
	if s.Speed, err = parseNumber(fields[detector.ColumnSpeed], "Speed"); err != nil {
		return Sample{}, err
	}

	tsText, err := ExpandCompactTimestamp(strings.TrimSpace(fields[detector.ColumnTime]))
	if err != nil {
		return Sample{}, err
	}
	if s.Timestamp, err = ParseTimestamp(tsText); err != nil {
		return Sample{}, err
	}

	return s, nil
}

// ExtractBracketedTriplet finds "[timestamp] a,b,c" anywhere in the line.
// Speed is not part of this layout and stays zero.
func ExtractBracketedTriplet(line string) (Sample, error) {
	m := detector.BracketedTripletPattern.FindStringSubmatch(line)
	if m == nil {
		return Sample{}, ErrPatternMismatch
	}

	var (
		s   Sample
		err error
	)
	axes := []*float64{&s.X, &s.Y, &s.Z}
	for i, dst := range axes {
		n, perr := strconv.ParseInt(m[i+2], 10, 64)
		if perr != nil {
			return Sample{}, fmt.Errorf("%w: %q: %v", ErrNumberFormat, m[i+2], perr)
		}
		*dst = float64(n)
	}

	if s.Timestamp, err = ParseTimestamp(m[1]); err != nil {
		return Sample{}, err
	}

	return s, nil
}

func parseNumber(field, column string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrNumberFormat, column, field)
	}
	return v, nil
}
