// Package parser turns sensor log text into timestamped sample series.
package parser

import (
	"errors"
	"fmt"
	"time"
)

// Sample is one parsed sensor record.
type Sample struct {
	// Timestamp is a wall-clock instant with millisecond resolution.
	// It carries no zone information and is stored as UTC.
	Timestamp time.Time

	// X, Y and Z are the three axis readings.
	X float64
	Y float64
	Z float64

	// Speed is only present in tagged-CSV files; zero otherwise.
	Speed float64
}

// ParsedSeries holds samples in file order together with the exact source
// line each one came from.
type ParsedSeries struct {
	Samples []Sample

	// Raw is the source line for Samples[i].
	Raw []string

	// LineNums is the 1-based line number for Samples[i].
	LineNums []int
}

// Len returns the number of samples.
func (s *ParsedSeries) Len() int {
	return len(s.Samples)
}

func (s *ParsedSeries) add(sample Sample, raw string, lineNum int) {
	s.Samples = append(s.Samples, sample)
	s.Raw = append(s.Raw, raw)
	s.LineNums = append(s.LineNums, lineNum)
}

// Per-line failure kinds. A line failing with any of these is dropped and
// recorded as a Diagnostic; parsing continues with the next line.
var (
	ErrColumnCount     = errors.New("malformed row: wrong column count")
	ErrNumberFormat    = errors.New("malformed numeric field")
	ErrTimestampFormat = errors.New("malformed time label")
	ErrPatternMismatch = errors.New("line does not match expected pattern")
	ErrTimestampParse  = errors.New("invalid timestamp")
)

// ErrUndecodable is returned when the input is not valid UTF-8 text. Unlike
// the per-line kinds it stops the whole parse.
var ErrUndecodable = errors.New("input is not valid UTF-8")

// Diagnostic explains why a line was skipped.
type Diagnostic struct {
	// LineNum is the 1-based line number in the source.
	LineNum int

	// Line is the skipped line content.
	Line string

	// Err wraps one of the per-line failure kinds.
	Err error
}

// Kind returns a short stable name for the failure kind.
func (d Diagnostic) Kind() string {
	switch {
	case errors.Is(d.Err, ErrColumnCount):
		return "column-count"
	case errors.Is(d.Err, ErrNumberFormat):
		return "number-format"
	case errors.Is(d.Err, ErrTimestampFormat):
		return "timestamp-format"
	case errors.Is(d.Err, ErrPatternMismatch):
		return "pattern-mismatch"
	case errors.Is(d.Err, ErrTimestampParse):
		return "timestamp-parse"
	default:
		return "other"
	}
}

// String formats the diagnostic for display.
func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %v", d.LineNum, d.Err)
}
