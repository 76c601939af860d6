package parser

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ccollicutt/sensorlog/pkg/detector"
)

// DefaultMaxLineBytes is the longest line Build accepts before failing.
const DefaultMaxLineBytes = 1024 * 1024

// Result is the outcome of parsing one sensor log.
type Result struct {
	// Series holds the successfully parsed samples.
	Series ParsedSeries

	// Detection describes how the layout was chosen.
	Detection *detector.Detection

	// Diagnostics lists every skipped line in file order.
	Diagnostics []Diagnostic

	// LinesRead is the number of physical lines consumed.
	LinesRead int
}

// Format returns the detected file format.
func (r *Result) Format() detector.FileFormat {
	return r.Detection.Format
}

// Parsed returns the number of lines that produced a sample.
func (r *Result) Parsed() int {
	return r.Series.Len()
}

// Empty reports whether no sample survived.
func (r *Result) Empty() bool {
	return r.Series.Len() == 0
}

// DiagnosticsByKind counts diagnostics per Diagnostic.Kind.
func (r *Result) DiagnosticsByKind() map[string]int {
	counts := make(map[string]int)
	for _, d := range r.Diagnostics {
		counts[d.Kind()]++
	}
	return counts
}

// Builder drives format detection and line extraction over a whole file.
// A Builder holds no per-run state and may be reused.
type Builder struct {
	logger       *slog.Logger
	maxLineBytes int
}

// Option configures the Builder.
type Option func(*Builder)

// WithLogger sets the logger skipped lines are reported to at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMaxLineBytes sets the maximum accepted line length.
func WithMaxLineBytes(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxLineBytes = n
		}
	}
}

// NewBuilder creates a Builder. Without WithLogger nothing is logged.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxLineBytes: DefaultMaxLineBytes,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildFile opens path (see Open) and parses it.
func (b *Builder) BuildFile(path string) (*Result, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	result, err := b.Build(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return result, nil
}

// Build parses a sensor log. The first non-blank line selects the format;
// for tagged CSV it is the header, otherwise it is parsed as data. Lines
// that fail extraction become diagnostics. An error is returned only when
// the input itself cannot be read or decoded.
func (b *Builder) Build(r io.Reader) (*Result, error) {
	result := &Result{}

	initial := 64 * 1024
	if b.maxLineBytes < initial {
		initial = b.maxLineBytes
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initial), b.maxLineBytes)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("line %d: %w", lineNum, ErrUndecodable)
		}

		if result.Detection == nil {
			if strings.TrimSpace(detector.StripBOM(line)) == "" {
				continue
			}
			result.Detection = detector.Detect(line)
			b.logger.Debug("detected format",
				"format", result.Detection.Format.String(),
				"line", lineNum)
			if result.Detection.ConsumesFirstLine() {
				continue
			}
			line = result.Detection.Line
		} else if strings.TrimSpace(line) == "" {
			continue
		}

		sample, err := Extract(result.Detection.Format, line)
		if err != nil {
			d := Diagnostic{LineNum: lineNum, Line: line, Err: err}
			result.Diagnostics = append(result.Diagnostics, d)
			b.logger.Debug("skipping line", "line", lineNum, "kind", d.Kind(), "error", err)
			continue
		}

		result.Series.add(sample, line, lineNum)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input at line %d: %w", lineNum+1, err)
	}

	result.LinesRead = lineNum
	if result.Detection == nil {
		result.Detection = &detector.Detection{Format: detector.FormatUnknown}
	}

	b.logger.Debug("parsed series",
		"format", result.Detection.Format.String(),
		"samples", result.Parsed(),
		"skipped", len(result.Diagnostics))

	return result, nil
}
