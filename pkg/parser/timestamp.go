package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	secondsLayout = "2006-01-02 15:04:05"

	// compactLen is the length of a YYYYMMDDHHMMSS time label.
	compactLen = 14
)

// ParseTimestamp parses "YYYY-MM-DD_HH:MM:SS" or "YYYY-MM-DD_HH:MM:SS:fff"
// where fff is exactly three millisecond digits. Failures wrap
// ErrTimestampParse.
func ParseTimestamp(s string) (time.Time, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("%w: %q: expected date and time separated by '_'", ErrTimestampParse, s)
	}

	clock := strings.Split(parts[1], ":")
	if len(clock) != 3 && len(clock) != 4 {
		return time.Time{}, fmt.Errorf("%w: %q: expected 3 or 4 time fields, got %d", ErrTimestampParse, s, len(clock))
	}

	date := strings.Split(parts[0], "-")
	if !fixedDigits(date, 4, 2, 2) {
		return time.Time{}, fmt.Errorf("%w: %q: date must be YYYY-MM-DD", ErrTimestampParse, s)
	}
	if !fixedDigits(clock[:3], 2, 2, 2) {
		return time.Time{}, fmt.Errorf("%w: %q: time must be HH:MM:SS", ErrTimestampParse, s)
	}

	ts, err := time.Parse(secondsLayout, parts[0]+" "+strings.Join(clock[:3], ":"))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrTimestampParse, s, err)
	}

	if len(clock) == 4 {
		ms := clock[3]
		if len(ms) != 3 || !isDigits(ms) {
			return time.Time{}, fmt.Errorf("%w: %q: milliseconds must be 3 digits", ErrTimestampParse, s)
		}
		n, _ := strconv.Atoi(ms)
		ts = ts.Add(time.Duration(n) * time.Millisecond)
	}

	return ts, nil
}

// ExpandCompactTimestamp rewrites a 14-digit YYYYMMDDHHMMSS label into the
// "YYYY-MM-DD_HH:MM:SS" form accepted by ParseTimestamp. Labels of the wrong
// length or containing non-digits wrap ErrTimestampFormat.
func ExpandCompactTimestamp(label string) (string, error) {
	if len(label) != compactLen || !isDigits(label) {
		return "", fmt.Errorf("%w: %q: expected %d digits YYYYMMDDHHMMSS", ErrTimestampFormat, label, compactLen)
	}

	return label[0:4] + "-" + label[4:6] + "-" + label[6:8] + "_" +
		label[8:10] + ":" + label[10:12] + ":" + label[12:14], nil
}

// fixedDigits reports whether each field is a digit run of the given width.
func fixedDigits(fields []string, widths ...int) bool {
	if len(fields) != len(widths) {
		return false
	}
	for i, f := range fields {
		if len(f) != widths[i] || !isDigits(f) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
