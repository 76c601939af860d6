// Package convert rewrites exported sensor CSV files into the tagged-CSV
// layout the parser understands.
package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ccollicutt/sensorlog/pkg/detector"
)

// DefaultDate is the date prefix used for time-of-day only inputs.
const DefaultDate = "20250909"

// Input column names.
const (
	ColAccelX          = "Accel_X"
	ColAccelY          = "Accel_Y"
	ColAccelZ          = "Accel_Z"
	ColHorizontalSpeed = "Horizontal_Speed"
	ColVerticalSpeed   = "Vertical_Speed"
	ColTime            = "Time"
)

// ErrMissingColumn is returned when the input header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Options controls conversion.
type Options struct {
	// Date is the YYYYMMDD prefix for every TIME value.
	Date string
}

// SensorCSV reads a header-led sensor CSV from r and writes tagged CSV to w.
// Accuracy and azimuth are written as 0; speed is the magnitude of the
// horizontal and vertical components with one decimal. It returns the
// number of data rows written.
func SensorCSV(r io.Reader, w io.Writer, o Options) (int, error) {
	date := o.Date
	if date == "" {
		date = DefaultDate
	}
	if len(date) != 8 {
		return 0, fmt.Errorf("date %q must be YYYYMMDD", date)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("reading header: %w", err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return 0, err
	}

	if _, err := io.WriteString(w, detector.TaggedCSVHeader+"\n"); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	rows := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("reading row %d: %w", rows+1, err)
		}

		line, err := convertRecord(record, cols, date)
		if err != nil {
			return rows, fmt.Errorf("row %d: %w", rows+1, err)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return rows, fmt.Errorf("writing row %d: %w", rows+1, err)
		}
		rows++
	}

	return rows, nil
}

func indexColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(detector.StripBOM(name))] = i
	}

	for _, name := range []string{ColAccelX, ColAccelY, ColAccelZ, ColHorizontalSpeed, ColVerticalSpeed, ColTime} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return cols, nil
}

func convertRecord(record []string, cols map[string]int, date string) (string, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[cols[name]])
	}

	h, err := strconv.ParseFloat(field(ColHorizontalSpeed), 64)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", ColHorizontalSpeed, err)
	}
	v, err := strconv.ParseFloat(field(ColVerticalSpeed), 64)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", ColVerticalSpeed, err)
	}
	speed := math.Sqrt(h*h + v*v)

	return fmt.Sprintf("%s,%s,%s,0,%.1f,0,%s",
		field(ColAccelX), field(ColAccelY), field(ColAccelZ), speed,
		date+compactClock(field(ColTime))), nil
}

// compactClock turns "H:MM:SS" into "HHMMSS"; anything else becomes "000000".
func compactClock(s string) string {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return "000000"
	}
	hours := parts[0]
	if len(hours) < 2 {
		hours = strings.Repeat("0", 2-len(hours)) + hours
	}
	return hours + parts[1] + parts[2]
}
