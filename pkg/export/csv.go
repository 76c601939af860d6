// Package export writes sensor tables as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ccollicutt/sensorlog/pkg/table"
)

// TimestampLayout is how timestamps are written.
const TimestampLayout = "2006-01-02 15:04:05.000"

// WriteCSV writes a "timestamp" column followed by the table columns, one
// record per row in table order.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)

	header := append([]string{"timestamp"}, t.Columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	record := make([]string, len(header))
	for i, r := range t.Rows {
		record[0] = r.Timestamp.Format(TimestampLayout)
		for j, v := range r.Values {
			record[j+1] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
