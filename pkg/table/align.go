package table

import (
	"github.com/ccollicutt/sensorlog/pkg/parser"
)

// Align inner-joins two series on exact millisecond timestamp equality.
// Rows without a counterpart on the other side are dropped. Rows follow
// primary order; a primary timestamp that occurs several times in the
// reference yields one row per reference match, in reference order.
func Align(primary, reference *parser.ParsedSeries) *Table {
	t := &Table{
		Columns: AlignedColumns(),
		Aligned: true,
	}
	if primary.Len() == 0 || reference.Len() == 0 {
		return t
	}

	byTime := make(map[int64][]int, reference.Len())
	for i, s := range reference.Samples {
		key := s.Timestamp.UnixMilli()
		byTime[key] = append(byTime[key], i)
	}

	for i, p := range primary.Samples {
		for _, j := range byTime[p.Timestamp.UnixMilli()] {
			ref := reference.Samples[j]
			values := append(sampleValues(p), sampleValues(ref)...)
			t.Rows = append(t.Rows, Row{
				Timestamp: p.Timestamp,
				Values:    values,
				Raw:       []string{primary.Raw[i], reference.Raw[j]},
			})
		}
	}

	return t
}
