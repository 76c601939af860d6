package export

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/sensorlog/pkg/table"
)

func TestWriteCSV(t *testing.T) {
	ts := time.Date(2025, 9, 17, 19, 31, 0, 123*int(time.Millisecond), time.UTC)
	tbl := &table.Table{
		Columns: []string{"X axis", "cmp_Speed"},
		Rows: []table.Row{
			{Timestamp: ts, Values: []float64{4, 12.5}},
			{Timestamp: ts.Add(time.Second), Values: []float64{-0.25, 0}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))

	want := "timestamp,X axis,cmp_Speed\n" +
		"2025-09-17 19:31:00.123,4,12.5\n" +
		"2025-09-17 19:31:01.123,-0.25,0\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, &table.Table{Columns: table.SeriesColumns()}))
	assert.Equal(t, "timestamp,X axis,Y axis,Z axis,Speed\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSV_WriterError(t *testing.T) {
	err := WriteCSV(failingWriter{}, &table.Table{Columns: table.SeriesColumns()})
	assert.Error(t, err)
}
