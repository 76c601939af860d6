package chart

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/sensorlog/pkg/table"
)

func alignedTable() *table.Table {
	ts := time.Date(2025, 9, 17, 19, 31, 0, 0, time.UTC)
	return &table.Table{
		Columns: table.AlignedColumns(),
		Aligned: true,
		Rows: []table.Row{
			{Timestamp: ts, Values: []float64{1, 2, 3, 4, 5, 6, 7, 8}},
			{Timestamp: ts.Add(100 * time.Millisecond), Values: []float64{2, 3, 4, 5, 6, 7, 8, 9}},
		},
	}
}

func TestIsSpeedColumn(t *testing.T) {
	assert.True(t, IsSpeedColumn("Speed"))
	assert.True(t, IsSpeedColumn("cmp_Speed"))
	assert.False(t, IsSpeedColumn("X axis"))
	assert.False(t, IsSpeedColumn("cmp_Z axis"))
}

func TestBuild_SeriesPerColumn(t *testing.T) {
	line := Build(alignedTable(), Options{})

	require.Len(t, line.MultiSeries, 8)
	assert.Equal(t, "X axis", line.MultiSeries[0].Name)
	assert.Equal(t, "cmp_Speed", line.MultiSeries[7].Name)

	var buf bytes.Buffer
	require.NoError(t, line.Render(&buf))
	assert.Contains(t, buf.String(), `"yAxisIndex":1`)
}

func TestBuild_NoSpeedAxisWithoutSpeedColumns(t *testing.T) {
	tbl, err := alignedTable().Select([]string{"X axis", "cmp_X axis"})
	require.NoError(t, err)

	line := Build(tbl, Options{Title: "Axes"})

	assert.Len(t, line.MultiSeries, 2)

	var buf bytes.Buffer
	require.NoError(t, line.Render(&buf))
	assert.NotContains(t, buf.String(), `"yAxisIndex":1`)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, alignedTable(), Options{Title: "Ride 42"}))

	html := buf.String()
	assert.Contains(t, html, "Ride 42")
	assert.Contains(t, html, "2025-09-17 19:31:00.100")
	assert.Contains(t, html, "cmp_Speed")
}
