package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/sensorlog/pkg/output"
)

func TestRunPlot_SingleFile(t *testing.T) {
	logPath := writeFixture(t, "upload.csv", taggedLog)

	stdout, _, err := execute(t, NewPlotCommand(), logPath)
	require.NoError(t, err)
	assert.Equal(t, 0, ExitCode)
	assert.Contains(t, stdout, "format=tagged-csv")
	assert.Contains(t, stdout, "Summary: 3 rows (single file)")
	assert.Contains(t, stdout, "column-count")
}

func TestRunPlot_AlignedJSON(t *testing.T) {
	logPath := writeFixture(t, "upload.csv", taggedLog)
	refPath := writeFixture(t, "ref.log", referenceLog)

	stdout, _, err := execute(t, NewPlotCommand(), "-o", "json", "--raw", "--reference", refPath, logPath)
	require.NoError(t, err)
	assert.Equal(t, 0, ExitCode)

	var report output.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 2, report.Summary.Rows)
	assert.True(t, report.Summary.Aligned)
	require.Len(t, report.Inputs, 2)
	assert.Equal(t, "bracketed-triplet", report.Inputs[1].Format)
	assert.Len(t, report.Stats.Columns, 8)
	assert.NotEmpty(t, report.RawLines)
}

func TestRunPlot_ColumnsChartAndCSV(t *testing.T) {
	logPath := writeFixture(t, "upload.csv", taggedLog)
	refPath := writeFixture(t, "ref.log", referenceLog)
	dir := t.TempDir()
	chartPath := filepath.Join(dir, "chart.html")
	csvPath := filepath.Join(dir, "out.csv")

	_, stderr, err := execute(t, NewPlotCommand(),
		"-r", refPath,
		"--columns", "X axis,cmp_X axis,Speed",
		"--chart", chartPath,
		"--title", "Ride 42",
		"--csv", csvPath,
		logPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote chart to "+chartPath)
	assert.Contains(t, stderr, "Wrote 2 rows to "+csvPath)

	html, err := os.ReadFile(chartPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Ride 42")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "timestamp,X axis,cmp_X axis,Speed\n"+
		"2025-09-17 19:31:00.000,4,1,1.5\n"+
		"2025-09-17 19:31:02.000,6,7,2\n", string(data))
}

func TestRunPlot_TimeWindow(t *testing.T) {
	logPath := writeFixture(t, "upload.csv", taggedLog)

	stdout, _, err := execute(t, NewPlotCommand(), "-q", "--from", "2025-09-17_19:31:01", "--to", "2025-09-17_19:31:01:999", logPath)
	require.NoError(t, err)
	assert.Equal(t, "SensorLog: 1 rows, 4 columns, 1 skipped lines\n", stdout)
}

func TestRunPlot_NoValidData(t *testing.T) {
	logPath := writeFixture(t, "junk.log", "nothing here\nstill nothing\n")

	stdout, stderr, err := execute(t, NewPlotCommand(), logPath)
	require.NoError(t, err)
	assert.Equal(t, 1, ExitCode)
	assert.Contains(t, stdout, output.MsgNoData)
	assert.Contains(t, stderr, output.MsgNoData)
}

func TestRunPlot_NothingAligned(t *testing.T) {
	logPath := writeFixture(t, "upload.csv", taggedLog)
	refPath := writeFixture(t, "ref.log", "[2030-01-01_00:00:00] 1,2,3\n")
	chartPath := filepath.Join(t.TempDir(), "chart.html")

	_, stderr, err := execute(t, NewPlotCommand(), "-r", refPath, "--chart", chartPath, logPath)
	require.NoError(t, err)
	assert.Equal(t, 1, ExitCode)
	assert.Contains(t, stderr, output.MsgNoAlignment)
	assert.NoFileExists(t, chartPath)
}

func TestRunPlot_AlignedOutsideTimeWindow(t *testing.T) {
	logPath := writeFixture(t, "upload.csv", taggedLog)
	refPath := writeFixture(t, "ref.log", referenceLog)

	_, stderr, err := execute(t, NewPlotCommand(), "-r", refPath, "--from", "2030-01-01_00:00:00", logPath)
	require.NoError(t, err)
	assert.Equal(t, 1, ExitCode)
	assert.Contains(t, stderr, output.MsgNoRowsInRange)
	assert.NotContains(t, stderr, output.MsgNoAlignment)
}

func TestRunPlot_Errors(t *testing.T) {
	logPath := writeFixture(t, "upload.csv", taggedLog)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"/nonexistent/upload.csv"}},
		{"bad output", []string{"-o", "xml", logPath}},
		{"bad from", []string{"--from", "yesterday", logPath}},
		{"fractional seconds in to", []string{"--to", "2025-09-17_19:31:00.5", logPath}},
		{"to before from", []string{"--from", "2025-09-17_19:31:02", "--to", "2025-09-17_19:31:00", logPath}},
		{"comparison column without reference", []string{"--columns", "cmp_Speed", logPath}},
		{"unknown column", []string{"--columns", "Altitude", logPath}},
		{"missing config", []string{"-c", "/nonexistent/config.yaml", logPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, NewPlotCommand(), tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRunPlot_ConfigFile(t *testing.T) {
	logPath := writeFixture(t, "upload.csv", taggedLog)
	refPath := writeFixture(t, "ref.log", referenceLog)
	cfgPath := writeFixture(t, "config.yaml", "reference: "+refPath+"\noutput: json\n")

	stdout, _, err := execute(t, NewPlotCommand(), "-c", cfgPath, logPath)
	require.NoError(t, err)

	var report output.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.True(t, report.Summary.Aligned)
	assert.Equal(t, cfgPath, report.Metadata.ConfigFile)
}

func TestRunPlot_Webhook(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logPath := writeFixture(t, "upload.csv", taggedLog)

	_, _, err := execute(t, NewPlotCommand(), "--webhook-url", server.URL, logPath)
	require.NoError(t, err)
	assert.Equal(t, int32(0), hits.Load(), "on_empty must not fire for a non-empty result")

	_, _, err = execute(t, NewPlotCommand(), "--webhook-url", server.URL, "--webhook-trigger", "always", logPath)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}
