package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDetect_TaggedCSV(t *testing.T) {
	logPath := writeFixture(t, "upload.csv", taggedLog)

	stdout, _, err := execute(t, NewDetectCommand(), logPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Detected format: tagged-csv")
	assert.Contains(t, stdout, "Lines read: 5")
	assert.Contains(t, stdout, "Samples parsed: 3")
	assert.Contains(t, stdout, "Lines skipped: 1")
	assert.Contains(t, stdout, "column-count")
	assert.Contains(t, stdout, "line 4:")
	assert.NotContains(t, stdout, "resembles")
}

func TestRunDetect_NearHeader(t *testing.T) {
	logPath := writeFixture(t, "upload.csv", "X axis,Y axis,Z axis,Accuracy,Speed,Azimuth,Time\n1,2,3,0,1.0,0,20250917193100\n")

	stdout, _, err := execute(t, NewDetectCommand(), logPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Detected format: bracketed-triplet")
	assert.Contains(t, stdout, "resembles the tagged CSV header")
	assert.Contains(t, stdout, `column 4: expected "GNSS Accuracy", got "Accuracy"`)
	assert.Contains(t, stdout, `column 7: expected "TIME", got "Time"`)
}

func TestRunDetect_TruncatesDiagnostics(t *testing.T) {
	var b strings.Builder
	b.WriteString("[2025-09-17_19:31:00] 1,2,3\n")
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, "junk %d\n", i)
	}
	logPath := writeFixture(t, "ref.log", b.String())

	stdout, _, err := execute(t, NewDetectCommand(), logPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "... 3 more (use --verbose)")

	stdout, _, err = execute(t, NewDetectCommand(), "-v", logPath)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "more (use --verbose)")
	assert.Contains(t, stdout, "line 9:")
}

func TestRunDetect_JSON(t *testing.T) {
	logPath := writeFixture(t, "ref.log", referenceLog+"garbage\n")

	stdout, _, err := execute(t, NewDetectCommand(), "-o", "json", logPath)
	require.NoError(t, err)

	var out DetectJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "bracketed-triplet", out.Format)
	assert.Equal(t, 4, out.LinesRead)
	assert.Equal(t, 3, out.Parsed)
	assert.Equal(t, 1, out.Skipped)
	assert.Equal(t, map[string]int{"pattern-mismatch": 1}, out.SkippedByKind)
	assert.Empty(t, out.Mismatches)
}

func TestRunDetect_Errors(t *testing.T) {
	logPath := writeFixture(t, "ref.log", referenceLog)

	_, _, err := execute(t, NewDetectCommand(), "/nonexistent/file.log")
	assert.Error(t, err)

	_, _, err = execute(t, NewDetectCommand(), "-o", "yaml", logPath)
	assert.Error(t, err)
}
