package detector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		line string
		want FileFormat
	}{
		{
			name: "tagged csv header",
			line: "X axis,Y axis,Z axis,GNSS Accuracy,Speed,Azimuth,TIME",
			want: FormatTaggedCSV,
		},
		{
			name: "header with padding",
			line: " X axis , Y axis,Z axis ,GNSS Accuracy,Speed,Azimuth, TIME \r",
			want: FormatTaggedCSV,
		},
		{
			name: "header with byte-order mark",
			line: "\ufeffX axis,Y axis,Z axis,GNSS Accuracy,Speed,Azimuth,TIME",
			want: FormatTaggedCSV,
		},
		{
			name: "bracketed data line",
			line: "[2025-09-17_19:31:00:123] 4,30,2078",
			want: FormatBracketedTriplet,
		},
		{
			name: "header with wrong case",
			line: "x axis,Y axis,Z axis,GNSS Accuracy,Speed,Azimuth,TIME",
			want: FormatBracketedTriplet,
		},
		{
			name: "truncated header",
			line: "X axis,Y axis,Z axis",
			want: FormatBracketedTriplet,
		},
		{
			name: "empty line",
			line: "",
			want: FormatBracketedTriplet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.line)
			assert.Equal(t, tt.want, got.Format)
			assert.Equal(t, tt.want == FormatTaggedCSV, got.ConsumesFirstLine())
		})
	}
}

func TestDetect_Mismatches(t *testing.T) {
	d := Detect("X axis,Y axis,Z axis,Accuracy,Speed")

	require.Len(t, d.Mismatches, 3)
	assert.Equal(t, HeaderMismatch{Column: 3, Expected: "GNSS Accuracy", Actual: "Accuracy"}, d.Mismatches[0])
	assert.Equal(t, HeaderMismatch{Column: 5, Expected: "Azimuth"}, d.Mismatches[1])
	assert.Equal(t, HeaderMismatch{Column: 6, Expected: "TIME"}, d.Mismatches[2])
}

func TestDetect_StripsBOMFromLine(t *testing.T) {
	d := Detect("\ufeff[2025-09-17_19:31:00] 1,2,3")
	assert.Equal(t, "[2025-09-17_19:31:00] 1,2,3", d.Line)
}

func TestBracketedTripletPattern(t *testing.T) {
	m := BracketedTripletPattern.FindStringSubmatch("noise [2025-09-17_19:31:00:123]  -4,30,-2078 tail")
	require.Len(t, m, 5)
	assert.Equal(t, "2025-09-17_19:31:00:123", m[1])
	assert.Equal(t, []string{"-4", "30", "-2078"}, m[2:])

	assert.Nil(t, BracketedTripletPattern.FindStringSubmatch("[2025-09-17_19:31:00] 4,30"))
}

func TestFileFormat_String(t *testing.T) {
	assert.Equal(t, "tagged-csv", FormatTaggedCSV.String())
	assert.Equal(t, "bracketed-triplet", FormatBracketedTriplet.String())
	assert.Equal(t, "unknown", FormatUnknown.String())
}

func TestHeaderTokens(t *testing.T) {
	tokens := HeaderTokens()
	require.Len(t, tokens, TaggedCSVColumns)
	assert.Equal(t, TaggedCSVHeader, strings.Join(tokens, ","))
	assert.Equal(t, "GNSS Accuracy", tokens[ColumnAccuracy])
	assert.Equal(t, "TIME", tokens[ColumnTime])
}
