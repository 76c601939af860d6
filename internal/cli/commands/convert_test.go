package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sensorCSV = `Time,Accel_X,Accel_Y,Accel_Z,Horizontal_Speed,Vertical_Speed
7:05:09,1,2,3,3,4
`

func TestRunConvert_Stdout(t *testing.T) {
	in := writeFixture(t, "raw.csv", sensorCSV)

	stdout, _, err := execute(t, NewConvertCommand(), "--date", "20250917", in)
	require.NoError(t, err)
	assert.Equal(t, "X axis,Y axis,Z axis,GNSS Accuracy,Speed,Azimuth,TIME\n"+
		"1,2,3,0,5.0,0,20250917070509\n", stdout)
}

func TestRunConvert_FileAndPlot(t *testing.T) {
	in := writeFixture(t, "raw.csv", sensorCSV)
	out := filepath.Join(t.TempDir(), "upload.csv")

	_, stderr, err := execute(t, NewConvertCommand(), "-o", out, in)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Converted 1 rows to "+out)

	stdout, _, err := execute(t, NewPlotCommand(), "-q", out)
	require.NoError(t, err)
	assert.Equal(t, "SensorLog: 1 rows, 4 columns, 0 skipped lines\n", stdout)

	_, _, err = execute(t, NewConvertCommand(), "-o", out, in)
	require.Error(t, err, "existing output must not be overwritten")

	_, _, err = execute(t, NewConvertCommand(), "-f", "-o", out, in)
	require.NoError(t, err)
}

func TestRunConvert_MissingColumn(t *testing.T) {
	in := writeFixture(t, "raw.csv", "Time,Accel_X\n1:00:00,1\n")
	out := filepath.Join(t.TempDir(), "upload.csv")

	_, _, err := execute(t, NewConvertCommand(), "-o", out, in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")

	assert.NoFileExists(t, out)
}
