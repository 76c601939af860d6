// SensorLog - Sensor Log Alignment Tool
//
// SensorLog parses accelerometer and speed logs, aligns them against a
// reference recording by timestamp, and reports, charts or exports the result.
package main

import (
	"os"

	"github.com/ccollicutt/sensorlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
