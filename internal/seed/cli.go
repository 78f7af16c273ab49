package seed

import "os"

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`pitchside seed tool
===================

Generates a baseline and a follow-up assessment for each athlete, submits
them to a running server and checks the progress it reports.

Usage:
  go run ./cmd/seed [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -athletes int
        Number of athletes to generate (default 500)
  -workers int
        Number of concurrent requests (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -wait duration
        How long to wait for benchmarks to be stored (default 1m)
  -seed uint
        Random seed; 0 picks one from the clock
  -output string
        Write the generated assessments to this JSON file
  -verbose
        Log individual failures
  -help
        Show this help message

Examples:
  go run ./cmd/seed -athletes 2000 -workers 32
  go run ./cmd/seed -seed 42 -output seeded.json
`)
}
