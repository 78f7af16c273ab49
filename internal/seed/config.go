// Package seed drives a running pitchside server with generated assessments
// and checks the progress it reports.
package seed

import "time"

// Config holds configuration for a seed run.
type Config struct {
	BaseURL      string        // Base URL of the service
	Athletes     int           // Number of athletes; each gets two assessments
	Workers      int           // Number of concurrent requests
	Timeout      time.Duration // HTTP request timeout
	WaitTimeout  time.Duration // How long to wait for workers to store benchmarks
	PollInterval time.Duration // How often /stats is polled while waiting
	Seed         uint64        // Random seed; zero picks one from the clock
	OutputFile   string        // Optional file for generated assessments
	Verbose      bool          // Enable verbose logging
}

// Stats holds run statistics.
type Stats struct {
	Generated         int
	Submitted         int
	Accepted          int
	Duplicate         int
	Failed            int
	ProgressRetrieved int
	Improvements      int
	Declines          int
	Maintained        int
	MeanOverallChange float64
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
