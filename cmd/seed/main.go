package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/pitchside/internal/seed"
	"github.com/okian/pitchside/pkg/logger"
)

// Default configuration constants.
const (
	defaultAthletes     = 500
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 10 * time.Second
	defaultWait         = time.Minute
	defaultPollInterval = 250 * time.Millisecond
	defaultRunTimeout   = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		athletes = flag.Int("athletes", defaultAthletes, "Number of athletes to generate")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent requests")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		wait     = flag.Duration("wait", defaultWait, "How long to wait for benchmarks to be stored")
		seedVal  = flag.Uint64("seed", 0, "Random seed; 0 picks one from the clock")
		output   = flag.String("output", "", "Write the generated assessments to this JSON file")
		verbose  = flag.Bool("verbose", false, "Log individual failures")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	cfg := &seed.Config{
		BaseURL:      *baseURL,
		Athletes:     *athletes,
		Workers:      *workers,
		Timeout:      *timeout,
		WaitTimeout:  *wait,
		PollInterval: defaultPollInterval,
		Seed:         *seedVal,
		OutputFile:   *output,
		Verbose:      *verbose,
	}

	if _, err := seed.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "seed run failed", logger.Error(err))
		os.Exit(1)
	}
}
