package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nvr-ai/wasm-bench/harness"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to a JSON run configuration file")
		command    = flag.String("command", "", "Inference command to benchmark (overrides config)")
		outputDir  = flag.String("output", "", "Output root directory (overrides config)")
		timeout    = flag.Int("timeout", 0, "Per-iteration timeout in seconds (overrides config)")
		verbose    = flag.Bool("verbose", false, "Print per-phase wall-clock spread after the summary")
	)
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	iterations, err := strconv.Atoi(flag.Arg(0))
	if err != nil || iterations <= 0 {
		fmt.Fprintln(os.Stderr, "Error: Number of iterations must be a positive integer")
		os.Exit(1)
	}

	stackTrace, err := strconv.Atoi(flag.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: enable_stack_trace must be an integer")
		os.Exit(1)
	}

	cfg := harness.DefaultConfig()
	if *configFile != "" {
		cfg, err = harness.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Iterations = iterations
	cfg.EnableStackTrace = stackTrace != 0
	if *command != "" {
		cfg.Command = *command
	}
	if *outputDir != "" {
		cfg.OutputRoot = *outputDir
	}
	if *timeout > 0 {
		cfg.TimeoutSeconds = *timeout
	}

	runner, err := harness.NewRunner(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up run: %v\n", err)
		os.Exit(1)
	}

	// Individual iteration failures are logged and skipped inside Run; the
	// only error surfaced here is cancellation.
	if err := runner.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Run interrupted: %v\n", err)
	}

	if err := runner.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close csv files: %v\n", err)
	}

	fmt.Println("Benchmarking completed. CSV files generated")
	runner.PrintSummary(os.Stdout)
	if *verbose {
		fmt.Println()
		runner.PrintSpread(os.Stdout)
	}

	if err := runner.SaveSummary(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save summary: %v\n", err)
	}
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <num_iterations> <enable_stack_trace>\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "Benchmark harness for the wasmtime inference runner.\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  num_iterations      number of times to run the inference command (positive integer)\n")
		fmt.Fprintf(os.Stderr, "  enable_stack_trace  nonzero enables RUST_BACKTRACE on the invoked command\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s 10 0\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "  %s -config ./run.json -verbose 100 1\n", filepath.Base(os.Args[0]))
	}
}
