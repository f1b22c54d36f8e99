package harness

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/nvr-ai/wasm-bench/metrics"
	"github.com/nvr-ai/wasm-bench/sink"
)

// scratchFileName is reused across the run: each iteration's raw captured
// output lands here, and the final aggregate report overwrites it at the end.
const scratchFileName = "stats_summary.txt"

// phaseState pairs one phase's accumulator with its CSV sink.
type phaseState struct {
	average *metrics.Average
	sink    *sink.CSV
}

// Runner drives the benchmark loop. It owns all per-phase accumulators and
// sinks exclusively; iterations execute strictly one at a time because the
// harness measures the wall-clock cost of sequential runs.
type Runner struct {
	config  *Config
	runDir  string
	scratch string
	phases  map[string]*phaseState
}

// NewRunner validates cfg, creates the dated <YYYY_MM_DD>/<HH_MM_SS> run
// directory under the output root, and opens one CSV sink per phase. Any
// failure here is a configuration error: nothing has run yet and the caller
// should abort.
func NewRunner(cfg *Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	runDir := filepath.Join(cfg.OutputRoot, now.Format("2006_01_02"), now.Format("15_04_05"))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create run directory")
	}

	r := &Runner{
		config:  cfg,
		runDir:  runDir,
		scratch: filepath.Join(runDir, scratchFileName),
		phases:  make(map[string]*phaseState, len(metrics.Phases)),
	}

	for _, phase := range metrics.Phases {
		cs, err := sink.OpenCSV(filepath.Join(runDir, phase.FileName))
		if err != nil {
			r.Close()
			return nil, err
		}
		r.phases[phase.Key] = &phaseState{average: &metrics.Average{}, sink: cs}
	}

	return r, nil
}

// RunDir returns the dated directory holding this run's output files.
func (r *Runner) RunDir() string {
	return r.runDir
}

// ScratchPath returns the path of the reused summary file.
func (r *Runner) ScratchPath() string {
	return r.scratch
}

// Average returns the running average for a phase key.
func (r *Runner) Average(key string) *metrics.Average {
	return r.phases[key].average
}

// Run executes the configured command once per iteration, feeding each
// captured report through the parser, accumulators, and sinks. A failed
// iteration is logged and skipped, never retried; the run only stops early
// when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	for i := 1; i <= r.config.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		log.Printf("running iteration %d of %d", i, r.config.Iterations)
		if err := r.runIteration(ctx); err != nil {
			log.Printf("iteration %d skipped: %v", i, err)
			continue
		}
		if err := r.collectIteration(); err != nil {
			log.Printf("iteration %d skipped: %v", i, err)
		}
	}
	return nil
}

// runIteration invokes the external command with stdout and stderr combined
// into the scratch file, which is truncated first so a failed run cannot
// leave the previous iteration's report behind.
func (r *Runner) runIteration(ctx context.Context) error {
	if r.config.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(r.config.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	out, err := os.Create(r.scratch)
	if err != nil {
		return errors.Wrap(err, "failed to open scratch file")
	}
	defer out.Close()

	cmd := exec.CommandContext(ctx, r.config.Command, r.config.Args...)
	cmd.Dir = r.config.WorkDir
	cmd.Stdout = out
	cmd.Stderr = out
	if r.config.EnableStackTrace && r.config.BacktraceEnv != "" {
		cmd.Env = append(os.Environ(), r.config.BacktraceEnv)
	}

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "command %q failed", r.config.Command)
	}
	return nil
}

// collectIteration parses the scratch file produced by a successful command
// run.
func (r *Runner) collectIteration() error {
	f, err := os.Open(r.scratch)
	if err != nil {
		return errors.Wrap(err, "no stats summary file found")
	}
	defer f.Close()

	return r.collect(f)
}

// collect scans one iteration's captured report top to bottom. Each phase
// header hands the scanner to the block parser; well-formed blocks are merged
// into the phase's running average and appended to its CSV file, malformed
// blocks are discarded silently. A report may carry any subset of the
// recognized phases.
func (r *Runner) collect(report io.Reader) error {
	sc := bufio.NewScanner(report)
	for sc.Scan() {
		line := sc.Text()
		for _, phase := range metrics.Phases {
			if !strings.Contains(line, phase.Header) {
				continue
			}

			sample, ok := metrics.ParseBlock(sc)
			if !ok {
				break
			}

			state := r.phases[phase.Key]
			state.average.Observe(sample)
			if err := state.sink.WriteSample(sample); err != nil {
				return err
			}
			break
		}
	}
	return errors.Wrap(sc.Err(), "failed to scan stats summary")
}

// Close closes every CSV sink and returns the first error encountered.
func (r *Runner) Close() error {
	var firstErr error
	for _, state := range r.phases {
		if err := state.sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
