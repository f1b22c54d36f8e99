package harness

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/nvr-ai/wasm-bench/metrics"
)

// PrintSummary writes the console subset of phase averages to w. Only the
// phases with a console name are printed, in report order.
func (r *Runner) PrintSummary(w io.Writer) {
	for _, phase := range metrics.Phases {
		if phase.ConsoleName == "" {
			continue
		}
		writeAverageBlock(w, phase.ConsoleName, r.phases[phase.Key].average)
	}
}

// PrintSpread writes per-phase wall-clock dispersion to w. This is an
// extension beyond the fixed summary format and is only emitted on request.
func (r *Runner) PrintSpread(w io.Writer) {
	for _, phase := range metrics.Phases {
		avg := r.phases[phase.Key].average
		if avg.Count == 0 {
			continue
		}
		sp := avg.WallClockSpread()
		fmt.Fprintf(w, "%s: wall clock min=%.3f ms max=%.3f ms stddev=%.3f ms (%d samples)\n",
			phase.SummaryName, sp.Min(), sp.Max(), sp.StdDev(), avg.Count)
	}
}

// SaveSummary overwrites the scratch file with the final aggregate report:
// all phase averages, each block followed by a blank line.
func (r *Runner) SaveSummary() error {
	f, err := os.Create(r.scratch)
	if err != nil {
		return errors.Wrap(err, "failed to open stats file for writing")
	}
	defer f.Close()

	for _, phase := range metrics.Phases {
		writeAverageBlock(f, phase.SummaryName, r.phases[phase.Key].average)
		fmt.Fprintln(f)
	}
	return nil
}

// writeAverageBlock renders one phase's averages in the fixed block format
// shared by the console summary and the persisted report.
func writeAverageBlock(w io.Writer, name string, avg *metrics.Average) {
	fmt.Fprintf(w, "====%s Metrics====\n", name)
	fmt.Fprintf(w, "Average Wall Clock Time: %.3f ms\n", avg.WallClock)
	fmt.Fprintf(w, "Average User Time: %.3f ms\n", avg.UserTime)
	fmt.Fprintf(w, "Average System Time: %.3f ms\n", avg.SystemTime)
	fmt.Fprintf(w, "Average Cpu Usage: %.2f %%\n", avg.CPUUsage)
	fmt.Fprintf(w, "Average Max RSS: %d\n", avg.MaxRSS)
}
