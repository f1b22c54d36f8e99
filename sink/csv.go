// Package sink - Per-phase CSV destinations for benchmark samples.
package sink

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/nvr-ai/wasm-bench/metrics"
)

// Header is the fixed first row of every phase CSV file.
const Header = "user_time,system_time,cpu_percent,wallclock_time,max_rss"

// CSV appends one row per well-formed sample to a single phase's file. The
// file stays open in append mode for the lifetime of a run.
type CSV struct {
	path string
	file *os.File
}

// OpenCSV opens the phase file in append mode, creating it if needed, and
// writes the header row.
func OpenCSV(path string) (*CSV, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open csv file %s", path)
	}
	if _, err := fmt.Fprintln(f, Header); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "failed to write csv header to %s", path)
	}
	return &CSV{path: path, file: f}, nil
}

// Path returns the file path the sink writes to.
func (c *CSV) Path() string {
	return c.path
}

// WriteSample appends one row in iteration order. Times are three-decimal
// fixed point, the CPU value carries a '%' sigil, and the RSS value is a
// plain integer. A row is either written whole or not at all.
func (c *CSV) WriteSample(s metrics.Sample) error {
	_, err := fmt.Fprintf(c.file, "%.3f,%.3f,%.2f%%,%.3f,%d\n",
		s.UserTime, s.SystemTime, s.CPUUsage, s.WallClock, s.MaxRSS)
	return errors.Wrapf(err, "failed to write csv row to %s", c.path)
}

// Close closes the underlying file.
func (c *CSV) Close() error {
	return errors.Wrapf(c.file.Close(), "failed to close csv file %s", c.path)
}
