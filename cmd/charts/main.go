package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nvr-ai/wasm-bench/metrics"
	"github.com/nvr-ai/wasm-bench/sink"
)

var rootCmd = &cobra.Command{
	Use:          "charts <rundir> <outputfile>",
	SilenceUsage: true,
	Args:         cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := buildCharts(args[0], args[1])
		if err != nil {
			cmd.PrintErr(err)
			os.Exit(1)
		}
		return nil
	},
}

// This renders line charts of per-iteration timings from a benchmark run
// directory (the dated folder holding the per-phase CSV files).
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// row is one parsed CSV line of a phase file.
type row struct {
	UserTime   float64
	SystemTime float64
	CPUPercent float64
	WallClock  float64
	MaxRSS     int64
}

func buildCharts(runDir, outputFile string) error {
	page := components.NewPage()
	page.SetPageTitle("wasm-bench results")
	page.SetLayout("flex")

	rendered := 0
	for _, phase := range metrics.Phases {
		rows, err := loadRows(filepath.Join(runDir, phase.FileName))
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			// Phases that never produced a sample have no chart.
			continue
		}
		page.AddCharts(phaseChart(phase, rows))
		rendered++
	}

	if rendered == 0 {
		return errors.Errorf("no phase csv rows found in %s", runDir)
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("closing output file: %v", cerr)
		}
	}()

	if err := page.Render(f); err != nil {
		return errors.Wrap(err, "failed to render charts")
	}
	log.Printf("Charts generated at %s", outputFile)

	return nil
}

// loadRows parses one phase's CSV file. A missing file means the phase never
// ran and yields no rows rather than an error.
func loadRows(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	var rows []row
	sc := bufio.NewScanner(f)

	if !sc.Scan() {
		return nil, sc.Err()
	}
	if sc.Text() != sink.Header {
		return nil, errors.Errorf("%s: unexpected header %q", path, sc.Text())
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		r, err := parseRow(line)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		rows = append(rows, r)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", path)
	}

	return rows, nil
}

func parseRow(line string) (row, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 5 {
		return row{}, errors.Errorf("malformed row %q", line)
	}

	var (
		r   row
		err error
	)
	if r.UserTime, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return row{}, errors.Wrapf(err, "user_time in %q", line)
	}
	if r.SystemTime, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return row{}, errors.Wrapf(err, "system_time in %q", line)
	}
	if r.CPUPercent, err = strconv.ParseFloat(strings.TrimSuffix(fields[2], "%"), 64); err != nil {
		return row{}, errors.Wrapf(err, "cpu_percent in %q", line)
	}
	if r.WallClock, err = strconv.ParseFloat(fields[3], 64); err != nil {
		return row{}, errors.Wrapf(err, "wallclock_time in %q", line)
	}
	if r.MaxRSS, err = strconv.ParseInt(fields[4], 10, 64); err != nil {
		return row{}, errors.Wrapf(err, "max_rss in %q", line)
	}
	return r, nil
}

// phaseChart builds one line chart with a series per timing metric, indexed
// by iteration.
func phaseChart(phase metrics.Phase, rows []row) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s (ms per iteration)", phase.SummaryName),
		}),
		charts.WithAnimation(false))

	xs := make([]string, len(rows))
	wall := make([]opts.LineData, len(rows))
	user := make([]opts.LineData, len(rows))
	system := make([]opts.LineData, len(rows))
	for i, r := range rows {
		xs[i] = strconv.Itoa(i + 1)
		wall[i] = opts.LineData{Value: r.WallClock}
		user[i] = opts.LineData{Value: r.UserTime}
		system[i] = opts.LineData{Value: r.SystemTime}
	}

	chart.SetXAxis(xs)
	chart.AddSeries("wall clock", wall)
	chart.AddSeries("user time", user)
	chart.AddSeries("system time", system)

	return chart
}
