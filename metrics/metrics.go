// Package metrics - Parsing and aggregation of per-phase performance reports.
package metrics

// Sample holds one phase's measurements captured from a single benchmark
// iteration. Time fields are milliseconds, CPUUsage is a percentage, and
// MaxRSS is kept in whatever unit the report emits it in.
type Sample struct {
	UserTime   float32 `json:"user_time"`
	SystemTime float32 `json:"system_time"`
	CPUUsage   float32 `json:"cpu_usage"`
	WallClock  float32 `json:"wall_clock"`
	MaxRSS     int64   `json:"max_rss"`
}

// Phase identifies one named stage of the benchmarked workload.
type Phase struct {
	// Key is the short identifier used to look up per-phase state.
	Key string
	// Header is the substring that marks the start of the phase's block in
	// the captured report.
	Header string
	// FileName is the name of the phase's CSV file inside a run directory.
	FileName string
	// SummaryName is the name used in the persisted aggregate report.
	SummaryName string
	// ConsoleName is the name used in the console summary. Phases with an
	// empty ConsoleName are persisted but not printed.
	ConsoleName string
}

// Phases lists the recognized phases in the order they appear in the
// inference runner's report.
var Phases = []Phase{
	{
		Key:         "loadmodel",
		Header:      "loadmodel Metrics",
		FileName:    "loadmodel.csv",
		SummaryName: "Load Model",
		ConsoleName: "Load Model",
	},
	{
		Key:         "readimg",
		Header:      "readimg Metrics",
		FileName:    "readimg.csv",
		SummaryName: "Read Image (Red Box)",
		ConsoleName: "Read Image",
	},
	{
		Key:         "redbox",
		Header:      "RED BOX Phase Metrics",
		FileName:    "redbox.csv",
		SummaryName: "Red Box",
	},
	{
		Key:         "readimg_greenbox",
		Header:      "Pre-processing Metrics",
		FileName:    "readimg_greenbox.csv",
		SummaryName: "Read Image (Green Box)",
		ConsoleName: "Pre Processing",
	},
	{
		Key:         "inference",
		Header:      "Inference Metrics",
		FileName:    "inference.csv",
		SummaryName: "Inference",
		ConsoleName: "Inference",
	},
	{
		Key:         "postprocessing",
		Header:      "Post-processing Metrics",
		FileName:    "postprocessing.csv",
		SummaryName: "Postprocessing",
		ConsoleName: "Post Processing",
	},
	{
		Key:         "greenbox",
		Header:      "GREEN BOX Phase Metrics",
		FileName:    "greenbox.csv",
		SummaryName: "Green Box",
	},
	{
		Key:         "total",
		Header:      "Total Metrics",
		FileName:    "total.csv",
		SummaryName: "Total",
	},
}
