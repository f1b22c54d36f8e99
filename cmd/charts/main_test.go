package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRows(t *testing.T) {
	rows, err := loadRows("testdata/run/inference.csv")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.InDelta(t, 12.5, rows[0].WallClock, 1e-9)
	assert.InDelta(t, 10.0, rows[0].UserTime, 1e-9)
	assert.InDelta(t, 96.0, rows[0].CPUPercent, 1e-9)
	assert.Equal(t, int64(41984), rows[2].MaxRSS)
}

func TestLoadRowsMissingFile(t *testing.T) {
	rows, err := loadRows("testdata/run/redbox.csv")
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestLoadRowsHeaderOnly(t *testing.T) {
	rows, err := loadRows("testdata/run/loadmodel.csv")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoadRowsBadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n"), 0o644))

	_, err := loadRows(path)
	assert.Error(t, err)
}

func TestParseRowRejectsMalformed(t *testing.T) {
	_, err := parseRow("1.0,2.0,3.0%")
	assert.Error(t, err)

	_, err = parseRow("x,2.000,96.00%,12.500,40960")
	assert.Error(t, err)
}

// TestBuildChartsRegression renders the testdata run end to end.
func TestBuildChartsRegression(t *testing.T) {
	out := filepath.Join(t.TempDir(), "charts.html")

	require.NoError(t, buildCharts("testdata/run", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// Two phases have rows, one chart each.
	assert.Contains(t, string(data), "Inference (ms per iteration)")
	assert.Contains(t, string(data), "Total (ms per iteration)")
	assert.NotContains(t, string(data), "Load Model (ms per iteration)")
}

func TestBuildChartsEmptyRunDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "charts.html")
	assert.Error(t, buildCharts(t.TempDir(), out))
}
