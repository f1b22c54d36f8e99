package metrics

import (
	"bufio"
	"strconv"
	"strings"
)

// Labels recognized inside a metric block. Matching happens anywhere in the
// line, not only at the start, because the report indents and decorates lines
// freely.
const (
	labelWallClock  = "Wall Clock Time:"
	labelUserTime   = "User time:"
	labelSystemTime = "System time:"
	labelCPUUsage   = "CPU Usage:"
	labelMaxRSS     = "Max RSS:"
)

const blockFieldCount = 5

// ParseBlock consumes one phase's metric block from sc, which must be
// positioned just after the phase header line. It reads until a terminator
// line (a row of '=' characters) or end of stream.
//
// Returns:
//   - Sample: the extracted measurements.
//   - bool: true only when all five fields were found. Blocks with missing or
//     unparseable fields are discarded so a truncated phase never skews the
//     run's averages.
func ParseBlock(sc *bufio.Scanner) (Sample, bool) {
	var s Sample
	found := make(map[string]struct{}, blockFieldCount)

	for sc.Scan() {
		line := sc.Text()
		if isTerminator(line) {
			break
		}

		switch {
		case strings.Contains(line, labelWallClock):
			if v, ok := parseTimeValue(line, labelWallClock); ok {
				s.WallClock = v
				found[labelWallClock] = struct{}{}
			}
		case strings.Contains(line, labelUserTime):
			if v, ok := parseTimeValue(line, labelUserTime); ok {
				s.UserTime = v
				found[labelUserTime] = struct{}{}
			}
		case strings.Contains(line, labelSystemTime):
			if v, ok := parseTimeValue(line, labelSystemTime); ok {
				s.SystemTime = v
				found[labelSystemTime] = struct{}{}
			}
		case strings.Contains(line, labelCPUUsage):
			if v, ok := parseFloatValue(line, labelCPUUsage); ok {
				s.CPUUsage = v
				found[labelCPUUsage] = struct{}{}
			}
		case strings.Contains(line, labelMaxRSS):
			if v, ok := parseIntValue(line, labelMaxRSS); ok {
				s.MaxRSS = v
				found[labelMaxRSS] = struct{}{}
			}
		}
	}

	if len(found) != blockFieldCount {
		return Sample{}, false
	}
	return s, true
}

// isTerminator reports whether line is a block terminator: non-empty after
// trimming and made up entirely of '=' characters.
func isTerminator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if r != '=' {
			return false
		}
	}
	return true
}

// parseTimeValue extracts a duration value in milliseconds. The unit suffix
// may be glued to the number ("12.5ms") or a separate token ("12.5 ms");
// seconds are scaled up, microseconds scaled down, and anything else is
// assumed to already be milliseconds.
func parseTimeValue(line, label string) (float32, bool) {
	num, unit, ok := splitValue(line, label)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(num, 32)
	if err != nil {
		return 0, false
	}
	switch unit {
	case "s", "sec":
		v *= 1000
	case "µs", "us", "microseconds":
		v /= 1000
	}
	return float32(v), true
}

// parseFloatValue extracts a bare float, ignoring any unit token such as a
// trailing '%'.
func parseFloatValue(line, label string) (float32, bool) {
	num, _, ok := splitValue(line, label)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(num, 32)
	if err != nil {
		return 0, false
	}
	return float32(v), true
}

// parseIntValue extracts a bare integer, ignoring trailing text such as
// " bytes".
func parseIntValue(line, label string) (int64, bool) {
	num, _, ok := splitValue(line, label)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// splitValue isolates the numeric token following label and its unit suffix,
// if any. Extra words after the value are ignored.
func splitValue(line, label string) (num, unit string, ok bool) {
	idx := strings.Index(line, label)
	if idx < 0 {
		return "", "", false
	}

	fields := strings.Fields(line[idx+len(label):])
	if len(fields) == 0 {
		return "", "", false
	}

	tok := fields[0]
	i := 0
	for i < len(tok) {
		c := tok[i]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' {
			i++
			continue
		}
		break
	}
	if i == 0 {
		return "", "", false
	}

	num, unit = tok[:i], tok[i:]
	if unit == "" && len(fields) > 1 {
		unit = fields[1]
	}
	return num, unit, true
}
