package harness

import (
	"fmt"
	"os"

	"github.com/nvr-ai/wasm-bench/metrics"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

// reportBlock renders one phase block the way the inference runner emits it.
func reportBlock(header string, s metrics.Sample) string {
	return fmt.Sprintf("============= %s =============\n"+
		"Wall Clock Time: %.3fms\n"+
		"User time: %.3fms\n"+
		"System time: %.3fms\n"+
		"Max RSS: %d bytes\n"+
		"CPU Usage: %.2f%%\n"+
		"=======================================\n",
		header, s.WallClock, s.UserTime, s.SystemTime, s.MaxRSS, s.CPUUsage)
}
