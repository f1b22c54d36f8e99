// Package harness - Iteration driver and reporting for the inference
// benchmark. The harness runs an external inference binary repeatedly,
// captures its report, and aggregates per-phase metrics.
package harness

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Config describes one benchmark run.
type Config struct {
	// Command is the external inference binary to invoke.
	Command string `json:"command"`
	// Args are passed to the command on every iteration.
	Args []string `json:"args"`
	// WorkDir is the working directory for the command; empty inherits the
	// harness's own.
	WorkDir string `json:"work_dir"`
	// OutputRoot is the directory under which the dated run directory is
	// created.
	OutputRoot string `json:"output_root"`
	// Iterations is the number of times the command is run.
	Iterations int `json:"iterations"`
	// EnableStackTrace adds BacktraceEnv to the command's environment.
	EnableStackTrace bool `json:"enable_stack_trace"`
	// BacktraceEnv is the environment assignment applied when stack traces
	// are enabled.
	BacktraceEnv string `json:"backtrace_env"`
	// TimeoutSeconds bounds a single iteration; 0 disables the timeout. A
	// timed-out command is a skipped iteration, not a failed run.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// DefaultConfig returns the configuration matching the historical harness
// invocation.
func DefaultConfig() *Config {
	return &Config{
		Command:      "./wasmtime-test",
		Args:         []string{"wasi-nn-module.wasm"},
		OutputRoot:   ".",
		Iterations:   1,
		BacktraceEnv: "RUST_BACKTRACE=1",
	}
}

// Validate checks the config before any filesystem work happens.
func (c *Config) Validate() error {
	if c.Iterations <= 0 {
		return errors.New("number of iterations must be a positive integer")
	}
	if c.Command == "" {
		return errors.New("command must not be empty")
	}
	return nil
}

// LoadConfig loads a run configuration from a JSON file. Fields absent from
// the file keep their defaults.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return config, nil
}

// Save writes the configuration to a JSON file.
func (c *Config) Save(filename string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}
