package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "./wasmtime-test", cfg.Command)
	assert.Equal(t, []string{"wasi-nn-module.wasm"}, cfg.Args)
	assert.Equal(t, "RUST_BACKTRACE=1", cfg.BacktraceEnv)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 0
	assert.Error(t, cfg.Validate())

	cfg.Iterations = -3
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Command = ""
	assert.Error(t, cfg.Validate())
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	cfg := DefaultConfig()
	cfg.Command = "/usr/local/bin/wasmtime-test"
	cfg.Args = []string{"module.wasm", "--dir=."}
	cfg.Iterations = 25
	cfg.TimeoutSeconds = 120
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, writeFile(path, `{"command": "/bin/echo"}`))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/bin/echo", loaded.Command)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "RUST_BACKTRACE=1", loaded.BacktraceEnv)
	assert.Equal(t, []string{"wasi-nn-module.wasm"}, loaded.Args)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
