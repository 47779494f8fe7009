package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/loganalyze/internal/operation"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load(NewViper())

	assert.Equal(t, "report.json", cfg.Output.Path)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Nil(t, cfg.Input.Logs)
	assert.False(t, cfg.Input.KeepEmpty, "empty fields are skipped by default")
	assert.Zero(t, cfg.Output.Keep)
	assert.Empty(t, cfg.Operations.Kinds())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("LOGANALYZE_LOGS", "a.log, b.log")
	t.Setenv("LOGANALYZE_OUTPUT", "out.json")
	t.Setenv("LOGANALYZE_OPS_EVENTS", "true")
	t.Setenv("LOGANALYZE_LOG_LEVEL", "debug")

	cfg := Load(NewViper())

	assert.Equal(t, []string{"a.log", "b.log"}, cfg.Input.Logs)
	assert.Equal(t, "out.json", cfg.Output.Path)
	assert.True(t, cfg.Operations.Events)
	assert.False(t, cfg.Operations.MostFrequent)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loganalyze.yaml")
	data := "logs:\n  - one.log\n  - two.log,three.log\nformat: squid.toml\nops:\n  totalbytes: true\n  mostfreqip: true\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	v := NewViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	cfg := Load(v)

	assert.Equal(t, []string{"one.log", "two.log", "three.log"}, cfg.Input.Logs)
	assert.Equal(t, "squid.toml", cfg.Input.FormatPath)
	assert.Equal(t, []operation.Kind{operation.KindMostFrequent, operation.KindTotalBytes}, cfg.Operations.Kinds())
}

func TestKindsOrder(t *testing.T) {
	ops := OperationsConfig{TotalBytes: true, Events: true, LeastFrequent: true, MostFrequent: true}
	assert.Equal(t, operation.Kinds, ops.Kinds())
}

func TestValidate(t *testing.T) {
	valid := Config{
		Input:      InputConfig{Logs: []string{"a.log"}},
		Output:     OutputConfig{Path: "report.json"},
		Operations: OperationsConfig{Events: true},
	}
	require.NoError(t, valid.Validate())

	err := Config{}.Validate()
	for _, want := range []error{ErrNoLogs, ErrNoOperations, ErrNoOutput} {
		assert.ErrorIs(t, err, want)
	}
}

func TestValidateLevelAndKeep(t *testing.T) {
	cfg := Config{
		Input:      InputConfig{Logs: []string{"a.log"}},
		Output:     OutputConfig{Path: "report.json", Keep: -1},
		Operations: OperationsConfig{Events: true},
		LogLevel:   "loud",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "keep")
	assert.ErrorContains(t, err, "loud")
}

func TestSplitLogs(t *testing.T) {
	got := splitLogs([]string{" a.log ,b.log", "", ",", "c.log"})
	assert.Equal(t, []string{"a.log", "b.log", "c.log"}, got)
}
