package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debuggee/internal/config"
	"debuggee/internal/testcase"
)

func TestExecutePanicFlushesLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debuggee.log")
	cfg := &config.Config{Testcase: testcase.Panic, LogFile: path}
	require.NoError(t, cfg.Validate())

	assert.PanicsWithValue(t, testcase.PanicMessage, func() {
		_ = executeTestcase(context.Background(), cfg)
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"panicking"`)
	assert.NotContains(t, string(data), "testcase finished")
}

func TestExecuteValuesWritesRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debuggee.log")
	cfg := &config.Config{Testcase: "structs", LogFile: path}
	require.NoError(t, cfg.Validate())

	require.NoError(t, executeTestcase(context.Background(), cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"testcase":"structs"`)
	assert.Contains(t, string(data), "testcase finished")
}

func TestExecuteUnwritableLog(t *testing.T) {
	cfg := &config.Config{Testcase: "values", LogFile: "/nonexistent/dir/debuggee.log"}
	require.NoError(t, cfg.Validate())

	err := executeTestcase(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open log")
}
