package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/gradebook/internal/config"
	"github.com/roach88/gradebook/internal/testutil"
)

type cliResult struct {
	stdout string
	stderr string
	code   int
}

// runCLI executes the CLI in-process with no config file in effect.
func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")

	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// initDB returns the path of a freshly initialized database.
func initDB(t *testing.T) string {
	t.Helper()
	path := testutil.StorePath(t)
	res := runCLI(t, "--db", path, "init")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	return path
}

// mustRun runs the CLI against db and requires exit code 0.
func mustRun(t *testing.T, db string, args ...string) string {
	t.Helper()
	res := runCLI(t, append([]string{"--db", db}, args...)...)
	require.Equal(t, ExitSuccess, res.code, "args %v: %s", args, res.stderr)
	return res.stdout
}

// decodeJSON decodes a CLIResponse and its data payload into data.
func decodeJSON(t *testing.T, out string, data any) CLIResponse {
	t.Helper()
	var raw struct {
		CLIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw), out)
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data), out)
	}
	return raw.CLIResponse
}
