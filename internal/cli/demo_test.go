package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gradebook/internal/demo"
	"github.com/roach88/gradebook/internal/testutil"
)

func TestDemo_Default(t *testing.T) {
	db := testutil.StorePath(t)

	out := mustRun(t, db, "demo")
	assert.Contains(t, out, "✅ Student added: Alice Johnson\n")
	assert.Contains(t, out, "📊 Class Average GPA: 0.00")
	assert.Contains(t, out, "✅ Demo complete!")

	// A second run reports duplicates and still succeeds
	out = mustRun(t, db, "demo")
	assert.Contains(t, out, "❌ Error: UNIQUE constraint failed")
	assert.Contains(t, out, "✅ Demo complete!")
}

func TestDemo_JSONSummary(t *testing.T) {
	db := testutil.StorePath(t)

	out := mustRun(t, db, "--format", "json", "demo")

	var result demo.Result
	resp := decodeJSON(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Len(t, resp.RunID, 36, "UUIDv7 run ID")
	assert.Equal(t, resp.RunID, result.RunID)
	assert.Equal(t, "original", result.Scenario)
	assert.Empty(t, result.Failures)
	assert.NotContains(t, out, "📚", "console transcript is not mixed into JSON")
}

func TestDemo_ScenarioFile(t *testing.T) {
	scenario := filepath.Join(t.TempDir(), "mini.cue")
	require.NoError(t, os.WriteFile(scenario, []byte(`
name: "mini"
steps: [
	{op: "initialize"},
	{op: "add_student", args: {name: "Zed", email: "zed@x.com", date: "2025-03-01"}},
	{op: "list_students"},
]
`), 0600))

	out := mustRun(t, testutil.StorePath(t), "demo", "--scenario", scenario)
	assert.Contains(t, out, "  ID: 1, Name: Zed, Email: zed@x.com, GPA: 0.0, Enrolled: 2025-03-01\n")
}

func TestDemo_RootScenarioFlag(t *testing.T) {
	scenario := filepath.Join(t.TempDir(), "mini.yaml")
	require.NoError(t, os.WriteFile(scenario, []byte("name: mini\nsteps:\n  - op: initialize\n  - op: average_gpa\n"), 0600))

	out := mustRun(t, testutil.StorePath(t), "--scenario", scenario)
	assert.Contains(t, out, "No GPA data available")
}

func TestDemo_BadScenario(t *testing.T) {
	scenario := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(scenario, []byte("name: bad\nsteps:\n  - op: drop_table\n"), 0600))

	res := runCLI(t, "--db", testutil.StorePath(t), "demo", "--scenario", scenario)
	assert.Equal(t, ExitCommandError, res.code)
	assert.Contains(t, res.stderr, "failed to load scenario")
}

func TestDemo_StorageFailure(t *testing.T) {
	// No initialize step against a missing file
	scenario := filepath.Join(t.TempDir(), "noinit.yaml")
	require.NoError(t, os.WriteFile(scenario, []byte("name: noinit\nsteps:\n  - op: list_students\n"), 0600))

	res := runCLI(t, "--db", testutil.StorePath(t), "demo", "--scenario", scenario)
	assert.Equal(t, ExitCommandError, res.code)
	assert.Contains(t, res.stderr, "Error [E004]: storage failure: step 1 (list_students)")
}
