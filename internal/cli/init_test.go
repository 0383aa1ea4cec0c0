package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gradebook/internal/testutil"
)

func TestInit(t *testing.T) {
	db := testutil.StorePath(t)

	out := mustRun(t, db, "init")
	assert.Equal(t, "✅ Database initialized: "+db+"\n", out)
	assert.FileExists(t, db)

	// Idempotent, existing rows survive
	mustRun(t, db, "student", "add", "Alice", "alice@x.com", "2025-01-15")
	out = mustRun(t, db, "--format", "json", "init")

	var res InitResult
	decodeJSON(t, out, &res)
	assert.Equal(t, db, res.Path)
	assert.Equal(t, 1, res.SchemaVersion)
	assert.Contains(t, mustRun(t, db, "student", "list"), "Alice")
}

func TestInit_UnwritableLocation(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	res := runCLI(t, "--db", filepath.Join(blocker, "grades.db"), "init")
	assert.Equal(t, ExitCommandError, res.code)
	assert.Contains(t, res.stderr, "Error [E004]: storage failure")
}
