package testutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/gradebook/internal/store"
)

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// StorePath returns a store path under a fresh temp directory.
// The parent directory does not exist yet.
func StorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data", "grades.db")
}

// NewStore returns an initialized store in a temp directory.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(StorePath(t), store.Options{Logger: DiscardLogger()})
	require.NoError(t, s.Initialize(context.Background()))
	return s
}
