package migration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("-- test"), 0o644))
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add invoice payments", "add_invoice_payments"},
		{"Add-Debt-Index", "add_debt_index"},
		{"ADD__PLAN__STATUS", "add_plan_status"},
		{"  padded  ", "padded"},
		{"special!@#chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_NumbersAfterExisting(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "000001_init.up.sql", "000001_init.down.sql", "000007_add_index.up.sql")

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mf, err := CreateMigration(dir, "Add reconciliation notes", now)
	require.NoError(t, err)

	assert.Equal(t, uint(8), mf.Version)
	assert.Equal(t, filepath.Join(dir, "000008_add_reconciliation_notes.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "000008_add_reconciliation_notes.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- add_reconciliation_notes")
	assert.Contains(t, string(up), "2024-05-01T10:00:00Z")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Rollback of add_reconciliation_notes")
}

func TestCreateMigration_EmptyDirectoryStartsAtOne(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	mf, err := CreateMigration(dir, "init", time.Now())
	require.NoError(t, err)
	assert.Equal(t, uint(1), mf.Version)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", time.Now())
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"000002_add_invoices.up.sql", "000002_add_invoices.down.sql",
		"000001_init.up.sql", "000001_init.down.sql",
		"000003_no_down.up.sql",
		"README.md", "notes_without_version.up.sql",
	)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000009_dir.up.sql"), 0o755))

	entries, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, Entry{Version: 1, Name: "init", HasDown: true}, entries[0])
	assert.Equal(t, Entry{Version: 2, Name: "add_invoices", HasDown: true}, entries[1])
	assert.Equal(t, Entry{Version: 3, Name: "no_down", HasDown: false}, entries[2])
}

func TestListMigrations_NonexistentDirectory(t *testing.T) {
	entries, err := ListMigrations("/nonexistent/path/to/migrations")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListMigrations_RepositoryMigrationsArePaired(t *testing.T) {
	entries, err := ListMigrations(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for i, e := range entries {
		assert.Equal(t, uint(i+1), e.Version, "migration versions are contiguous")
		assert.True(t, e.HasDown, "migration %06d_%s has a down file", e.Version, e.Name)
	}
}
