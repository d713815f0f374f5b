package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Products Table", "product catalog schema")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_products_table.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_products_table.down.sql"))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add Products Table")
	assert.Contains(t, string(up), "product catalog schema")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Rollback")
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(dir, "init", "")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Add Users Table", "add_users_table"},
		{"weird--name  here", "weird_name_here"},
		{"Trailing-", "trailing"},
		{"MixedCase123", "mixedcase123"},
		{"special!@#chars", "specialchars"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitizeName(tc.in), "input %q", tc.in)
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty directory", func(t *testing.T) {
		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("missing directory", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(dir, "nope"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("pairs are listed once", func(t *testing.T) {
		_, err := CreateMigration(dir, "first", "")
		require.NoError(t, err)

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		require.Len(t, migrations, 1)
		assert.Contains(t, migrations[0], "first")
	})
}
