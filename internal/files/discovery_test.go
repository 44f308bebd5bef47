package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestDiscovery(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.csv")
	touch(t, dir, "a.csv")
	touch(t, dir, "snapshot.XLSX")
	touch(t, dir, "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	d := NewDiscovery(dir)

	t.Run("csv files sorted by name", func(t *testing.T) {
		found, err := d.FindCSVFiles(".")
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "a.csv", found[0].Name)
		assert.Equal(t, "b.csv", found[1].Name)
	})

	t.Run("excel matching is case insensitive", func(t *testing.T) {
		found, err := d.FindExcelFiles(".")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "snapshot.XLSX", found[0].Name)
	})

	t.Run("listing files cover both formats", func(t *testing.T) {
		found, err := d.FindListingFiles(".")
		require.NoError(t, err)
		assert.Len(t, found, 3)
	})

	t.Run("pattern search", func(t *testing.T) {
		found, err := d.FindFilesByPattern(".", "*.csv")
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		_, err := d.FindCSVFiles("does-not-exist")
		assert.Error(t, err)
	})
}

func TestGetLatestFile(t *testing.T) {
	_, ok := GetLatestFile(nil)
	assert.False(t, ok)
}
