package pipeline

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/gigfin/internal/store"
)

func writeFile(t testing.TB, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func statementDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "uber", "march.csv"),
		"date,type,amount,category\n2025-03-01,income,900,\n2025-03-02,debit,200,Fuel\n")
	writeFile(t, filepath.Join(dir, "swiggy", "march.jsonl"),
		`{"type":"income","amount":650,"date":"2025-03-02"}`+"\n"+`not json`+"\n")
	writeFile(t, filepath.Join(dir, "broken.csv"), "when,what\nx,y\n")
	return dir
}

func TestLoad(t *testing.T) {
	dir := statementDir(t)

	var calls atomic.Int64
	var last atomic.Int64
	res, err := Load(dir, func(current, total int) {
		calls.Add(1)
		if current == total {
			last.Store(int64(current))
		}
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.TotalFiles)
	require.Equal(t, 2, res.ParsedFiles)
	require.Equal(t, 1, res.FileErrors)
	require.Equal(t, 1, res.ParseErrors)
	require.Equal(t, 3, res.PlatformCount)
	require.Len(t, res.Transactions, 3)
	require.Equal(t, int64(3), calls.Load())
	require.Equal(t, int64(3), last.Load())
}

func TestLoad_MissingDir(t *testing.T) {
	res, err := Load(filepath.Join(t.TempDir(), "none"), nil)
	require.NoError(t, err)
	require.Equal(t, 0, res.TotalFiles)
	require.Empty(t, res.Transactions)
}

func TestLoadWithCache_SkipsCommittedFiles(t *testing.T) {
	dir := statementDir(t)
	cache, err := store.Open(filepath.Join(t.TempDir(), "gigfin.db"))
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	first, err := LoadWithCache(dir, cache, nil)
	require.NoError(t, err)
	require.Equal(t, 3, first.Reparsed)
	require.Len(t, first.Transactions, 3)

	// Nothing committed yet, so everything is parsed again.
	again, err := LoadWithCache(dir, cache, nil)
	require.NoError(t, err)
	require.Equal(t, 0, again.Skipped)

	require.NoError(t, first.Commit(cache))
	tracked, err := cache.GetTrackedFiles()
	require.NoError(t, err)
	require.Len(t, tracked, 2) // the broken file is never tracked

	second, err := LoadWithCache(dir, cache, nil)
	require.NoError(t, err)
	require.Equal(t, 2, second.Skipped)
	require.Equal(t, 1, second.Reparsed)
	require.Empty(t, second.Transactions)

	path := filepath.Join(dir, "uber", "march.csv")
	writeFile(t, path, "date,amount\n2025-03-05,1200\n2025-03-06,-40\n")
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	third, err := LoadWithCache(dir, cache, nil)
	require.NoError(t, err)
	require.Equal(t, 1, third.Skipped)
	require.Equal(t, 2, third.Reparsed)
	require.Len(t, third.Transactions, 2)
}

func TestLoadWithCache_PrunesVanishedFiles(t *testing.T) {
	dir := statementDir(t)
	other := filepath.Join(t.TempDir(), "elsewhere.csv")
	writeFile(t, other, "date,amount\n2025-03-01,100\n")

	cache, err := store.Open(filepath.Join(t.TempDir(), "gigfin.db"))
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	for _, root := range []string{dir, other} {
		res, err := LoadWithCache(root, cache, nil)
		require.NoError(t, err)
		require.NoError(t, res.Commit(cache))
	}
	tracked, err := cache.GetTrackedFiles()
	require.NoError(t, err)
	require.Len(t, tracked, 3)

	gone := filepath.Join(dir, "swiggy", "march.jsonl")
	require.NoError(t, os.Remove(gone))

	res, err := LoadWithCache(dir, cache, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Pruned)

	// Pruning waits for Commit.
	tracked, err = cache.GetTrackedFiles()
	require.NoError(t, err)
	require.Contains(t, tracked, gone)

	require.NoError(t, res.Commit(cache))
	tracked, err = cache.GetTrackedFiles()
	require.NoError(t, err)
	require.Len(t, tracked, 2)
	require.NotContains(t, tracked, gone)
	require.Contains(t, tracked, other)
}

func TestDBPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	require.Equal(t, "/tmp/xdg/gigfin", DataDir())
	require.Equal(t, "/tmp/xdg/gigfin/gigfin.db", DBPath(""))
	require.Equal(t, "/data/gigfin.db", DBPath("/data"))
}
