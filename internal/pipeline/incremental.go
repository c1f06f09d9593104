package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/gigfin/internal/source"
	"github.com/theirongolddev/gigfin/internal/store"
)

// CachedLoadResult extends LoadResult with file tracking metadata.
// Transactions only cover files that are new or changed since their last import.
type CachedLoadResult struct {
	LoadResult
	Skipped  int
	Reparsed int
	Pruned   int // tracked files under the root that no longer exist

	pending map[string]store.FileInfo
	stale   []string
}

// LoadWithCache discovers statement files, diffs them against the file
// tracker and parses only the ones that are new or changed.
// Call Commit once the transactions are safely merged and saved.
// Tracker keys are absolute paths.
func LoadWithCache(dir string, cache *store.Store, progressFn ProgressFunc) (*CachedLoadResult, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	files, err := source.ScanDir(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	result := &CachedLoadResult{
		LoadResult: LoadResult{
			TotalFiles:    len(files),
			PlatformCount: source.CountPlatforms(files),
		},
		pending: make(map[string]store.FileInfo),
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading file tracker: %w", err)
	}

	present := make(map[string]struct{}, len(files))
	for _, f := range files {
		present[f.Path] = struct{}{}
	}
	for path := range tracked {
		if _, ok := present[path]; !ok && within(root, path) {
			result.stale = append(result.stale, path)
		}
	}
	result.Pruned = len(result.stale)

	if len(files) == 0 {
		return result, nil
	}

	var toReparse []source.DiscoveredFile
	stats := make(map[string]os.FileInfo, len(files))
	for _, f := range files {
		info, err := os.Stat(f.Path)
		if err != nil {
			continue
		}
		stats[f.Path] = info

		cached, ok := tracked[f.Path]
		if ok && cached.MtimeNs == info.ModTime().UnixNano() && cached.SizeBytes == info.Size() {
			result.Skipped++
			continue
		}
		toReparse = append(toReparse, f)
	}
	result.Reparsed = len(toReparse)

	if len(toReparse) == 0 {
		return result, nil
	}

	for i, pr := range parseAll(toReparse, result.Skipped, result.TotalFiles, progressFn) {
		result.collect(pr)
		if pr.Err != nil {
			continue
		}
		info := stats[toReparse[i].Path]
		result.pending[toReparse[i].Path] = store.FileInfo{
			MtimeNs:      info.ModTime().UnixNano(),
			SizeBytes:    info.Size(),
			Transactions: len(pr.Transactions),
		}
	}

	return result, nil
}

// Commit marks every successfully parsed file as imported and forgets
// tracked files that have disappeared. Their transactions stay in the ledger.
func (r *CachedLoadResult) Commit(cache *store.Store) error {
	for path, fi := range r.pending {
		if err := cache.TrackFile(path, fi); err != nil {
			return fmt.Errorf("tracking %s: %w", path, err)
		}
	}
	for _, path := range r.stale {
		if err := cache.DeleteFileTracker(path); err != nil {
			return fmt.Errorf("untracking %s: %w", path, err)
		}
	}
	return nil
}

// within reports whether path is root itself or lies below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// DataDir returns the platform-appropriate data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "gigfin")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "gigfin")
}

// DBPath returns the full path to the database inside dataDir.
// An empty dataDir means DataDir().
func DBPath(dataDir string) string {
	if dataDir == "" {
		dataDir = DataDir()
	}
	return filepath.Join(dataDir, "gigfin.db")
}
