package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDir walks a statements directory and discovers CSV and JSONL files.
// A path to a single file is accepted too.
func ScanDir(root string) ([]DiscoveredFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		if format, ok := formatOf(root); ok {
			return []DiscoveredFile{{Path: root, Format: format}}, nil
		}
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		format, ok := formatOf(path)
		if !ok {
			return nil
		}

		df := DiscoveredFile{Path: path, Format: format}

		rel, _ := filepath.Rel(root, path)
		parts := strings.Split(rel, string(filepath.Separator))
		if len(parts) >= 2 {
			df.Platform = parts[0]
		}

		files = append(files, df)
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

func formatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, true
	case ".jsonl", ".ndjson":
		return FormatJSONL, true
	}
	return "", false
}

// CountPlatforms returns the number of distinct platforms in a set of discovered files.
func CountPlatforms(files []DiscoveredFile) int {
	seen := make(map[string]struct{})
	for _, f := range files {
		seen[f.Platform] = struct{}{}
	}
	return len(seen)
}
