package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// selfPrefix excludes the tool's own artifacts from the walk. The match
	// is deliberately a plain prefix check, so anything named llmify* is
	// skipped.
	selfPrefix = "llmify"
	// outputSuffix excludes previously generated documents.
	outputSuffix = ".md.llm"
)

// eligibleName applies the two filename rules of the eligibility filter.
// The directory and binary checks happen in the walk itself.
func eligibleName(name string) bool {
	return !strings.HasPrefix(name, selfPrefix) && !strings.HasSuffix(name, outputSuffix)
}

// collectFiles walks root and returns every entry that passes the
// eligibility filter, sorted ascending by slash-normalized relative path so
// output is identical across runs and platforms. Per-entry walk errors are
// reported and skipped; only an inaccessible root fails the whole walk.
func collectFiles(root string) ([]FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error accessing root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	var entries []FileEntry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error accessing path %s: %v\n", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !eligibleName(d.Name()) {
			return nil
		}
		if classifyFile(path) != ClassText {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not relativize %s: %v\n", path, err)
			return nil
		}

		entries = append(entries, FileEntry{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RelPath < entries[j].RelPath
	})
	return entries, nil
}
