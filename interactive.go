package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// runInteractivePicker lets the user choose the root directory to flatten
// from a fuzzy finder over the directories below the current one. It returns
// an empty path (and no error) when the user aborts the selection.
func runInteractivePicker() (string, error) {
	candidates := []string{"."}
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // keep scanning
		}
		if path == "." || !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("error scanning for directories: %w", err)
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select the directory to flatten. Enter to confirm, Esc to abort."
			}
			entries, readErr := os.ReadDir(candidates[i])
			if readErr != nil {
				return fmt.Sprintf("Path: %s\nError reading directory: %v", candidates[i], readErr)
			}
			return fmt.Sprintf("Path: %s\nEntries: %d", candidates[i], len(entries))
		}),
	)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			fmt.Println("Interactive selection aborted.")
			return "", nil
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}

	return candidates[idx], nil
}
