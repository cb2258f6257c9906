package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// isGitURL reports whether the root argument looks like a Git repository
// URL rather than a local path. Plain http(s) URLs are not treated as git
// repositories unless they carry the .git suffix.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") ||
		strings.HasPrefix(input, "git@")
}

// cloneGitRepo clones the default branch of url into a temporary directory
// and returns its path. The caller owns the directory and must remove it.
func cloneGitRepo(url string) (string, error) {
	tempDir, err := os.MkdirTemp("", "llmify-git-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	fmt.Printf("Cloning Git repository '%s' into '%s'...\n", url, tempDir)

	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      os.Stderr,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("failed to clone repository '%s': %w", url, err)
	}

	// Only the worktree gets flattened; drop the repository metadata so
	// .git plumbing files (config, HEAD, refs) never reach the document.
	gitDir := filepath.Join(tempDir, git.GitDirName)
	if err := os.RemoveAll(gitDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not remove %s: %v\n", gitDir, err)
	}

	return tempDir, nil
}
