package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wordCounter is a stand-in tokenizer so tests never touch the network.
type wordCounter struct{}

func (wordCounter) CountTokens(text string) int { return len(strings.Fields(text)) }
func (wordCounter) Close()                      {}

func TestWriteDocumentScenario(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", []byte("hello"))
	writeTestFile(t, dir, filepath.Join("sub", "b.txt"), []byte("world"))
	writeTestFile(t, dir, "bin.dat", []byte{0x00, 0x01, 0x02})
	writeTestFile(t, dir, "llmify.py", []byte("print('hi')\n"))

	entries, err := collectFiles(dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	sum, err := writeDocument(Config{RootDir: dir}, entries, &buf)
	require.NoError(t, err)

	want := "# OpenHands Microagents Documentation\n\n" +
		"This file contains the concatenated contents of all files in the .openhands/microagents directory.\n" +
		"\n\n---\n\n# a.txt\n\nhello" +
		"\n\n---\n\n# sub/b.txt\n\nworld"
	assert.Equal(t, want, buf.String())

	assert.Equal(t, 2, sum.TotalFiles)
	assert.Equal(t, int64(len("hello")+len("world")), sum.TotalSize)
	assert.NotContains(t, buf.String(), "bin.dat")
	assert.NotContains(t, buf.String(), "llmify.py")
}

func TestWriteDocumentDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "x.txt", []byte("one\n"))
	writeTestFile(t, dir, filepath.Join("d", "y.txt"), []byte("two\n"))
	writeTestFile(t, dir, "z.txt", []byte("three\n"))

	render := func() string {
		entries, err := collectFiles(dir)
		require.NoError(t, err)
		var buf bytes.Buffer
		_, err = writeDocument(Config{RootDir: dir}, entries, &buf)
		require.NoError(t, err)
		return buf.String()
	}

	assert.Equal(t, render(), render())
}

func TestWriteDocumentSkipsVanishedEntry(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "keep1.txt", []byte("first"))
	gone := writeTestFile(t, dir, "gone.txt", []byte("temporary"))
	writeTestFile(t, dir, "keep2.txt", []byte("second"))

	entries, err := collectFiles(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Simulate the race where an enumerated file disappears before the
	// write phase reads it.
	require.NoError(t, os.Remove(gone))

	var buf bytes.Buffer
	sum, err := writeDocument(Config{RootDir: dir}, entries, &buf)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.TotalFiles)
	assert.Contains(t, buf.String(), "# keep1.txt\n\nfirst")
	assert.Contains(t, buf.String(), "# keep2.txt\n\nsecond")
	assert.NotContains(t, buf.String(), "gone.txt")
}

func TestWriteDocumentLossyContent(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "mixed.txt", []byte{'o', 'k', 0xff, '!'})

	entries, err := collectFiles(dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = writeDocument(Config{RootDir: dir}, entries, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "# mixed.txt")
	assert.Contains(t, buf.String(), "�")
}

func TestWriteDocumentTokenCounts(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", []byte("hello there"))
	writeTestFile(t, dir, "b.txt", []byte("general kenobi !"))

	entries, err := collectFiles(dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	sum, err := writeDocument(Config{RootDir: dir, CountTokens: true, Tokenizer: wordCounter{}}, entries, &buf)
	require.NoError(t, err)

	assert.Equal(t, 5, sum.TotalTokens)
}

func TestRunWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "note.md", []byte("remember this\n"))

	outPath := filepath.Join(dir, "microagents.md.llm")
	cfg := Config{RootDir: dir, OutputPath: outPath}
	require.NoError(t, run(cfg))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), documentTitle))
	assert.Contains(t, string(data), "# note.md\n\nremember this\n")
}

func TestRunTruncatesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "only.txt", []byte("fresh"))
	outPath := filepath.Join(dir, "out.md.llm")
	require.NoError(t, os.WriteFile(outPath, []byte(strings.Repeat("stale ", 1000)), 0o644))

	cfg := Config{RootDir: dir, OutputPath: outPath}
	require.NoError(t, run(cfg))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Contains(t, string(data), "# only.txt\n\nfresh")
}

func TestRunExcludesOwnOutputOnRerun(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", []byte("hello"))

	outPath := filepath.Join(dir, "microagents.md.llm")
	cfg := Config{RootDir: dir, OutputPath: outPath}
	require.NoError(t, run(cfg))

	first, err := os.ReadFile(outPath)
	require.NoError(t, err)

	// Second run must not ingest the document produced by the first.
	require.NoError(t, run(cfg))
	second, err := os.ReadFile(outPath)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	fn()

	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestRunSummaryOnlyWithTokenCounting(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", []byte("hello there"))

	quiet := captureStderr(t, func() {
		require.NoError(t, run(Config{
			RootDir:    dir,
			OutputPath: filepath.Join(dir, "out.md.llm"),
		}))
	})
	assert.NotContains(t, quiet, "--- Summary ---")

	counted := captureStderr(t, func() {
		require.NoError(t, run(Config{
			RootDir:     dir,
			OutputPath:  filepath.Join(dir, "out2.md.llm"),
			CountTokens: true,
			Tokenizer:   wordCounter{},
		}))
	})
	assert.Contains(t, counted, "--- Summary ---")
	assert.Contains(t, counted, "Total tokens: 2")
}

func TestRunMissingRootFails(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		RootDir:    filepath.Join(dir, "missing"),
		OutputPath: filepath.Join(dir, "out.md.llm"),
	}
	assert.Error(t, run(cfg))
}

func TestRunUnwritableOutputFails(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", []byte("hello"))

	cfg := Config{
		RootDir:    dir,
		OutputPath: filepath.Join(dir, "no-such-dir", "out.md.llm"),
	}
	assert.Error(t, run(cfg))
}
