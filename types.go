package main

// FileEntry describes one file discovered under the root that survived the
// eligibility filter. RelPath is slash-normalized and relative to the root;
// content is read lazily during the write phase.
type FileEntry struct {
	Path    string
	RelPath string
}

// Summary aggregates what actually made it into the document.
type Summary struct {
	TotalFiles  int
	TotalSize   int64
	TotalTokens int
}

// Config carries the resolved settings for a single run. RootDir and
// OutputPath are always explicit here: defaulting happens in the command
// layer, never inside the pipeline.
type Config struct {
	RootDir    string
	OutputPath string

	// URLs are web pages appended as extra sections after the file sections.
	URLs []string

	CountTokens bool
	Tokenizer   Tokenizer

	// Alternate sinks. When neither is set the document goes to OutputPath.
	ToClipboard bool
	ToStdout    bool
}
