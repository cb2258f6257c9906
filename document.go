package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

const (
	documentTitle = "# OpenHands Microagents Documentation\n\n"
	documentIntro = "This file contains the concatenated contents of all files in the .openhands/microagents directory.\n"
)

// writeDocument streams the banner and one section per entry into w, then
// any appended web sections. A source file that fails to read at this stage
// is reported to stderr and skipped; the run keeps going. Write errors on w
// itself are fatal, since the sink is the one resource the run depends on.
func writeDocument(cfg Config, entries []FileEntry, w io.Writer) (Summary, error) {
	var sum Summary

	if _, err := io.WriteString(w, documentTitle+documentIntro); err != nil {
		return sum, fmt.Errorf("error writing document header: %w", err)
	}

	for _, entry := range entries {
		raw, err := os.ReadFile(entry.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", entry.Path, err)
			continue
		}
		content := decodeText(raw)

		if err := writeSection(w, entry.RelPath, content); err != nil {
			return sum, err
		}
		tallySection(cfg, &sum, content)
		fmt.Printf("Processed: %s\n", entry.RelPath)
	}

	for _, pageURL := range cfg.URLs {
		content, title, err := fetchWebSection(pageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", pageURL, err)
			continue
		}
		if err := writeSection(w, pageURL, content); err != nil {
			return sum, err
		}
		tallySection(cfg, &sum, content)
		if title != "" {
			fmt.Printf("Processed: %s (%s)\n", pageURL, title)
		} else {
			fmt.Printf("Processed: %s\n", pageURL)
		}
	}

	return sum, nil
}

// writeSection emits one heading-plus-content block. The separator shape is
// fixed: blank line, horizontal rule, blank line, heading, blank line, then
// the raw content with no trailing separator.
func writeSection(w io.Writer, heading, content string) error {
	if _, err := fmt.Fprintf(w, "\n\n---\n\n# %s\n\n", heading); err != nil {
		return fmt.Errorf("error writing section heading for %s: %w", heading, err)
	}
	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("error writing section content for %s: %w", heading, err)
	}
	return nil
}

func tallySection(cfg Config, sum *Summary, content string) {
	sum.TotalFiles++
	sum.TotalSize += int64(len(content))
	if cfg.CountTokens && cfg.Tokenizer != nil {
		sum.TotalTokens += cfg.Tokenizer.CountTokens(content)
	}
}

// run executes the full pipeline against the resolved configuration:
// enumerate, filter, sort, then stream everything into the selected sink.
// The sink is always released, on the error path included.
func run(cfg Config) error {
	fmt.Printf("Starting to process files in %s\n", cfg.RootDir)
	if !cfg.ToClipboard && !cfg.ToStdout {
		fmt.Printf("Output will be written to %s\n", cfg.OutputPath)
	}

	entries, err := collectFiles(cfg.RootDir)
	if err != nil {
		return err
	}

	if cfg.ToClipboard || cfg.ToStdout {
		// Build in memory so progress lines never interleave with the
		// document itself.
		var buf bytes.Buffer
		sum, err := writeDocument(cfg, entries, &buf)
		if err != nil {
			return err
		}
		if cfg.ToClipboard {
			if err := clipboard.WriteAll(buf.String()); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing to clipboard: %v\n", err)
				fmt.Println("\n--- Output (clipboard failed) ---")
				fmt.Print(buf.String())
			} else {
				fmt.Println("Output copied to clipboard.")
			}
		} else {
			fmt.Print(buf.String())
		}
		if cfg.CountTokens {
			printSummary(sum)
		}
		return nil
	}

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("error creating output file %s: %w", cfg.OutputPath, err)
	}
	sum, werr := writeDocument(cfg, entries, out)
	cerr := out.Close()
	if werr != nil {
		return werr
	}
	if cerr != nil {
		return fmt.Errorf("error closing output file %s: %w", cfg.OutputPath, cerr)
	}

	fmt.Printf("Done! Output written to %s\n", cfg.OutputPath)
	if cfg.CountTokens {
		printSummary(sum)
	}
	return nil
}

// printSummary reports the token accounting to stderr. It is only emitted
// when token counting is on; the plain flatten run stays limited to the
// fixed progress lines.
func printSummary(sum Summary) {
	fmt.Fprintln(os.Stderr, "--- Summary ---")
	fmt.Fprintf(os.Stderr, "Total files processed: %d\n", sum.TotalFiles)
	fmt.Fprintf(os.Stderr, "Total size: %d bytes\n", sum.TotalSize)
	fmt.Fprintf(os.Stderr, "Total tokens: %d\n", sum.TotalTokens)
}
