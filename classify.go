package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Classification is the result of probing a file's leading bytes.
type Classification int

const (
	// ClassText means the probe window contained no NUL byte.
	ClassText Classification = iota
	// ClassBinary means at least one NUL byte was found in the probe window.
	ClassBinary
	// ClassUnreadable means the probe itself failed (permission denied, the
	// entry vanished, not a regular file). Callers treat it like ClassBinary,
	// but the distinction stays visible for testing.
	ClassUnreadable
)

// probeSize is how many leading bytes the text heuristic examines.
const probeSize = 1024

// classifyFile reads up to probeSize bytes of the file at path and decides
// whether it looks like text. Errors never propagate from here: a file we
// cannot probe is simply not text.
func classifyFile(path string) Classification {
	f, err := os.Open(path)
	if err != nil {
		return ClassUnreadable
	}
	defer f.Close()

	buf := make([]byte, probeSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return ClassUnreadable
	}
	if bytes.IndexByte(buf[:n], 0) >= 0 {
		return ClassBinary
	}
	return ClassText
}

// decodeText interprets raw file bytes as UTF-8, substituting one U+FFFD per
// invalid byte. Decoding is total: it can be lossy but never fails, so a
// badly encoded file cannot abort a run.
func decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			sb.WriteRune(utf8.RuneError)
			i++
			continue
		}
		sb.WriteRune(r)
		i += size
	}
	return sb.String()
}
