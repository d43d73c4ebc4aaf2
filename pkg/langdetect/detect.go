// Package langdetect identifies the language of a source file from its name
// and, when the name is not conclusive, from the first bytes of its content.
package langdetect

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

const (
	langBash = "bash"

	// sniffSize bounds how much of a file is read for detection.
	sniffSize = 512
)

// candidates limits the classifier to languages that commonly show up in
// diagnostics.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect returns the normalized language for a file. Filename rules are
// tried first, then the extension, then the shebang and classifier on head.
// head may be nil.
func Detect(path string, head []byte) string {
	if lang, safe := enry.GetLanguageByFilename(path); safe {
		return normalize(lang)
	}

	byExtension, safe := enry.GetLanguageByExtension(path)
	if safe {
		return normalize(byExtension)
	}

	if len(head) > 0 {
		if lang, safe := enry.GetLanguageByShebang(head); safe {
			return normalize(lang)
		}
		if lang, safe := enry.GetLanguageByClassifier(head, candidates); safe && lang != "" {
			return normalize(lang)
		}
	}

	// An ambiguous extension still beats nothing.
	if byExtension != "" {
		return normalize(byExtension)
	}
	return Text
}

// DetectFile is Detect with head read from disk. Unreadable files fall back
// to name-based detection.
func DetectFile(path string) string {
	return Detect(path, sniff(path))
}

func sniff(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	buf := make([]byte, sniffSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil
	}
	return buf[:n]
}

// normalize converts go-enry language names to short lowercase tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
