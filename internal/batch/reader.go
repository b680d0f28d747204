package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Entry is one text to translate. An empty Target means the default target
// given on the command line.
type Entry struct {
	Text   string
	Target string
}

// ReadBatchFile reads texts from a file, one per line. Supported formats:
//   - Text only: "Good morning" (translated into the default target)
//   - With target: "ta = Good morning" (translated into Tamil)
//
// A line is only treated as having a target when the part before the first
// '=' looks like a language code, so text containing '=' is kept intact.
func ReadBatchFile(filename string) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if code, text, ok := strings.Cut(line, "="); ok && isLangCode(strings.TrimSpace(code)) {
			text = strings.TrimSpace(text)
			if text == "" {
				// Ignore lines with an empty text part
				continue
			}
			entries = append(entries, Entry{Text: text, Target: strings.ToLower(strings.TrimSpace(code))})
			continue
		}

		entries = append(entries, Entry{Text: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return entries, nil
}

// isLangCode accepts two or three ASCII letters, optionally followed by a
// region such as zh-TW.
func isLangCode(s string) bool {
	base, region, hasRegion := strings.Cut(s, "-")
	if !letters(base, 2, 3) {
		return false
	}
	return !hasRegion || letters(region, 2, 4)
}

func letters(s string, lo, hi int) bool {
	if len(s) < lo || len(s) > hi {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
