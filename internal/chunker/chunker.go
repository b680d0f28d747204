// Package chunker splits text into bounded chunks on sentence boundaries so
// that upstream translation and speech services never receive a request above
// their size limits.
package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxLen is the default maximum chunk length in code points.
const DefaultMaxLen = 4000

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '\n', '\r', '\t':
		return true
	}
	return false
}

// Segments cuts text after every run of sentence terminators. The terminators
// stay with the segment they close, so joining the segments gives back text.
// Text without any terminator is a single segment.
func Segments(text string) []string {
	if text == "" {
		return nil
	}

	var segments []string
	start := 0
	inTerminators := false
	for i, r := range text {
		term := isTerminator(r)
		if inTerminators && !term {
			segments = append(segments, text[start:i])
			start = i
		}
		inTerminators = term
	}
	return append(segments, text[start:])
}

// Split groups segments greedily into chunks of at most maxLen code points.
// A segment that alone exceeds maxLen becomes its own chunk and is not split
// further. A maxLen of zero or less means DefaultMaxLen.
func Split(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, seg := range Segments(text) {
		segLen := utf8.RuneCountInString(seg)

		// Flush before the segment that would overflow the chunk
		if currentLen+segLen > maxLen && currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}

		current.WriteString(seg)
		currentLen += segLen
	}

	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// SplitWords breaks text into pieces of at most maxLen code points on
// whitespace. A single word longer than maxLen is cut at maxLen. Surrounding
// whitespace of each piece is dropped, so the pieces only reconstruct the
// words of text, not its spacing.
func SplitWords(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	var pieces []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			pieces = append(pieces, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, word := range strings.FieldsFunc(text, unicode.IsSpace) {
		runes := []rune(word)
		for len(runes) > maxLen {
			flush()
			pieces = append(pieces, string(runes[:maxLen]))
			runes = runes[maxLen:]
		}
		if len(runes) == 0 {
			continue
		}

		sep := 0
		if currentLen > 0 {
			sep = 1
		}
		if currentLen+sep+len(runes) > maxLen {
			flush()
			sep = 0
		}
		if sep == 1 {
			current.WriteByte(' ')
		}
		current.WriteString(string(runes))
		currentLen += sep + len(runes)
	}
	flush()

	return pieces
}

// Truncate returns at most n runes of s, never splitting a multi-byte
// character.
func Truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
