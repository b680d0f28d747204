package lang

import "strings"

// Language codes the narration frontend sends.
const (
	English = "en"
	Tamil   = "ta"
	Hindi   = "hi"

	// Auto asks the providers to detect the source language themselves.
	Auto = "auto"
)

// asciiThreshold is the share of ASCII runes above which a text is assumed
// to be English.
const asciiThreshold = 0.85

var names = map[string]string{
	English: "English",
	Tamil:   "Tamil",
	Hindi:   "Hindi",
}

// Normalize trims and lower-cases a language code, returning fallback when
// nothing is left.
func Normalize(code, fallback string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return fallback
	}
	return code
}

// Supported reports whether speech can be synthesized for code.
func Supported(code string) bool {
	_, ok := names[code]
	return ok
}

// Name returns the English name of a language, or the code itself when it
// is not in the table.
func Name(code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

// NameOrEnglish is like Name but falls back to English for unknown codes.
func NameOrEnglish(code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return names[English]
}

// InferSource resolves an "auto" source to English when the text is mostly
// ASCII. Any other source, or a text that is not mostly ASCII, is returned
// unchanged so the providers can detect it.
func InferSource(text, source string) string {
	if source != Auto {
		return source
	}
	total, ascii := 0, 0
	for _, r := range text {
		total++
		if r < 128 {
			ascii++
		}
	}
	if total == 0 {
		return source
	}
	if float64(ascii)/float64(total) > asciiThreshold {
		return English
	}
	return source
}
