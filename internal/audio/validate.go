package audio

import (
	"errors"
	"strings"

	"codeberg.org/snonux/saathi/internal/lang"
)

var (
	// ErrEmptyText is returned for blank input.
	ErrEmptyText = errors.New("Empty text")

	// ErrUnsupportedLanguage is returned for languages other than en, ta and hi.
	ErrUnsupportedLanguage = errors.New("Unsupported language")
)

// Validate checks a speech request before any provider is called and
// returns the trimmed text.
func Validate(text, code string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	if !lang.Supported(code) {
		return "", ErrUnsupportedLanguage
	}
	return text, nil
}
