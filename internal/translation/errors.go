package translation

import (
	"errors"
	"fmt"

	"codeberg.org/snonux/saathi/internal/chunker"
)

// ErrorKind classifies why a provider attempt failed. The orchestrator treats
// every kind the same way and moves on to the next provider.
type ErrorKind int

const (
	// KindNetwork covers timeouts, connection failures and an open breaker.
	KindNetwork ErrorKind = iota
	// KindUpstream is a non-2xx HTTP status.
	KindUpstream
	// KindMalformed is a body that does not carry a translation.
	KindMalformed
	// KindValidation is a translation without the target script.
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUpstream:
		return "upstream"
	case KindMalformed:
		return "malformed"
	case KindValidation:
		return "validation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ProviderError is returned by every Provider on failure
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Status   int // HTTP status for KindUpstream
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Kind == KindUpstream {
		return fmt.Sprintf("%s: %s error (status %d): %v", e.Provider, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func networkError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: KindNetwork, Err: err}
}

func upstreamError(provider string, status int, body string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Kind:     KindUpstream,
		Status:   status,
		Err:      errors.New(truncate(body, 200)),
	}
}

func malformedError(provider string, format string, args ...any) *ProviderError {
	return &ProviderError{Provider: provider, Kind: KindMalformed, Err: fmt.Errorf(format, args...)}
}

func truncate(s string, maxLen int) string {
	if short := chunker.Truncate(s, maxLen); len(short) < len(s) {
		return short + "..."
	}
	return s
}
