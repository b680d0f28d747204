package llm

import (
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

var (
	// ErrMissingAPIKey is returned before any call when no key is configured.
	ErrMissingAPIKey = errors.New("Server missing OPENAI_API_KEY")

	// ErrEmptyCompletion is returned when OpenAI answers without content.
	ErrEmptyCompletion = errors.New("Empty response from OpenAI")
)

// UpstreamError is an HTTP error status returned by OpenAI.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("OpenAI error %d", e.Status)
}

// classify turns go-openai errors carrying an HTTP status into an
// *UpstreamError. Everything else is returned unchanged.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode >= 400 {
		return &UpstreamError{Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode >= 400 {
		return &UpstreamError{Status: reqErr.HTTPStatusCode}
	}

	return err
}
