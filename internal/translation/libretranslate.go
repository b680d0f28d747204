package translation

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"
)

// LibreTranslate talks to a LibreTranslate compatible /translate endpoint.
type LibreTranslate struct {
	name   string
	url    string
	client *resty.Client
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

// Some forks answer with translated_text instead of translatedText.
type libreResponse struct {
	TranslatedText    string `json:"translatedText"`
	TranslatedTextAlt string `json:"translated_text"`
}

// NewLibreTranslate creates a provider for the instance at url
func NewLibreTranslate(client *resty.Client, name, url string) *LibreTranslate {
	if client == nil {
		client = NewHTTPClient()
	}
	return &LibreTranslate{name: name, url: url, client: client}
}

// Name returns the provider name
func (l *LibreTranslate) Name() string {
	return l.name
}

// TranslateChunk posts chunk as JSON and reads the translated field
func (l *LibreTranslate) TranslateChunk(ctx context.Context, chunk, source, target string) (string, error) {
	resp, err := l.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(libreRequest{Q: chunk, Source: source, Target: target, Format: "text"}).
		Post(l.url)
	if err != nil {
		return "", networkError(l.name, err)
	}
	if !resp.IsSuccess() {
		return "", upstreamError(l.name, resp.StatusCode(), resp.String())
	}

	// Decoded by hand: SetResult only fires for JSON content types, and some
	// instances mislabel the body.
	var data libreResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return "", malformedError(l.name, "invalid JSON response: %v", err)
	}

	piece := data.TranslatedText
	if piece == "" {
		piece = data.TranslatedTextAlt
	}
	if piece == "" {
		return "", malformedError(l.name, "response has no translatedText")
	}
	return piece, nil
}
