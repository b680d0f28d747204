package translation

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Google uses the undocumented keyless translate_a/single endpoint. It is
// best effort and may be rate limited at any time.
type Google struct {
	url    string
	client *resty.Client
}

// NewGoogle creates a provider for the endpoint at url
func NewGoogle(client *resty.Client, url string) *Google {
	if client == nil {
		client = NewHTTPClient()
	}
	return &Google{url: url, client: client}
}

// Name returns the provider name
func (g *Google) Name() string {
	return "google"
}

// TranslateChunk requests chunk and stitches the sentence segments together
func (g *Google) TranslateChunk(ctx context.Context, chunk, source, target string) (string, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     source,
			"tl":     target,
			"dt":     "t",
			"q":      chunk,
		}).
		Get(g.url)
	if err != nil {
		return "", networkError(g.Name(), err)
	}
	if !resp.IsSuccess() {
		return "", upstreamError(g.Name(), resp.StatusCode(), resp.String())
	}

	var data []any
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return "", malformedError(g.Name(), "invalid JSON response: %v", err)
	}

	out := joinSegments(data)
	if out == "" {
		return "", malformedError(g.Name(), "empty translation")
	}
	return out, nil
}

// joinSegments concatenates the translated sentence of every segment in
// data[0]. Each segment looks like [translated, original, ...].
func joinSegments(data []any) string {
	if len(data) == 0 {
		return ""
	}
	segments, ok := data[0].([]any)
	if !ok {
		return ""
	}

	var sb strings.Builder
	for _, s := range segments {
		seg, ok := s.([]any)
		if !ok || len(seg) == 0 {
			continue
		}
		if text, ok := seg[0].(string); ok {
			sb.WriteString(text)
		}
	}
	return sb.String()
}
