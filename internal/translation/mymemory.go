package translation

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"
)

// MyMemory is the last resort provider. It is called once with the whole
// text rather than per chunk.
type MyMemory struct {
	url    string
	client *resty.Client
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

// NewMyMemory creates a provider for the endpoint at url
func NewMyMemory(client *resty.Client, url string) *MyMemory {
	if client == nil {
		client = NewHTTPClient()
	}
	return &MyMemory{url: url, client: client}
}

// Name returns the provider name
func (m *MyMemory) Name() string {
	return "mymemory"
}

// TranslateChunk requests a translation for the source|target pair
func (m *MyMemory) TranslateChunk(ctx context.Context, text, source, target string) (string, error) {
	resp, err := m.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":        text,
			"langpair": source + "|" + target,
		}).
		Get(m.url)
	if err != nil {
		return "", networkError(m.Name(), err)
	}
	if !resp.IsSuccess() {
		return "", upstreamError(m.Name(), resp.StatusCode(), resp.String())
	}

	// Decoded by hand: SetResult only fires for JSON content types, and some
	// instances mislabel the body.
	var data myMemoryResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return "", malformedError(m.Name(), "invalid JSON response: %v", err)
	}
	if data.ResponseData.TranslatedText == "" {
		return "", malformedError(m.Name(), "response has no responseData.translatedText")
	}
	return data.ResponseData.TranslatedText, nil
}
