package translation

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fixed endpoints of the production chain.
const (
	AstianURL   = "https://translate.astian.org/translate"
	LibreDeURL  = "https://libretranslate.de/translate"
	GoogleURL   = "https://translate.googleapis.com/translate_a/single"
	MyMemoryURL = "https://api.mymemory.translated.net/get"
)

const (
	// RequestTimeout bounds every outbound provider call.
	RequestTimeout = 20 * time.Second

	// MyMemoryMaxLen caps the text sent to MyMemory in one request.
	MyMemoryMaxLen = 4500

	userAgent = "saathi/1.0"
)

// Provider translates one piece of text with a specific backend.
type Provider interface {
	// Name identifies the provider in logs and errors
	Name() string

	// TranslateChunk returns the translation of chunk or a *ProviderError
	TranslateChunk(ctx context.Context, chunk, source, target string) (string, error)
}

// Stage is one entry of a fallback chain.
type Stage struct {
	Provider Provider

	// Whole sends the text, capped at MyMemoryMaxLen runes, in a single
	// request instead of chunk by chunk.
	Whole bool
}

// Chain is the ordered list of stages the orchestrator walks through.
type Chain []Stage

// NewHTTPClient returns the resty client shared by the providers.
func NewHTTPClient() *resty.Client {
	return resty.New().
		SetTimeout(RequestTimeout).
		SetHeader("User-Agent", userAgent)
}

// DefaultChain builds the production chain: two LibreTranslate instances,
// the keyless Google endpoint and MyMemory as the last resort.
func DefaultChain(client *resty.Client) Chain {
	if client == nil {
		client = NewHTTPClient()
	}
	return Chain{
		{Provider: NewLibreTranslate(client, "libretranslate-astian", AstianURL)},
		{Provider: NewLibreTranslate(client, "libretranslate-de", LibreDeURL)},
		{Provider: NewGoogle(client, GoogleURL)},
		{Provider: NewMyMemory(client, MyMemoryURL), Whole: true},
	}
}
