package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// maxChatModels limits how many chat models are printed
const maxChatModels = 10

// Catalog groups model ids by what saathi can use them for
type Catalog struct {
	TTS  []string
	Chat []string
}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. An empty baseURL uses the public API.
func NewLister(apiKey, baseURL string) *Lister {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(cfg),
	}
}

// List fetches and categorizes the models
func (l *Lister) List(ctx context.Context) (*Catalog, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .saathi.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	catalog := &Catalog{}
	for _, model := range models.Models {
		id := model.ID
		switch {
		case strings.Contains(id, "tts"):
			catalog.TTS = append(catalog.TTS, id)
		case strings.Contains(id, "audio"), strings.Contains(id, "realtime"), strings.Contains(id, "transcribe"):
			// Not usable for either purpose
		case strings.HasPrefix(id, "gpt") || strings.HasPrefix(id, "o1") || strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4"):
			catalog.Chat = append(catalog.Chat, id)
		}
	}

	sort.Strings(catalog.TTS)
	sort.Strings(catalog.Chat)

	return catalog, nil
}

// ListAvailableModels prints the categorized models to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	catalog, err := l.List(ctx)
	if err != nil {
		return err
	}
	Print(w, catalog)
	return nil
}

// Print writes catalog in the format of the models command
func Print(w io.Writer, catalog *Catalog) {
	fmt.Fprintln(w, "Available OpenAI Models:")

	fmt.Fprintln(w, "\nText-to-Speech Models (tts.openai_model):")
	if len(catalog.TTS) == 0 {
		fmt.Fprintln(w, "  No TTS models found")
	}
	for _, model := range catalog.TTS {
		fmt.Fprintf(w, "  %s\n", model)
	}

	fmt.Fprintln(w, "\nChat Models (llm.model, for summaries and translation):")
	if len(catalog.Chat) == 0 {
		fmt.Fprintln(w, "  No chat models found")
	}
	shown := catalog.Chat
	if len(shown) > maxChatModels {
		shown = shown[:maxChatModels]
	}
	for _, model := range shown {
		fmt.Fprintf(w, "  %s\n", model)
	}
	if rest := len(catalog.Chat) - len(shown); rest > 0 {
		fmt.Fprintf(w, "  ... and %d more models\n", rest)
	}
}
