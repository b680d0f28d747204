package llm

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/saathi/internal/chunker"
	"codeberg.org/snonux/saathi/internal/lang"
)

const (
	// DefaultModel is used when neither Config.Model nor OPENAI_MODEL is set.
	DefaultModel = openai.GPT4oMini

	// DefaultTimeout bounds every completion request.
	DefaultTimeout = 60 * time.Second

	// maxInputRunes caps the text sent in one completion.
	maxInputRunes = 24000

	summarizeTemperature = 0.3
	translateTemperature = 0.2
)

// Config holds the OpenAI settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client runs summaries and translations against OpenAI chat completions.
type Client struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewClient creates a new client. An empty Model falls back to OPENAI_MODEL
// and then to DefaultModel.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = os.Getenv("OPENAI_MODEL")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	oc := openai.DefaultConfig(strings.TrimSpace(cfg.APIKey))
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		apiKey: strings.TrimSpace(cfg.APIKey),
		model:  cfg.Model,
		client: openai.NewClientWithConfig(oc),
	}
}

// Model returns the chat model in use
func (c *Client) Model() string {
	return c.model
}

// Summarize returns a narration-ready summary of text in language. Unknown
// languages get an English summary.
func (c *Client) Summarize(ctx context.Context, text, language string) (string, error) {
	name := lang.NameOrEnglish(lang.Normalize(language, lang.English))
	system := fmt.Sprintf("You are a concise assistant that summarizes long web articles for a podcast. "+
		"Return a clear, factual summary in %s. Keep it 6-10 bullet points or short paragraphs, suitable for voice narration.", name)

	return c.complete(ctx, system, "Article content:\n\n"+chunker.Truncate(text, maxInputRunes), summarizeTemperature)
}

// Translate translates text into target with the chat model. Empty text is
// returned as is without calling OpenAI.
func (c *Client) Translate(ctx context.Context, text, target string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	name := lang.Name(lang.Normalize(target, lang.English))
	system := fmt.Sprintf("You are a translator. Translate the user's text into %s. "+
		"Return only the translation, no explanations, no quotes.", name)

	return c.complete(ctx, system, chunker.Truncate(text, maxInputRunes), translateTemperature)
}

func (c *Client) complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: user,
			},
		},
		Temperature: temperature,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}
