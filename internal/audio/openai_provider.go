package audio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/saathi/internal/lang"
)

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if config == nil || config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	cfg := *config
	defaults := DefaultProviderConfig()
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = defaults.OpenAIModel
	}
	if cfg.OpenAIVoice == "" {
		cfg.OpenAIVoice = defaults.OpenAIVoice
	}
	if cfg.OpenAISpeed == 0 {
		cfg.OpenAISpeed = defaults.OpenAISpeed
	}

	oc := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.OpenAIBaseURL != "" {
		oc.BaseURL = cfg.OpenAIBaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(oc),
		config: &cfg,
	}, nil
}

// Synthesize generates MP3 audio using OpenAI TTS
func (p *OpenAIProvider) Synthesize(ctx context.Context, text, code string, w io.Writer) error {
	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          strings.TrimSpace(text),
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		Speed:          p.config.OpenAISpeed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}

	// Only the gpt-4o TTS models take voice instructions
	if strings.HasPrefix(p.config.OpenAIModel, "gpt-4o") {
		req.Instructions = instruction(code)
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		return fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	audio, err := io.ReadAll(response)
	if err != nil {
		return fmt.Errorf("failed to read audio: %w", err)
	}
	if len(audio) == 0 {
		return fmt.Errorf("no audio data received from OpenAI")
	}

	_, err = w.Write(audio)
	return err
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	// A test call would use credits, so only the key is checked
	return nil
}

func instruction(code string) string {
	return fmt.Sprintf("You are narrating an article in %s. Use natural native pronunciation and speak clearly at a calm pace.",
		lang.NameOrEnglish(code))
}
