package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// Synthesize writes MP3 audio of text spoken in lang to w. Nothing is
	// written when it fails.
	Synthesize(ctx context.Context, text, lang string, w io.Writer) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	Provider string // Provider name: "google" or "openai"

	// Google-specific settings
	GoogleURL string

	// OpenAI-specific settings
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice   string  // "alloy", "ash", "coral", "echo", "fable", "nova", "onyx", "sage", "shimmer"
	OpenAISpeed   float64 // 0.25 to 4.0
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:    "google",
		GoogleURL:   GoogleTTSURL,
		OpenAIModel: "gpt-4o-mini-tts",
		OpenAIVoice: "alloy",
		OpenAISpeed: 1.0,
	}
}

// NewProvider creates the configured provider. When an OpenAI key is
// present the other provider is added as a fallback.
func NewProvider(config *Config, logger *zap.Logger) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "", "google":
		google := NewGoogleProvider(config)
		if config.OpenAIKey == "" {
			return google, nil
		}
		openai, err := NewOpenAIProvider(config)
		if err != nil {
			return nil, err
		}
		return NewProviderWithFallback(google, openai, logger), nil

	case "openai":
		openai, err := NewOpenAIProvider(config)
		if err != nil {
			return nil, err
		}
		return NewProviderWithFallback(openai, NewGoogleProvider(config), logger), nil

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Synthesize tries primary provider first, falls back to secondary on error.
// The primary output is buffered so a failure never leaves partial audio in w.
func (p *ProviderWithFallback) Synthesize(ctx context.Context, text, lang string, w io.Writer) error {
	var buf bytes.Buffer
	err := p.primary.Synthesize(ctx, text, lang, &buf)
	if err == nil {
		_, err = buf.WriteTo(w)
		return err
	}

	p.logger.Warn("Primary TTS provider failed, falling back",
		zap.String("primary", p.primary.Name()),
		zap.String("fallback", p.fallback.Name()),
		zap.Error(err),
	)
	return p.fallback.Synthesize(ctx, text, lang, w)
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
