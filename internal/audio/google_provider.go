package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"codeberg.org/snonux/saathi/internal/chunker"
)

const (
	// GoogleTTSURL is the keyless endpoint used by Google Translate's
	// listen button.
	GoogleTTSURL = "https://translate.google.com/translate_tts"

	// googleMaxPiece is the longest text the endpoint accepts per request.
	googleMaxPiece = 100

	googleTimeout   = 20 * time.Second
	googleUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// GoogleProvider implements Provider with the keyless Google Translate TTS
// endpoint. Long text is spoken piece by piece and the MP3 frames are
// concatenated.
type GoogleProvider struct {
	url    string
	client *resty.Client
}

// NewGoogleProvider creates a new Google TTS provider
func NewGoogleProvider(config *Config) *GoogleProvider {
	url := GoogleTTSURL
	if config != nil && config.GoogleURL != "" {
		url = config.GoogleURL
	}

	client := resty.New().
		SetTimeout(googleTimeout).
		SetHeader("User-Agent", googleUserAgent).
		SetHeader("Referer", "https://translate.google.com/")

	return &GoogleProvider{url: url, client: client}
}

// Synthesize requests every piece in order and writes the joined audio
func (p *GoogleProvider) Synthesize(ctx context.Context, text, lang string, w io.Writer) error {
	pieces := splitPieces(text, googleMaxPiece)
	if len(pieces) == 0 {
		return ErrEmptyText
	}

	var audio bytes.Buffer
	for i, piece := range pieces {
		resp, err := p.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"ie":      "UTF-8",
				"q":       piece,
				"tl":      lang,
				"client":  "tw-ob",
				"total":   strconv.Itoa(len(pieces)),
				"idx":     strconv.Itoa(i),
				"textlen": strconv.Itoa(len([]rune(piece))),
			}).
			Get(p.url)
		if err != nil {
			return fmt.Errorf("google tts request %d/%d: %w", i+1, len(pieces), err)
		}
		if !resp.IsSuccess() {
			return fmt.Errorf("google tts returned status %d for piece %d/%d", resp.StatusCode(), i+1, len(pieces))
		}
		if len(resp.Body()) == 0 {
			return fmt.Errorf("google tts returned no audio for piece %d/%d", i+1, len(pieces))
		}
		audio.Write(resp.Body())
	}

	_, err := audio.WriteTo(w)
	return err
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// IsAvailable always succeeds as the endpoint needs no credentials
func (p *GoogleProvider) IsAvailable() error {
	return nil
}

// splitPieces cuts text on sentence boundaries first and on words only
// where a sentence is still too long.
func splitPieces(text string, maxLen int) []string {
	var pieces []string
	for _, chunk := range chunker.Split(text, maxLen) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if len([]rune(chunk)) <= maxLen {
			pieces = append(pieces, chunk)
			continue
		}
		pieces = append(pieces, chunker.SplitWords(chunk, maxLen)...)
	}
	return pieces
}
