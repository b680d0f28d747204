package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/snonux/saathi/internal/chunker"
	"codeberg.org/snonux/saathi/internal/lang"
)

// Request is a translation request as received on /translate.
type Request struct {
	Text   string `json:"text"`
	Target string `json:"target"`
	Source string `json:"source,omitempty"`
}

// Response always carries some text: the translation or the original input.
type Response struct {
	TranslatedText string `json:"translatedText"`
}

// Result is the outcome of one provider attempt.
type Result struct {
	Provider string
	Text     string
	Success  bool
	Err      error
}

// Orchestrator walks a Chain until one provider yields an accepted
// translation. It never returns an error to the caller.
type Orchestrator struct {
	chain       Chain
	maxChunkLen int
	breaker     *BreakerSettings
	logger      *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for per-attempt diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxChunkLen overrides chunker.DefaultMaxLen for chunked stages.
func WithMaxChunkLen(n int) Option {
	return func(o *Orchestrator) {
		o.maxChunkLen = n
	}
}

// WithBreaker wraps every provider of the chain in a circuit breaker.
func WithBreaker(settings BreakerSettings) Option {
	return func(o *Orchestrator) {
		o.breaker = &settings
	}
}

// NewOrchestrator creates an orchestrator for chain.
func NewOrchestrator(chain Chain, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		maxChunkLen: chunker.DefaultMaxLen,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	o.chain = make(Chain, len(chain))
	for i, stage := range chain {
		if o.breaker != nil {
			stage.Provider = newBreakerProvider(stage.Provider, *o.breaker, o.logger)
		}
		o.chain[i] = stage
	}
	return o
}

// Translate returns the translated text, or the trimmed input when no
// provider produced an accepted translation.
func (o *Orchestrator) Translate(ctx context.Context, req Request) Response {
	resp, _ := o.Attempts(ctx, req)
	return resp
}

// Attempts is Translate that also reports every provider attempt made, in
// chain order.
func (o *Orchestrator) Attempts(ctx context.Context, req Request) (Response, []Result) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Response{TranslatedText: ""}, nil
	}

	target := lang.Normalize(req.Target, lang.English)
	source := lang.InferSource(text, lang.Normalize(req.Source, lang.Auto))

	// Outbound calls run to completion or timeout even if the caller leaves
	ctx = context.WithoutCancel(ctx)

	chunks := chunker.Split(text, o.maxChunkLen)
	results := make([]Result, 0, len(o.chain))

	for _, stage := range o.chain {
		var res Result
		if stage.Whole {
			res = o.tryWhole(ctx, stage.Provider, text, source, target)
		} else {
			res = o.tryChunks(ctx, stage.Provider, chunks, source, target)
		}
		results = append(results, res)

		if res.Success {
			o.logger.Info("Translation accepted",
				zap.String("provider", res.Provider),
				zap.String("source", source),
				zap.String("target", target),
				zap.Int("chunks", len(chunks)),
			)
			return Response{TranslatedText: res.Text}, results
		}

		o.logger.Debug("Translation provider failed",
			zap.String("provider", res.Provider),
			zap.String("kind", errorKind(res.Err)),
			zap.Error(res.Err),
		)
	}

	o.logger.Warn("All translation providers failed, returning original text",
		zap.String("source", source),
		zap.String("target", target),
		zap.Int("providers", len(o.chain)),
	)
	return Response{TranslatedText: text}, results
}

// tryChunks translates every chunk with p and joins the pieces. Any failed
// or empty piece abandons the provider; partial results are never used.
func (o *Orchestrator) tryChunks(ctx context.Context, p Provider, chunks []string, source, target string) Result {
	pieces := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		piece, err := p.TranslateChunk(ctx, chunk, source, target)
		if err != nil {
			return failed(p, err)
		}
		if piece == "" {
			return failed(p, malformedError(p.Name(), "empty translation for chunk %d", i))
		}
		pieces = append(pieces, piece)
	}

	return validated(p, strings.Join(pieces, " "), target)
}

// tryWhole sends the capped text in one request.
func (o *Orchestrator) tryWhole(ctx context.Context, p Provider, text, source, target string) Result {
	out, err := p.TranslateChunk(ctx, chunker.Truncate(text, MyMemoryMaxLen), source, target)
	if err != nil {
		return failed(p, err)
	}
	if out == "" {
		return failed(p, malformedError(p.Name(), "empty translation"))
	}

	return validated(p, out, target)
}

func validated(p Provider, text, target string) Result {
	if lang.NeedsScriptCheck(target) && !lang.HasTargetScript(text, target) {
		return failed(p, &ProviderError{
			Provider: p.Name(),
			Kind:     KindValidation,
			Err:      fmt.Errorf("no %s script in translation", lang.Name(target)),
		})
	}
	return Result{Provider: p.Name(), Text: text, Success: true}
}

func failed(p Provider, err error) Result {
	return Result{Provider: p.Name(), Err: err}
}

func errorKind(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind.String()
	}
	return "unknown"
}
