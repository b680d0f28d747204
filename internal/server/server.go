// Package server exposes translation, summaries and speech synthesis over
// HTTP for the narration frontend.
package server

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"codeberg.org/snonux/saathi/internal/audio"
	"codeberg.org/snonux/saathi/internal/translation"
)

// Translator runs the provider fallback chain.
type Translator interface {
	Translate(ctx context.Context, req translation.Request) translation.Response
}

// LLM summarizes and translates with a language model.
type LLM interface {
	Summarize(ctx context.Context, text, language string) (string, error)
	Translate(ctx context.Context, text, target string) (string, error)
}

// Deps are the collaborators behind the routes.
type Deps struct {
	Translator Translator
	LLM        LLM
	TTS        audio.Provider
}

// New creates a new router with all routes configured.
func New(deps Deps, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()

	// Middleware
	r.Use(requestID())
	r.Use(ginLogger(logger))
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	h := &handler{deps: deps, logger: logger}

	r.GET("/health", h.health)
	r.POST("/translate", h.translate)
	r.POST("/translate_llm", h.translateLLM)
	r.POST("/summarize", h.summarize)
	r.POST("/tts", h.tts)

	return r
}
