package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"codeberg.org/snonux/saathi/internal/audio"
	"codeberg.org/snonux/saathi/internal/llm"
	"codeberg.org/snonux/saathi/internal/translation"
)

type translateLLMRequest struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

type summarizeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type ttsRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type handler struct {
	deps   Deps
	logger *zap.Logger
}

// health handles GET /health.
func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// translate handles POST /translate. Provider failures never surface as an
// error status; the untranslated text is returned instead.
func (h *handler) translate(c *gin.Context) {
	var req translation.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, h.deps.Translator.Translate(c.Request.Context(), req))
}

// translateLLM handles POST /translate_llm.
func (h *handler) translateLLM(c *gin.Context) {
	var req translateLLMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusOK, translation.Response{TranslatedText: ""})
		return
	}

	out, err := h.deps.LLM.Translate(c.Request.Context(), text, req.Target)
	if err != nil {
		h.logger.Error("LLM translation failed", zap.Error(err))
		respondError(c, llmStatus(err), llmDetail(err, "Translate LLM failed"))
		return
	}

	c.JSON(http.StatusOK, translation.Response{TranslatedText: out})
}

// summarize handles POST /summarize.
func (h *handler) summarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		respondError(c, http.StatusBadRequest, "Empty text")
		return
	}

	summary, err := h.deps.LLM.Summarize(c.Request.Context(), text, req.Language)
	if err != nil {
		h.logger.Error("Summary failed", zap.Error(err))
		respondError(c, llmStatus(err), llmDetail(err, "Summarize failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// tts handles POST /tts and answers with MP3 audio.
func (h *handler) tts(c *gin.Context) {
	var req ttsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	text, err := audio.Validate(req.Text, req.Lang)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var mp3 bytes.Buffer
	if err := h.deps.TTS.Synthesize(c.Request.Context(), text, req.Lang, &mp3); err != nil {
		h.logger.Error("Speech synthesis failed",
			zap.String("provider", h.deps.TTS.Name()),
			zap.String("lang", req.Lang),
			zap.Error(err),
		)
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("TTS failed: %v", err))
		return
	}

	c.Header("Content-Disposition", `inline; filename="speech.mp3"`)
	c.Data(http.StatusOK, "audio/mpeg", mp3.Bytes())
}

// respondError sends an error response.
func respondError(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}

func llmStatus(err error) int {
	var upErr *llm.UpstreamError
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		return http.StatusInternalServerError
	case errors.As(err, &upErr), errors.Is(err, llm.ErrEmptyCompletion):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func llmDetail(err error, prefix string) string {
	var upErr *llm.UpstreamError
	if errors.Is(err, llm.ErrMissingAPIKey) || errors.Is(err, llm.ErrEmptyCompletion) || errors.As(err, &upErr) {
		return err.Error()
	}
	return fmt.Sprintf("%s: %v", prefix, err)
}
