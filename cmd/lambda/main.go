// Package main runs the translation fallback chain as an AWS Lambda function.
package main

import (
	"context"
	"encoding/json"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"codeberg.org/snonux/saathi/internal/translation"
)

type translator interface {
	Translate(ctx context.Context, req translation.Request) translation.Response
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	h := &handler{translator: newOrchestrator(logger), logger: logger}
	lambda.Start(h.handleRequest)
}

// newOrchestrator keeps the breaker state for the life of the container
// when SAATHI_TRANSLATE_BREAKER is set.
func newOrchestrator(logger *zap.Logger) *translation.Orchestrator {
	opts := []translation.Option{translation.WithLogger(logger)}
	if on, _ := strconv.ParseBool(os.Getenv("SAATHI_TRANSLATE_BREAKER")); on {
		opts = append(opts, translation.WithBreaker(translation.DefaultBreakerSettings()))
	}
	return translation.NewOrchestrator(translation.DefaultChain(nil), opts...)
}

type handler struct {
	translator translator
	logger     *zap.Logger
	invoker    invoker
}

func (h *handler) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection (MUST be first - before any other processing)
	if warmup, ok := IsWarmupEvent(event); ok {
		return h.handleWarmup(ctx, warmup)
	}

	var req translation.Request
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, err
	}

	return h.translator.Translate(ctx, req), nil
}
