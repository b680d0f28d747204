package translation

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerSettings configures the optional per-provider circuit breaker.
// While a breaker is open its provider fails immediately with KindNetwork.
type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker. Only network and upstream
	// failures count.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before a probe.
	OpenTimeout time.Duration
}

// DefaultBreakerSettings returns the settings used by `serve --breaker`.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
	}
}

type breakerProvider struct {
	Provider
	cb *gobreaker.CircuitBreaker
}

func newBreakerProvider(p Provider, settings BreakerSettings, logger *zap.Logger) *breakerProvider {
	failures := settings.ConsecutiveFailures
	if failures == 0 {
		failures = DefaultBreakerSettings().ConsecutiveFailures
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        p.Name(),
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			var pe *ProviderError
			if errors.As(err, &pe) {
				return pe.Kind == KindMalformed || pe.Kind == KindValidation
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Translation provider breaker changed state",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &breakerProvider{Provider: p, cb: cb}
}

func (b *breakerProvider) TranslateChunk(ctx context.Context, chunk, source, target string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.Provider.TranslateChunk(ctx, chunk, source, target)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", networkError(b.Name(), err)
		}
		return "", err
	}
	return out.(string), nil
}
