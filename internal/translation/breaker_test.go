package translation

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"codeberg.org/snonux/saathi/internal/testutil"
)

func TestBreakerSkipsFailingProvider(t *testing.T) {
	fc, chain := newFakeChain(t, down(),
		testutil.JSON(http.StatusOK, map[string]string{"translatedText": "வணக்கம்"}),
		down(), down())
	o := NewOrchestrator(chain,
		WithLogger(zaptest.NewLogger(t)),
		WithBreaker(BreakerSettings{ConsecutiveFailures: 2, OpenTimeout: time.Minute}),
	)

	for i := 0; i < 5; i++ {
		resp := o.Translate(context.Background(), Request{Text: "Hello", Target: "ta"})
		if resp.TranslatedText != "வணக்கம்" {
			t.Fatalf("request %d: TranslatedText = %q", i, resp.TranslatedText)
		}
	}

	if n := fc.libreA.CallCount(); n != 2 {
		t.Errorf("libre-a got %d calls, want 2 before the breaker opened", n)
	}
	if n := fc.libreB.CallCount(); n != 5 {
		t.Errorf("libre-b got %d calls, want 5", n)
	}

	_, results := o.Attempts(context.Background(), Request{Text: "Hello", Target: "ta"})
	var pe *ProviderError
	if !errors.As(results[0].Err, &pe) || pe.Kind != KindNetwork {
		t.Errorf("open breaker error = %v, want network error", results[0].Err)
	}
}

func TestBreakerIgnoresValidationFailures(t *testing.T) {
	fc, chain := newFakeChain(t,
		testutil.JSON(http.StatusOK, map[string]string{"translatedText": "Hello"}),
		down(), down(), down())
	o := NewOrchestrator(chain, WithBreaker(BreakerSettings{ConsecutiveFailures: 1, OpenTimeout: time.Minute}))

	for i := 0; i < 3; i++ {
		o.Translate(context.Background(), Request{Text: "Hello", Target: "ta"})
	}

	if n := fc.libreA.CallCount(); n != 3 {
		t.Errorf("libre-a got %d calls, want 3: validation failures must not trip the breaker", n)
	}
}
