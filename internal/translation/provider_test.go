package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"codeberg.org/snonux/saathi/internal/testutil"
)

func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ProviderError", err)
	}
	if pe.Kind != kind {
		t.Errorf("error kind = %s, want %s (%v)", pe.Kind, kind, err)
	}
}

func TestLibreTranslate(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		want     string
		wantKind ErrorKind
		wantErr  bool
	}{
		{
			name:    "translatedText field",
			handler: testutil.JSON(http.StatusOK, map[string]string{"translatedText": "வணக்கம்"}),
			want:    "வணக்கம்",
		},
		{
			name:    "translated_text field",
			handler: testutil.JSON(http.StatusOK, map[string]string{"translated_text": "नमस्ते"}),
			want:    "नमस्ते",
		},
		{
			name:    "JSON labelled as text",
			handler: testutil.Raw(http.StatusOK, "text/plain", `{"translatedText":"வணக்கம்"}`),
			want:    "வணக்கம்",
		},
		{
			name:     "missing field",
			handler:  testutil.JSON(http.StatusOK, map[string]string{"error": "nope"}),
			wantErr:  true,
			wantKind: KindMalformed,
		},
		{
			name:     "not JSON",
			handler:  testutil.Raw(http.StatusOK, "text/html", "<html>maintenance</html>"),
			wantErr:  true,
			wantKind: KindMalformed,
		},
		{
			name:     "server error",
			handler:  testutil.JSON(http.StatusInternalServerError, map[string]string{"error": "boom"}),
			wantErr:  true,
			wantKind: KindUpstream,
		},
		{
			name:     "rate limited",
			handler:  testutil.Status(http.StatusTooManyRequests),
			wantErr:  true,
			wantKind: KindUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewRecordingServer(t, tt.handler)
			p := NewLibreTranslate(nil, "libre", srv.URL+"/translate")

			got, err := p.TranslateChunk(context.Background(), "Hello.", "en", "ta")
			if tt.wantErr {
				wantKind(t, err, tt.wantKind)
				return
			}
			if err != nil {
				t.Fatalf("TranslateChunk() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("TranslateChunk() = %q, want %q", got, tt.want)
			}

			var body map[string]string
			if err := json.Unmarshal([]byte(srv.Body(0)), &body); err != nil {
				t.Fatalf("request body is not JSON: %v", err)
			}
			wantBody := map[string]string{"q": "Hello.", "source": "en", "target": "ta", "format": "text"}
			for k, v := range wantBody {
				if body[k] != v {
					t.Errorf("request body[%q] = %q, want %q", k, body[k], v)
				}
			}
			if calls := srv.Calls(); calls[0] != "POST /translate" {
				t.Errorf("request = %q, want POST /translate", calls[0])
			}
		})
	}
}

func TestLibreTranslateUnreachable(t *testing.T) {
	p := NewLibreTranslate(nil, "libre", testutil.UnreachableURL(t))

	_, err := p.TranslateChunk(context.Background(), "Hello.", "en", "ta")
	wantKind(t, err, KindNetwork)
}

func TestGoogle(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		status   int
		want     string
		wantKind ErrorKind
		wantErr  bool
	}{
		{
			name:   "segments are concatenated",
			body:   `[[["வணக்கம். ","Hello. ",null,null,10],["உலகம்","world",null,null,10]],null,"en"]`,
			status: http.StatusOK,
			want:   "வணக்கம். உலகம்",
		},
		{
			name:   "non string segments skipped",
			body:   `[[["नमस्ते",null],[null,"x"],[]],null,"en"]`,
			status: http.StatusOK,
			want:   "नमस्ते",
		},
		{
			name:     "empty result",
			body:     `[[],null,"en"]`,
			status:   http.StatusOK,
			wantErr:  true,
			wantKind: KindMalformed,
		},
		{
			name:     "not a list",
			body:     `{"error":"x"}`,
			status:   http.StatusOK,
			wantErr:  true,
			wantKind: KindMalformed,
		},
		{
			name:     "forbidden",
			body:     `forbidden`,
			status:   http.StatusForbidden,
			wantErr:  true,
			wantKind: KindUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewRecordingServer(t, testutil.Raw(tt.status, "application/json; charset=utf-8", tt.body))
			p := NewGoogle(nil, srv.URL+"/translate_a/single")

			got, err := p.TranslateChunk(context.Background(), "Hello. world", "en", "ta")
			if tt.wantErr {
				wantKind(t, err, tt.wantKind)
				return
			}
			if err != nil {
				t.Fatalf("TranslateChunk() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("TranslateChunk() = %q, want %q", got, tt.want)
			}

			q := srv.Query(0)
			wantQuery := map[string]string{"client": "gtx", "sl": "en", "tl": "ta", "dt": "t", "q": "Hello. world"}
			for k, v := range wantQuery {
				if q[k] != v {
					t.Errorf("query[%q] = %q, want %q", k, q[k], v)
				}
			}
		})
	}
}

func TestMyMemory(t *testing.T) {
	srv := testutil.NewRecordingServer(t, testutil.JSON(http.StatusOK, map[string]any{
		"responseData": map[string]any{"translatedText": "नमस्ते दुनिया", "match": 0.9},
	}))
	p := NewMyMemory(nil, srv.URL+"/get")

	got, err := p.TranslateChunk(context.Background(), "Hello world", "en", "hi")
	if err != nil {
		t.Fatalf("TranslateChunk() error = %v", err)
	}
	if got != "नमस्ते दुनिया" {
		t.Errorf("TranslateChunk() = %q", got)
	}

	q := srv.Query(0)
	if q["langpair"] != "en|hi" {
		t.Errorf("langpair = %q, want en|hi", q["langpair"])
	}
	if q["q"] != "Hello world" {
		t.Errorf("q = %q, want Hello world", q["q"])
	}
}

func TestMyMemoryMislabelledJSON(t *testing.T) {
	srv := testutil.NewRecordingServer(t, testutil.Raw(http.StatusOK, "text/html; charset=utf-8",
		`{"responseData":{"translatedText":"வணக்கம்"}}`))
	p := NewMyMemory(nil, srv.URL)

	got, err := p.TranslateChunk(context.Background(), "Hello", "en", "ta")
	if err != nil {
		t.Fatalf("TranslateChunk() error = %v", err)
	}
	if got != "வணக்கம்" {
		t.Errorf("TranslateChunk() = %q", got)
	}
}

func TestMyMemoryMissingField(t *testing.T) {
	srv := testutil.NewRecordingServer(t, testutil.JSON(http.StatusOK, map[string]any{"responseStatus": 403}))
	p := NewMyMemory(nil, srv.URL)

	_, err := p.TranslateChunk(context.Background(), "Hello", "en", "hi")
	wantKind(t, err, KindMalformed)
}

func TestProviderErrorMessage(t *testing.T) {
	err := upstreamError("google", 503, strings.Repeat("x", 500))
	msg := err.Error()
	if !strings.Contains(msg, "google: upstream error (status 503)") {
		t.Errorf("Error() = %q", msg)
	}
	if len(msg) > 300 {
		t.Errorf("Error() should truncate the upstream body, got %d bytes", len(msg))
	}
}

func TestDefaultChain(t *testing.T) {
	chain := DefaultChain(nil)

	wantNames := []string{"libretranslate-astian", "libretranslate-de", "google", "mymemory"}
	if len(chain) != len(wantNames) {
		t.Fatalf("DefaultChain() has %d stages, want %d", len(chain), len(wantNames))
	}
	for i, name := range wantNames {
		if chain[i].Provider.Name() != name {
			t.Errorf("stage %d = %s, want %s", i, chain[i].Provider.Name(), name)
		}
		if chain[i].Whole != (name == "mymemory") {
			t.Errorf("stage %d Whole = %v", i, chain[i].Whole)
		}
	}
}
