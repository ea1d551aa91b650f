package summarize

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yashsidana/code-clarified/pkg/errors"
	"github.com/yashsidana/code-clarified/pkg/httputil"
)

func candidateResponse(text string) generateResponse {
	var resp generateResponse
	resp.Candidates = []struct {
		Content content `json:"content"`
	}{
		{Content: content{Parts: []part{{Text: text}}}},
	}
	return resp
}

// newTestClient wires a Client against a local test server with an isolated
// cache directory.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	client, err := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Cache:   cache,
	})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return client
}

func TestSummarize(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(candidateResponse("This function compares two numbers."))
	})

	got, err := client.Summarize(context.Background(), "def f(a, b):\n    return a\n", false)
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if got != "This function compares two numbers." {
		t.Errorf("summary = %q", got)
	}

	if want := "/models/" + DefaultModel + ":generateContent"; gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotReq.GenerationConfig.Temperature != DefaultTemperature {
		t.Errorf("temperature = %v, want %v", gotReq.GenerationConfig.Temperature, DefaultTemperature)
	}
	if len(gotReq.Contents) != 1 || !strings.Contains(gotReq.Contents[0].Parts[0].Text, "def f(a, b):") {
		t.Error("prompt does not include the source code")
	}
}

func TestSummarizeUsesCache(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(candidateResponse("cached answer"))
	})

	for range 2 {
		got, err := client.Summarize(context.Background(), "x = 1", false)
		if err != nil {
			t.Fatalf("Summarize() error: %v", err)
		}
		if got != "cached answer" {
			t.Errorf("summary = %q", got)
		}
	}
	if calls != 1 {
		t.Errorf("API calls = %d, want 1 (second hit must come from cache)", calls)
	}
}

func TestSummarizeRefreshBypassesCache(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(candidateResponse("fresh"))
	})

	for range 2 {
		if _, err := client.Summarize(context.Background(), "x = 1", true); err != nil {
			t.Fatalf("Summarize() error: %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("API calls = %d, want 2 with refresh", calls)
	}
}

func TestNewClientMissingKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := NewClient(Config{})
	if errors.GetCode(err) != errors.ErrCodeMissingCredential {
		t.Errorf("error code = %v, want MISSING_CREDENTIAL (err: %v)", errors.GetCode(err), err)
	}
}

func TestSummarizeRejectedKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Summarize(context.Background(), "x = 1", false)
	if errors.GetCode(err) != errors.ErrCodeMissingCredential {
		t.Errorf("error code = %v, want MISSING_CREDENTIAL (err: %v)", errors.GetCode(err), err)
	}
}

func TestSummarizeEmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{})
	})

	_, err := client.Summarize(context.Background(), "x = 1", false)
	if errors.GetCode(err) != errors.ErrCodeSummaryFailed {
		t.Errorf("error code = %v, want SUMMARY_FAILED (err: %v)", errors.GetCode(err), err)
	}
}

func TestSummarizeTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(candidateResponse("too late"))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Summarize(ctx, "x = 1", false)
	if errors.GetCode(err) != errors.ErrCodeTimeout {
		t.Errorf("error code = %v, want TIMEOUT (err: %v)", errors.GetCode(err), err)
	}
	// The deadline is spent; a retry could never succeed.
	var re *httputil.RetryableError
	if stderrors.As(err, &re) {
		t.Error("timeout error marked retryable")
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code      int
		wantCode  errors.Code
		retryable bool
	}{
		{http.StatusOK, "", false},
		{http.StatusUnauthorized, errors.ErrCodeMissingCredential, false},
		{http.StatusForbidden, errors.ErrCodeMissingCredential, false},
		{http.StatusBadRequest, errors.ErrCodeSummaryFailed, false},
		{http.StatusNotFound, errors.ErrCodeNotFound, false},
		{http.StatusTooManyRequests, errors.ErrCodeNetwork, true},
		{http.StatusInternalServerError, errors.ErrCodeNetwork, true},
		{http.StatusBadGateway, errors.ErrCodeNetwork, true},
	}

	for _, tt := range tests {
		err := checkStatus(tt.code)
		if tt.wantCode == "" {
			if err != nil {
				t.Errorf("checkStatus(%d) = %v, want nil", tt.code, err)
			}
			continue
		}
		if got := errors.GetCode(err); got != tt.wantCode {
			t.Errorf("checkStatus(%d) code = %v, want %v", tt.code, got, tt.wantCode)
		}
		var re *httputil.RetryableError
		if got := stderrors.As(err, &re); got != tt.retryable {
			t.Errorf("checkStatus(%d) retryable = %v, want %v", tt.code, got, tt.retryable)
		}
	}
}
