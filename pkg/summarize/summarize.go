package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/yashsidana/code-clarified/pkg/cache"
	"github.com/yashsidana/code-clarified/pkg/errors"
	"github.com/yashsidana/code-clarified/pkg/httputil"
	"github.com/yashsidana/code-clarified/pkg/observability"
)

// Defaults applied by [NewClient] when the corresponding Config field is
// unset.
const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.4

	// EnvAPIKey is the environment variable consulted when Config.APIKey
	// is empty.
	EnvAPIKey = "GEMINI_API_KEY"

	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	httpTimeout    = 30 * time.Second
	cacheTTL       = 24 * time.Hour
)

const promptTemplate = `You are an expert programmer. Explain what the following Python code does in simple, plain English. Describe the purpose of each function and how control flows through it. Keep the explanation short, at most three paragraphs, and do not include code in your answer.

Python code:

%s`

// Config holds summarizer settings.
type Config struct {
	// APIKey authenticates against the Gemini API. Falls back to the
	// GEMINI_API_KEY environment variable when empty.
	APIKey string

	// Model selects the Gemini model. Defaults to DefaultModel.
	Model string

	// Temperature controls response variability. Defaults to
	// DefaultTemperature when zero.
	Temperature float64

	// BaseURL overrides the API endpoint. Used by tests.
	BaseURL string

	// Cache overrides the response cache. When nil, a file cache in the
	// default cache directory is used.
	Cache *httputil.Cache
}

// Client generates code summaries via the Gemini generateContent API.
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http  *http.Client
	cache *httputil.Cache
	cfg   Config
}

// NewClient creates a summarizer client, filling Config defaults.
// Returns an error with code MISSING_CREDENTIAL when no API key is
// configured.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(EnvAPIKey)
	}
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeMissingCredential,
			"summarizer requires an API key: set %s or summarizer.api_key in the config file", EnvAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	respCache := cfg.Cache
	if respCache == nil {
		var err error
		respCache, err = httputil.NewCache("", cacheTTL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "init summary cache")
		}
	}

	return &Client{
		http:  &http.Client{Timeout: httpTimeout},
		cache: respCache.Namespace("summary:"),
		cfg:   cfg,
	}, nil
}

// Summarize returns a plain-language explanation of source.
// Results are cached by source hash and model; refresh bypasses the cache.
func (c *Client) Summarize(ctx context.Context, source string, refresh bool) (string, error) {
	key := cache.SummaryKey(cache.Hash([]byte(source)), c.cfg.Model)

	if !refresh {
		var cached string
		if ok, _ := c.cache.Get(key, &cached); ok {
			observability.Cache().OnCacheHit(ctx, "summary")
			return cached, nil
		}
		observability.Cache().OnCacheMiss(ctx, "summary")
	}

	var summary string
	err := httputil.RetryWithBackoff(ctx, func() error {
		var genErr error
		summary, genErr = c.generate(ctx, fmt.Sprintf(promptTemplate, source))
		return genErr
	})
	if err != nil {
		return "", err
	}

	if cacheErr := c.cache.Set(key, summary); cacheErr == nil {
		observability.Cache().OnCacheSet(ctx, "summary", len(summary))
	}
	return summary, nil
}

// =============================================================================
// Gemini Wire Format
// =============================================================================

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: c.cfg.Temperature},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode request")
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	hooks := observability.HTTP()
	host, path := requestTarget(endpoint)
	hooks.OnRequest(ctx, http.MethodPost, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodPost, host, path, err)
		// Deadline expiry is not retryable: the budget is already spent.
		if stderrors.Is(err, context.DeadlineExceeded) {
			return "", errors.Wrap(errors.ErrCodeTimeout, err, "gemini request timed out")
		}
		return "", &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "gemini request")}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodPost, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return "", err
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.Wrap(errors.ErrCodeSummaryFailed, err, "decode response")
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New(errors.ErrCodeSummaryFailed, "model returned no content")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.New(errors.ErrCodeMissingCredential, "gemini rejected the API key (status %d)", code)
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "gemini model or endpoint not found (status %d)", code)
	case code == http.StatusTooManyRequests || code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "gemini status %d", code)}
	default:
		return errors.New(errors.ErrCodeSummaryFailed, "gemini status %d", code)
	}
}

func requestTarget(endpoint string) (host, path string) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", endpoint
	}
	return u.Host, u.Path
}
