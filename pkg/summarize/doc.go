// Package summarize generates plain-language explanations of Python source
// using the Gemini API.
//
// The summarizer is an optional enrichment: callers treat its failures as
// non-fatal and return partial results without a summary. Responses are
// cached on disk keyed by source hash and model, so repeated requests for
// the same snippet do not spend API quota.
//
// # Configuration
//
//	cfg := summarize.Config{APIKey: os.Getenv("GEMINI_API_KEY")}
//	client, err := summarize.NewClient(cfg)
//	text, err := client.Summarize(ctx, source, false)
//
// Model and temperature default to [DefaultModel] and [DefaultTemperature]
// when unset.
package summarize
