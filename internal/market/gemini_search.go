package market

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lithammer/dedent"
	"google.golang.org/genai"
)

// searchPromptTmpl asks Gemini, armed with the Google Search tool, for eBay
// comp statistics as strict JSON. Field names match SearchResult.
var searchPromptTmpl = dedent.Dedent(`
	Search the web for eBay listings matching: %s

	Find both SOLD/completed listings and currently ACTIVE listings for this
	item, then summarize what you found as JSON with exactly these fields:
	- soldCount: number of sold/completed listings found (0 if none)
	- activeCount: number of active listings found (0 if none)
	- avgSoldPrice: average sold price in USD (0 if no sold listings)
	- avgActivePrice: average asking price of active listings in USD (0 if none)
	- priceLow: lowest price observed across all listings (0 if none)
	- priceHigh: highest price observed across all listings (0 if none)

	Base the numbers only on listings for this specific item. If you cannot
	find any matching listings, return all zeros.

	Respond ONLY with the JSON object, no markdown or other text.`)

// GeminiSearcher implements Searcher using Gemini with the Google Search
// tool grounding its answers in live results.
type GeminiSearcher struct {
	client *genai.Client
	model  string
	apiKey string
}

// GeminiSearcherOption configures the GeminiSearcher.
type GeminiSearcherOption func(*GeminiSearcher)

// WithGeminiSearcherAPIKey overrides the GEMINI_API_KEY environment variable.
func WithGeminiSearcherAPIKey(key string) GeminiSearcherOption {
	return func(s *GeminiSearcher) {
		s.apiKey = key
	}
}

// NewGeminiSearcher creates a Gemini-backed searcher for the given model.
func NewGeminiSearcher(ctx context.Context, model string, opts ...GeminiSearcherOption) (*GeminiSearcher, error) {
	s := &GeminiSearcher{
		model:  model,
		apiKey: os.Getenv("GEMINI_API_KEY"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.apiKey == "" {
		return nil, fmt.Errorf("gemini searcher: missing API key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: s.apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	s.client = client

	return s, nil
}

// Name returns the searcher name.
func (*GeminiSearcher) Name() string {
	return "gemini-search"
}

// Search runs one grounded comp search and parses the JSON summary.
func (s *GeminiSearcher) Search(ctx context.Context, query string) (*SearchResult, error) {
	prompt := fmt.Sprintf(searchPromptTmpl, query)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini search call: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini search: empty response")
	}

	return parseSearchResult(resp.Text())
}

// parseSearchResult extracts the JSON object from model output, tolerating
// markdown fences and surrounding prose.
func parseSearchResult(text string) (*SearchResult, error) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("gemini search: no JSON object in response: %s", text)
	}

	var result SearchResult
	if err := json.Unmarshal([]byte(text[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("gemini search: parsing response: %w (response: %s)", err, text)
	}

	// Negative counts or prices would poison the engine's branch logic.
	if result.SoldCount < 0 {
		result.SoldCount = 0
	}
	if result.ActiveCount < 0 {
		result.ActiveCount = 0
	}
	if result.AvgSoldPrice < 0 {
		result.AvgSoldPrice = 0
	}
	if result.AvgActivePrice < 0 {
		result.AvgActivePrice = 0
	}

	return &result, nil
}
