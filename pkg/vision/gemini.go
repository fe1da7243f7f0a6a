package vision

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// Gemini 3.0 Flash pricing (per million tokens).
const (
	geminiInputPricePerMillion  = 0.50
	geminiOutputPricePerMillion = 3.00
)

// GeminiIdentifier implements Identifier using Google's Gemini API.
type GeminiIdentifier struct {
	client *genai.Client
	model  string
	apiKey string
}

// GeminiOption configures the GeminiIdentifier.
type GeminiOption func(*GeminiIdentifier)

// WithGeminiAPIKey overrides the GEMINI_API_KEY environment variable.
func WithGeminiAPIKey(key string) GeminiOption {
	return func(g *GeminiIdentifier) {
		g.apiKey = key
	}
}

// NewGeminiIdentifier creates a Gemini-backed identifier for the given model.
func NewGeminiIdentifier(ctx context.Context, model string, opts ...GeminiOption) (*GeminiIdentifier, error) {
	g := &GeminiIdentifier{
		model:  model,
		apiKey: os.Getenv("GEMINI_API_KEY"),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	g.client = client

	return g, nil
}

// Name returns the backend name.
func (*GeminiIdentifier) Name() string {
	return "gemini"
}

// Identify sends the prompt plus inline image blobs to Gemini and parses the
// JSON identification from the response.
func (g *GeminiIdentifier) Identify(ctx context.Context, images []Image) (*Result, error) {
	if err := validateImages(images); err != nil {
		return nil, err
	}

	parts := []*genai.Part{genai.NewPartFromText(identifyPrompt)}
	for _, img := range images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{Data: img.Data, MIMEType: img.MIMEType},
		})
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("calling gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}

	text := resp.Text()
	if text == "" {
		return nil, ErrEmptyResponse
	}

	item, err := parseIdentification(text)
	if err != nil {
		return nil, err
	}

	result := &Result{Item: item}
	if resp.UsageMetadata != nil {
		result.Usage = TokenUsage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
		result.Usage.CostUSD = geminiCost(result.Usage.PromptTokens, result.Usage.CompletionTokens)
	}

	return result, nil
}

func geminiCost(inputTokens, outputTokens int) float64 {
	inputCost := float64(inputTokens) / 1_000_000 * geminiInputPricePerMillion
	outputCost := float64(outputTokens) / 1_000_000 * geminiOutputPricePerMillion
	return inputCost + outputCost
}
