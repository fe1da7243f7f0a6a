package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// OpenAICompatIdentifier implements Identifier using the OpenAI chat
// completions API with image content parts. Compatible with vLLM,
// LM Studio, and other OpenAI-style servers that accept vision input.
type OpenAICompatIdentifier struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// OpenAICompatOption configures the OpenAICompatIdentifier.
type OpenAICompatOption func(*OpenAICompatIdentifier)

// WithOpenAICompatHTTPClient overrides the default HTTP client.
func WithOpenAICompatHTTPClient(c *http.Client) OpenAICompatOption {
	return func(o *OpenAICompatIdentifier) {
		o.client = c
	}
}

// WithOpenAICompatAPIKey overrides the OPENAI_API_KEY environment variable.
func WithOpenAICompatAPIKey(key string) OpenAICompatOption {
	return func(o *OpenAICompatIdentifier) {
		o.apiKey = key
	}
}

// NewOpenAICompatIdentifier creates an OpenAI-compatible identifier.
func NewOpenAICompatIdentifier(
	endpoint, model string,
	opts ...OpenAICompatOption,
) (*OpenAICompatIdentifier, error) {
	o := &OpenAICompatIdentifier{
		endpoint: endpoint,
		model:    model,
		apiKey:   os.Getenv("OPENAI_API_KEY"),
		client:   &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	return o, nil
}

// Name returns the backend name.
func (*OpenAICompatIdentifier) Name() string {
	return "openai_compat"
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Identify sends the prompt and images as data-URL content parts to the
// /v1/chat/completions endpoint.
func (o *OpenAICompatIdentifier) Identify(ctx context.Context, images []Image) (*Result, error) {
	if err := validateImages(images); err != nil {
		return nil, err
	}

	parts := []contentPart{{Type: "text", Text: identifyPrompt}}
	for _, img := range images {
		dataURL := fmt.Sprintf(
			"data:%s;base64,%s",
			img.MIMEType,
			base64.StdEncoding.EncodeToString(img.Data),
		)
		parts = append(parts, contentPart{Type: "image_url", ImageURL: &imageURL{URL: dataURL}})
	}

	body, err := json.Marshal(chatRequest{
		Model:          o.model,
		Messages:       []chatMessage{{Role: "user", Content: parts}},
		ResponseFormat: &respFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := o.endpoint + "/v1/chat/completions"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling openai-compatible API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			Backend:    o.Name(),
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return nil, ErrEmptyResponse
	}

	item, err := parseIdentification(chatResp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return &Result{
		Item: item,
		Usage: TokenUsage{
			PromptTokens:     chatResp.Usage.PromptTokens,
			CompletionTokens: chatResp.Usage.CompletionTokens,
			TotalTokens:      chatResp.Usage.TotalTokens,
		},
	}, nil
}
