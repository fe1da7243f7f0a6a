// Package vision identifies physical items from photographs using multimodal
// LLM backends, abstracted behind an interface for testability.
package vision

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
)

// MaxImages is the most photos a single identification call accepts.
const MaxImages = 5

// Image is one photo of the item being identified.
type Image struct {
	Data     []byte
	MIMEType string
}

// TokenUsage tracks model token consumption and estimated cost for one call.
type TokenUsage struct {
	PromptTokens     int     `json:"promptTokens"`
	CompletionTokens int     `json:"completionTokens"`
	TotalTokens      int     `json:"totalTokens"`
	CostUSD          float64 `json:"costUsd"`
}

// Result holds the identification plus usage accounting.
type Result struct {
	Item  domain.ItemIdentification `json:"item"`
	Usage TokenUsage                `json:"usage"`
}

// Identifier identifies an item from one or more photos.
type Identifier interface {
	Identify(ctx context.Context, images []Image) (*Result, error)
	Name() string
}

// ErrMissingAPIKey indicates the backend has no credential configured.
var ErrMissingAPIKey = errors.New("vision: missing API key")

// ErrEmptyResponse indicates the model returned no candidates or no text.
var ErrEmptyResponse = errors.New("vision: empty model response")

// ErrNoImages indicates an identification call with zero photos.
var ErrNoImages = errors.New("vision: no images provided")

// ErrTooManyImages indicates an identification call over the MaxImages cap.
var ErrTooManyImages = fmt.Errorf("vision: more than %d images provided", MaxImages)

// ParseError indicates the model answered, but not with parseable JSON.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vision: parsing model output: %v (output: %s)", e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UpstreamError carries a non-2xx status from the backing API.
type UpstreamError struct {
	Backend    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("vision: %s API error (status %d): %s", e.Backend, e.StatusCode, e.Body)
}

// RateLimited reports whether the upstream rejected the call for quota.
func (e *UpstreamError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func validateImages(images []Image) error {
	if len(images) == 0 {
		return ErrNoImages
	}
	if len(images) > MaxImages {
		return ErrTooManyImages
	}
	return nil
}
