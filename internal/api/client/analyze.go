package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
	"github.com/Joshspeakman/ebay-resale-analyzer/pkg/vision"
)

// AnalyzeReport is the full analysis response: the identified item, the
// market snapshot it was priced against, the recommendation, and what the
// vision call cost.
type AnalyzeReport struct {
	Item           domain.ItemIdentification  `json:"item"`
	Market         domain.MarketSnapshot      `json:"market"`
	Recommendation domain.PriceRecommendation `json:"recommendation"`
	Usage          vision.TokenUsage          `json:"usage"`
}

// Analyze uploads the given photo files and returns the full analysis
// report. Condition may be empty, in which case the server treats it as
// unknown.
func (c *Client) Analyze(ctx context.Context, photoPaths []string, condition string) (*AnalyzeReport, error) {
	if len(photoPaths) == 0 {
		return nil, fmt.Errorf("at least one photo is required")
	}

	req := c.rc.NewRequest().SetContext(ctx)
	files := make([]*os.File, 0, len(photoPaths))
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()
	for _, path := range photoPaths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening photo: %w", err)
		}
		files = append(files, f)
		req.SetFileReader("photo", filepath.Base(path), f)
	}
	if condition != "" {
		req.SetFormData(map[string]string{"condition": condition})
	}

	var report AnalyzeReport
	resp, err := req.SetResult(&report).Post("/api/v1/analyze")
	if err := c.handleError(resp, err); err != nil {
		return nil, err
	}
	return &report, nil
}
