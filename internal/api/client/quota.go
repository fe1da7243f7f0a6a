package client

import (
	"context"
	"time"
)

// QuotaStatus reports the server's search quota state. The budget fields are
// only set when the server runs a rate-limited market provider.
type QuotaStatus struct {
	Provider    string     `json:"provider"`
	RateLimited bool       `json:"rateLimited"`
	DailyBudget int64      `json:"dailyBudget,omitempty"`
	Used        int64      `json:"used,omitempty"`
	Remaining   int64      `json:"remaining,omitempty"`
	ResetAt     *time.Time `json:"resetAt,omitempty"`
}

// Quota returns the current search quota status.
func (c *Client) Quota(ctx context.Context) (*QuotaStatus, error) {
	var status QuotaStatus
	resp, err := c.rc.NewRequest().
		SetContext(ctx).
		SetResult(&status).
		Get("/api/v1/quota")
	if err := c.handleError(resp, err); err != nil {
		return nil, err
	}
	return &status, nil
}
