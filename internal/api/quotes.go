package api

import (
	"context"
	"net/http"
)

// DailyQuote fetches the motivational quote matched to the user's last
// detected mood.
func (c *Client) DailyQuote(ctx context.Context) (*QuoteResponse, error) {
	var out QuoteResponse
	if err := c.doJSON(ctx, http.MethodGet, "/quotes/daily", nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
