package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Events lists all campus events.
func (c *Client) Events(ctx context.Context) ([]Event, error) {
	var out []Event
	if err := c.doJSON(ctx, http.MethodGet, "/events", nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EventDetails fetches a single event.
func (c *Client) EventDetails(ctx context.Context, eventID string) (*Event, error) {
	var out Event
	path := "/events/" + url.PathEscape(eventID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Participate registers the authenticated user for an event and returns
// the updated event.
func (c *Client) Participate(ctx context.Context, eventID string) (*Event, error) {
	var out Event
	path := "/events/" + url.PathEscape(eventID) + "/participate"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecommendedEvents fetches the daily mood-matched event recommendations.
func (c *Client) RecommendedEvents(ctx context.Context) (*RecommendationsResponse, error) {
	var out RecommendationsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/events/recommendations/daily", nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadVoucher fetches the participation voucher PDF for an event.
func (c *Client) DownloadVoucher(ctx context.Context, eventID string) ([]byte, error) {
	path := "/events/" + url.PathEscape(eventID) + "/voucher"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if err := c.attachBearer(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read voucher: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp.StatusCode, data)
	}
	return data, nil
}
