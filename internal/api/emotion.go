package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// DetectEmotion uploads a JPEG photo for emotion detection. filename is
// only advisory; the backend inspects the image itself.
func (c *Client) DetectEmotion(ctx context.Context, filename string, image []byte) (*EmotionResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("write image part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emotion/detect", &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := c.attachBearer(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST /emotion/detect: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(resp.StatusCode, data)
	}

	var out EmotionResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &out, nil
}

// EmotionStats fetches the authenticated user's detected-emotion history.
func (c *Client) EmotionStats(ctx context.Context) (*EmotionStats, error) {
	var out EmotionStats
	if err := c.doJSON(ctx, http.MethodGet, "/emotion/stats", nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
