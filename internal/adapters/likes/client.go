package likes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pandal-planner/internal/ports"
)

// Client toggles venue likes against the upstream catalog service on
// behalf of an authenticated user.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("likes client: base URL must not be empty")
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// LikeResult is the upstream state after a toggle.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// Toggle flips the like state of one venue for the token's user.
func (c *Client) Toggle(ctx context.Context, venueID int, token string) (LikeResult, error) {
	url := fmt.Sprintf("%s/api/pandals/%d/like/", c.baseURL, venueID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return LikeResult{}, fmt.Errorf("toggle like: create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return LikeResult{}, fmt.Errorf("toggle like: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return LikeResult{}, ports.ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return LikeResult{}, fmt.Errorf("toggle like: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var result LikeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return LikeResult{}, fmt.Errorf("toggle like: decode response: %w", err)
	}

	return result, nil
}
