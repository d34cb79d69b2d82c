package cse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"enrichly/internal/config"
	"enrichly/internal/domain"
	"enrichly/internal/enrich"
	"enrichly/internal/port"
)

const (
	searchEndpoint = "https://www.googleapis.com/customsearch/v1"
	maxResults     = 10
)

// Client implements port.ImageSearcher using the Google Custom Search API
// in image mode.
type Client struct {
	apiKey   string
	cseID    string
	endpoint string
	client   *http.Client
}

// NewClient creates a Google Custom Search image client.
func NewClient(cfg *config.Config) *Client {
	return newClient(cfg, "")
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.Config, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.Config, endpoint string) *Client {
	if endpoint == "" {
		endpoint = searchEndpoint
	}
	return &Client{
		apiKey:   cfg.Google.APIKey,
		cseID:    cfg.Google.CSEID,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Search looks up product photos for a part number. Without credentials it
// returns no candidates rather than failing, so enrichment still works on
// an unconfigured install.
func (c *Client) Search(ctx context.Context, input port.ImageSearchInput) ([]domain.ImageCandidate, error) {
	if c.apiKey == "" || c.cseID == "" {
		return nil, nil
	}

	query := input.PartNumber + " product"
	if input.Manufacturer != "" {
		query += " " + input.Manufacturer
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("cx", c.cseID)
	q.Set("q", query)
	q.Set("searchType", "image")
	q.Set("num", fmt.Sprintf("%d", maxResults))
	q.Set("imgType", "photo")
	q.Set("fileType", "jpg|png")
	q.Set("safe", "off")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling custom search API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("custom search API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	return parseResults(respBody)
}

// searchResponse models the Custom Search API response.
type searchResponse struct {
	Items []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
		Image struct {
			ContextLink   string `json:"contextLink"`
			ThumbnailLink string `json:"thumbnailLink"`
			Height        int    `json:"height"`
			Width         int    `json:"width"`
		} `json:"image"`
	} `json:"items"`
}

func parseResults(body []byte) ([]domain.ImageCandidate, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	candidates := make([]domain.ImageCandidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		// Image results sometimes carry inline x-raw-image: payloads
		// instead of fetchable links.
		if item.Link == "" || strings.HasPrefix(item.Link, "x-raw-image:") {
			continue
		}
		if !enrich.IsWebURL(item.Link) {
			continue
		}

		title := item.Title
		if title == "" {
			title = "Product Image"
		}
		cand := domain.ImageCandidate{
			Title:        title,
			URL:          item.Link,
			SourceURL:    item.Image.ContextLink,
			ThumbnailURL: item.Image.ThumbnailLink,
			Width:        item.Image.Width,
			Height:       item.Image.Height,
		}
		if cand.SourceURL != "" && !enrich.IsWebURL(cand.SourceURL) {
			cand.SourceURL = ""
		}
		if cand.ThumbnailURL != "" && !enrich.IsWebURL(cand.ThumbnailURL) {
			cand.ThumbnailURL = ""
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
