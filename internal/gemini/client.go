package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"enrichly/internal/config"
	"enrichly/internal/domain"
	"enrichly/internal/enrich"
	"enrichly/internal/port"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

// mockResponseText stands in for a live model when gemini.mock is set, so
// the full pipeline can run without credentials.
const mockResponseText = `{"Material": "Stainless Steel", "Color": "Gray", "Voltage Rating": "120V", "Mounting Type": "Flush"}`

// Client implements port.TextGenerator using Google's Gemini API with the
// Google Search grounding tool enabled.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	mock     bool
	rates    enrich.Rates
	client   *http.Client
}

// NewClient creates a Gemini-backed text generator.
func NewClient(cfg *config.Config) *Client {
	return newClient(cfg, "")
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.Config, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.Config, endpoint string) *Client {
	model := cfg.Gemini.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.Gemini.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Client{
		apiKey:   cfg.Google.APIKey,
		model:    model,
		endpoint: endpoint,
		mock:     cfg.Gemini.Mock,
		rates: enrich.Rates{
			InputCostPerMillion:  cfg.Pricing.InputCostPerMillion,
			OutputCostPerMillion: cfg.Pricing.OutputCostPerMillion,
			USDToINR:             cfg.Pricing.USDToINR,
		},
		client: &http.Client{Timeout: timeout},
	}
}

// Generate sends a prompt to Gemini and returns the response text with its
// token usage. API trouble never surfaces as an error here: a missing key
// or a failed call yields a JSON error sentinel as the response text, so a
// batch row degrades to an empty extraction instead of aborting.
func (c *Client) Generate(ctx context.Context, prompt string) (*port.GenerationResult, error) {
	inputTokens := enrich.CountTokens(prompt)

	if c.mock {
		return c.result(mockResponseText, inputTokens), nil
	}
	if c.apiKey == "" {
		return c.sentinel("API key not configured", inputTokens), nil
	}

	text, err := c.call(ctx, prompt)
	if err != nil {
		return c.sentinel("API call failed: "+err.Error(), inputTokens), nil
	}
	return c.result(text, inputTokens), nil
}

func (c *Client) result(text string, inputTokens int) *port.GenerationResult {
	return &port.GenerationResult{
		Text:  text,
		Usage: enrich.NewUsage(inputTokens, enrich.CountTokens(text), c.rates),
	}
}

// sentinel wraps a failure reason in the JSON error shape downstream
// extraction understands. The prompt's input tokens are still counted;
// the cost stays zero because nothing was generated.
func (c *Client) sentinel(msg string, inputTokens int) *port.GenerationResult {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return &port.GenerationResult{
		Text: string(body),
		Usage: domain.TokenUsage{
			InputTokens: inputTokens,
			TotalTokens: inputTokens,
		},
	}
}

func (c *Client) call(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":        0.0,
			"topP":               0.9,
			"maxOutputTokens":    1000,
			"responseModalities": []string{"TEXT"},
			"responseMimeType":   "application/json",
		},
		"tools": []map[string]interface{}{
			{"google_search": map[string]interface{}{}},
		},
		"safetySettings": []map[string]interface{}{
			{"category": "HARM_CATEGORY_HATE_SPEECH", "threshold": "OFF"},
			{"category": "HARM_CATEGORY_DANGEROUS_CONTENT", "threshold": "OFF"},
			{"category": "HARM_CATEGORY_SEXUALLY_EXPLICIT", "threshold": "OFF"},
			{"category": "HARM_CATEGORY_HARASSMENT", "threshold": "OFF"},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	return extractText(respBody)
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func extractText(body []byte) (string, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from API: no candidates")
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", fmt.Errorf("empty response from API: no parts")
	}

	// Grounded responses can split the answer across parts.
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
