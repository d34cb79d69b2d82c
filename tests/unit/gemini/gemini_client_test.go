package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enrichly/internal/config"
	"enrichly/internal/gemini"
)

func testConfig(apiKey string) *config.Config {
	return &config.Config{
		Google: config.GoogleConfig{APIKey: apiKey},
		Gemini: config.GeminiConfig{Model: "gemini-2.0-flash", TimeoutSecs: 30},
		Pricing: config.PricingConfig{
			InputCostPerMillion:  0.10,
			OutputCostPerMillion: 0.40,
			USDToINR:             86.0,
		},
	}
}

func newTestClient(serverURL string) *gemini.Client {
	return gemini.NewClientWithEndpoint(testConfig("test-gemini-key"), serverURL)
}

func successResponse(texts ...string) map[string]interface{} {
	parts := make([]map[string]interface{}, len(texts))
	for i, text := range texts {
		parts[i] = map[string]interface{}{"text": text}
	}
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": parts,
				},
				"finishReason": "STOP",
			},
		},
	}
}

func TestClient_Generate_Success(t *testing.T) {
	answer := `{"Material": "Copper", "Voltage Rating": "120V"}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		contents := reqBody["contents"].([]interface{})
		require.Len(t, contents, 1)
		msg := contents[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])

		parts := msg["parts"].([]interface{})
		require.Len(t, parts, 1)
		textPart := parts[0].(map[string]interface{})
		assert.Equal(t, "What is QO120 made of?", textPart["text"])

		genConfig := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, float64(0), genConfig["temperature"])
		assert.Equal(t, 0.9, genConfig["topP"])
		assert.Equal(t, float64(1000), genConfig["maxOutputTokens"])
		assert.Equal(t, "application/json", genConfig["responseMimeType"])

		// Search grounding must be on: the prompt tells the model to
		// consult distributor sites.
		tools := reqBody["tools"].([]interface{})
		require.Len(t, tools, 1)
		assert.Contains(t, tools[0].(map[string]interface{}), "google_search")

		w.WriteHeader(http.StatusOK)
		require.NoError(t, json.NewEncoder(w).Encode(successResponse(answer)))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	prompt := "What is QO120 made of?"
	result, err := c.Generate(context.Background(), prompt)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, answer, result.Text)

	// Token counts come from the 4-chars-per-token estimate.
	assert.Equal(t, len(prompt)/4, result.Usage.InputTokens)
	assert.Equal(t, len(answer)/4, result.Usage.OutputTokens)
	assert.Equal(t, result.Usage.InputTokens+result.Usage.OutputTokens, result.Usage.TotalTokens)

	wantINR := (float64(result.Usage.InputTokens)/1e6*0.10 + float64(result.Usage.OutputTokens)/1e6*0.40) * 86.0
	assert.InDelta(t, wantINR, result.Usage.CostINR, 1e-12)
}

func TestClient_Generate_ConcatenatesParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		require.NoError(t, json.NewEncoder(w).Encode(successResponse(`{"Material":`, ` "Steel"}`)))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	result, err := c.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, `{"Material": "Steel"}`, result.Text)
}

func TestClient_Generate_MissingAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("the API must not be called without a key")
	}))
	defer server.Close()

	c := gemini.NewClientWithEndpoint(testConfig(""), server.URL)

	prompt := "What is QO120 made of?"
	result, err := c.Generate(context.Background(), prompt)

	// No key is a degraded mode, not a failure: the sentinel text flows
	// through extraction like any other unusable response.
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "API key not configured"}`, result.Text)
	assert.Equal(t, len(prompt)/4, result.Usage.InputTokens)
	assert.Zero(t, result.Usage.OutputTokens)
	assert.Zero(t, result.Usage.CostINR)
}

func TestClient_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	result, err := c.Generate(context.Background(), "prompt")

	require.NoError(t, err)

	var sentinel map[string]string
	require.NoError(t, json.Unmarshal([]byte(result.Text), &sentinel))
	assert.Contains(t, sentinel["error"], "API call failed")
	assert.Contains(t, sentinel["error"], "status 429")
	assert.Zero(t, result.Usage.OutputTokens)
	assert.Zero(t, result.Usage.CostINR)
}

func TestClient_Generate_ConnectionRefused(t *testing.T) {
	c := newTestClient("http://localhost:1")

	result, err := c.Generate(context.Background(), "prompt")

	require.NoError(t, err)

	var sentinel map[string]string
	require.NoError(t, json.Unmarshal([]byte(result.Text), &sentinel))
	assert.Contains(t, sentinel["error"], "API call failed")
}

func TestClient_Generate_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	result, err := c.Generate(context.Background(), "prompt")

	require.NoError(t, err)

	var sentinel map[string]string
	require.NoError(t, json.Unmarshal([]byte(result.Text), &sentinel))
	assert.Contains(t, sentinel["error"], "no candidates")
}

func TestClient_Generate_MockMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("mock mode must not call the API")
	}))
	defer server.Close()

	cfg := testConfig("test-gemini-key")
	cfg.Gemini.Mock = true
	c := gemini.NewClientWithEndpoint(cfg, server.URL)

	result, err := c.Generate(context.Background(), "prompt")

	require.NoError(t, err)

	var attrs map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Text), &attrs))
	assert.NotEmpty(t, attrs)
	assert.NotContains(t, attrs, "error")
	assert.Positive(t, result.Usage.OutputTokens)
}
