package domain

// TokenUsage is the accounting for one model call. TotalTokens is always
// InputTokens + OutputTokens; CostINR is derived from the configured
// per-million rates and USD-to-INR exchange rate.
type TokenUsage struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	TotalTokens  int     `json:"total_tokens"`
	CostINR      float64 `json:"cost_inr"`
}

// Add returns the element-wise sum of two usages.
func (u TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
		TotalTokens:  u.TotalTokens + other.TotalTokens,
		CostINR:      u.CostINR + other.CostINR,
	}
}

// EnrichmentRecord is one product's enrichment outcome. It is created fresh
// per request, fully populated by the enrichment service, and immutable once
// returned. Attributes keys are always a subset of RequestedAttributes when
// the latter is non-empty.
type EnrichmentRecord struct {
	MPN                   string         `json:"mpn"`
	Manufacturer          string         `json:"manufacturer,omitempty"`
	Category              string         `json:"category,omitempty"`
	Subcategory           string         `json:"subcategory,omitempty"`
	ImageURL              string         `json:"image_url,omitempty"`
	Attributes            map[string]any `json:"attributes"`
	ProcessingTimeSeconds float64        `json:"processing_time_seconds"`
	Confidence            Confidence     `json:"confidence"`
	RequestedAttributes   []string       `json:"requested_attributes"`
	TokenData             TokenUsage     `json:"token_data"`
	RawResponse           string         `json:"raw_gemini_response,omitempty"`
}

// ImageCandidate is one image-search result after client-side filtering.
// URL is always a well-formed http(s) URL; the nested URLs are blanked when
// malformed rather than dropped.
type ImageCandidate struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	SourceURL    string `json:"source_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

// ImageMatch is the outcome of selecting the best candidate for a product.
type ImageMatch struct {
	ImageURL          string     `json:"image_url,omitempty"`
	ThumbnailURL      string     `json:"thumbnail_url,omitempty"`
	SourceURL         string     `json:"source_url,omitempty"`
	ManufacturerMatch bool       `json:"manufacturer_match"`
	Confidence        Confidence `json:"confidence"`
}
