package enrich

import "enrichly/internal/domain"

// CountTokens estimates how many tokens a text consumes using the
// 4-characters-per-token approximation. It is an estimate for cost
// tracking, not a tokenizer.
func CountTokens(text string) int {
	return len(text) / 4
}

// Rates holds the pricing knobs used to turn token counts into money.
// Input and output rates are USD per million tokens.
type Rates struct {
	InputCostPerMillion  float64
	OutputCostPerMillion float64
	USDToINR             float64
}

// Cost is the price of a single model call.
type Cost struct {
	USD float64
	INR float64
}

// ComputeCost prices a model call from its token counts.
func ComputeCost(inputTokens, outputTokens int, r Rates) Cost {
	usd := (float64(inputTokens)/1_000_000)*r.InputCostPerMillion +
		(float64(outputTokens)/1_000_000)*r.OutputCostPerMillion
	return Cost{USD: usd, INR: usd * r.USDToINR}
}

// NewUsage builds the usage record for a model call.
func NewUsage(inputTokens, outputTokens int, r Rates) domain.TokenUsage {
	cost := ComputeCost(inputTokens, outputTokens, r)
	return domain.TokenUsage{
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalTokens:  inputTokens + outputTokens,
		CostINR:      cost.INR,
	}
}
