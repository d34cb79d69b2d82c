package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountTokens(t *testing.T) {
	assert.Equal(t, 0, CountTokens(""))
	assert.Equal(t, 0, CountTokens("abc"))
	assert.Equal(t, 1, CountTokens("abcd"))
	assert.Equal(t, 1, CountTokens("abcdefg"))
	assert.Equal(t, 2, CountTokens("abcdefgh"))
	assert.Equal(t, 25, CountTokens(string(make([]byte, 100))))
}

func TestComputeCost(t *testing.T) {
	rates := Rates{InputCostPerMillion: 0.10, OutputCostPerMillion: 0.40, USDToINR: 86.0}

	cost := ComputeCost(1_000_000, 0, rates)
	assert.InDelta(t, 0.10, cost.USD, 1e-9)
	assert.InDelta(t, 8.60, cost.INR, 1e-9)

	cost = ComputeCost(0, 1_000_000, rates)
	assert.InDelta(t, 0.40, cost.USD, 1e-9)
	assert.InDelta(t, 34.40, cost.INR, 1e-9)

	cost = ComputeCost(500_000, 250_000, rates)
	assert.InDelta(t, 0.15, cost.USD, 1e-9)
	assert.InDelta(t, 12.90, cost.INR, 1e-9)

	cost = ComputeCost(0, 0, rates)
	assert.Zero(t, cost.USD)
	assert.Zero(t, cost.INR)
}

func TestComputeCost_INRTracksUSDByExchangeRate(t *testing.T) {
	rates := Rates{InputCostPerMillion: 0.10, OutputCostPerMillion: 0.40, USDToINR: 86.0}

	for _, tokens := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {137, 89}, {1_000_000, 2_000_000}} {
		cost := ComputeCost(tokens[0], tokens[1], rates)
		assert.InDelta(t, cost.USD*rates.USDToINR, cost.INR, 1e-12)
	}
}

func TestComputeCost_MonotonicInEachArgument(t *testing.T) {
	rates := Rates{InputCostPerMillion: 0.10, OutputCostPerMillion: 0.40, USDToINR: 86.0}

	prev := ComputeCost(0, 500, rates)
	for in := 1; in <= 5000; in += 250 {
		cost := ComputeCost(in, 500, rates)
		assert.GreaterOrEqual(t, cost.USD, prev.USD)
		assert.GreaterOrEqual(t, cost.INR, prev.INR)
		prev = cost
	}

	prev = ComputeCost(500, 0, rates)
	for out := 1; out <= 5000; out += 250 {
		cost := ComputeCost(500, out, rates)
		assert.GreaterOrEqual(t, cost.USD, prev.USD)
		assert.GreaterOrEqual(t, cost.INR, prev.INR)
		prev = cost
	}
}

func TestNewUsage(t *testing.T) {
	rates := Rates{InputCostPerMillion: 0.10, OutputCostPerMillion: 0.40, USDToINR: 86.0}

	usage := NewUsage(1200, 300, rates)
	assert.Equal(t, 1200, usage.InputTokens)
	assert.Equal(t, 300, usage.OutputTokens)
	assert.Equal(t, 1500, usage.TotalTokens)
	assert.InDelta(t, (1200.0/1e6*0.10+300.0/1e6*0.40)*86.0, usage.CostINR, 1e-12)
}
