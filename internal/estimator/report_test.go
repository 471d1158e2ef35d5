// internal/estimator/report_test.go
package estimator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDollars(t *testing.T) {
	tests := []struct {
		amount   int
		expected string
	}{
		{0, "$0"},
		{999, "$999"},
		{50000, "$50,000"},
		{671885, "$671,885"},
		{1500000, "$1,500,000"},
		{-50000, "-$50,000"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDollars(tt.amount))
		})
	}
}

func TestRender(t *testing.T) {
	f := DefaultFeatures()
	f.MedianIncome = 12
	f.HouseAge = 5
	p := NewHeuristicStrategy().Estimate(f)

	out := Render(p)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Equal(t, "Predicted House Price: "+FormatDollars(p.Price), lines[0])
	assert.Equal(t, "Confidence Range: "+FormatDollars(p.Confidence.Lower)+" - "+FormatDollars(p.Confidence.Upper), lines[1])
	assert.Equal(t, "Location: Los Angeles Metro (Major urban center - high demand)", lines[2])
	assert.Equal(t, "Market: "+p.MarketTier, lines[3])
	assert.Equal(t, "Strategy: heuristic", lines[4])
	assert.Equal(t, "Factors:", lines[5])
	assert.Equal(t, "  - Affluent Area: High income supports premium pricing", lines[6])
	assert.Len(t, lines, 6+len(p.Factors))
}

func TestRender_NoFactors(t *testing.T) {
	out := Render(NewHeuristicStrategy().Estimate(DefaultFeatures()))

	assert.Contains(t, out, "Predicted House Price: $671,885\n")
	assert.Contains(t, out, "Confidence Range: $571,103 - $772,667\n")
	assert.NotContains(t, out, "Factors:")
}
