// internal/estimator/prediction.go
package estimator

// ConfidenceInterval is a display-only symmetric margin around the point estimate.
type ConfidenceInterval struct {
	Lower  int `json:"lower"`
	Upper  int `json:"upper"`
	Margin int `json:"margin"`
}

// Location is the named region a coordinate falls into.
type Location struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PricePrediction is derived per request and never stored.
type PricePrediction struct {
	Strategy   StrategyName       `json:"strategy"`
	Price      int                `json:"price"`
	Confidence ConfidenceInterval `json:"confidence"`
	Location   Location           `json:"location"`
	Factors    []string           `json:"factors"`
	MarketTier string             `json:"marketTier"`
}

func newConfidenceInterval(price, margin int) ConfidenceInterval {
	return ConfidenceInterval{
		Lower:  price - margin,
		Upper:  price + margin,
		Margin: margin,
	}
}

// MarketTier buckets a point estimate into the price-analysis tiers.
func MarketTier(price int) string {
	switch {
	case price > 800000:
		return "Luxury Market"
	case price > 500000:
		return "Premium Market"
	case price > 300000:
		return "Mid-Range Market"
	default:
		return "Budget Market"
	}
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
