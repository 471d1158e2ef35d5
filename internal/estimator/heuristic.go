// internal/estimator/heuristic.go
package estimator

import "math"

const (
	heuristicBasePrice  = 206856.0
	heuristicMinPrice   = 50000
	heuristicMaxPrice   = 1500000
	heuristicMarginRate = 0.15

	referenceIncome    = 3.87
	referenceRooms     = 5.33
	referenceBedrooms  = 1.08
	referenceOccupancy = 2.92
	referencePop       = 1425.0
)

type multiplierRule struct {
	region string
	factor float64
	match  func(latitude, longitude float64) bool
}

// Ordered; first match wins. The LA metro rectangle lies inside the SoCal coastal one,
// so in practice it never fires.
var regionalMultipliers = []multiplierRule{
	{"bay_area", 1.8, func(lat, lon float64) bool { return lon < -121.5 && lat > 37.0 }},
	{"socal_coastal", 1.4, func(lat, lon float64) bool { return lon < -117.5 && lat < 34.5 }},
	{"la_metro", 1.3, func(lat, lon float64) bool { return -118.5 < lon && lon < -117.5 && 33.5 < lat && lat < 34.5 }},
	{"none", 1.0, always},
}

type heuristicStrategy struct{}

// NewHeuristicStrategy returns the additive formula with regional multipliers.
func NewHeuristicStrategy() Strategy {
	return heuristicStrategy{}
}

func (heuristicStrategy) Info() StrategyInfo {
	return StrategyInfo{
		Name:        Heuristic,
		Description: "Additive market heuristic with regional multipliers",
		Clamped:     true,
		MinPrice:    heuristicMinPrice,
		MaxPrice:    heuristicMaxPrice,
	}
}

func (s heuristicStrategy) Estimate(f PropertyFeatures) PricePrediction {
	rule := regionalMultiplier(f.Latitude, f.Longitude)
	total := clamp(heuristicRawPrice(f)*rule.factor, heuristicMinPrice, heuristicMaxPrice)
	price := int(total)

	loc := s.Classify(f.Latitude, f.Longitude)
	return PricePrediction{
		Strategy:   Heuristic,
		Price:      price,
		Confidence: newConfidenceInterval(price, int(float64(price)*heuristicMarginRate)),
		Location:   loc,
		Factors:    heuristicFactors.Derive(f, loc),
		MarketTier: MarketTier(price),
	}
}

func (heuristicStrategy) Classify(latitude, longitude float64) Location {
	return heuristicRegions.Classify(latitude, longitude)
}

// heuristicRawPrice is the price before the regional multiplier and the clamp.
func heuristicRawPrice(f PropertyFeatures) float64 {
	income := (f.MedianIncome / referenceIncome) * 120000
	coastal := math.Max(0, (-122-f.Longitude)*8000)
	latitude := (35 - f.Latitude) * 5000
	age := math.Max(0, (50-f.HouseAge)*800)
	rooms := (f.AverageRooms - referenceRooms) * 5000
	bedrooms := (f.AverageBedrooms - referenceBedrooms) * 8000
	occupancy := (referenceOccupancy - f.AverageOccupancy) * 3000
	population := (f.Population - referencePop) * 2

	return heuristicBasePrice +
		income +
		coastal +
		latitude +
		age +
		rooms +
		bedrooms +
		occupancy +
		population
}

func regionalMultiplier(latitude, longitude float64) multiplierRule {
	for _, rule := range regionalMultipliers {
		if rule.match(latitude, longitude) {
			return rule
		}
	}
	return regionalMultipliers[len(regionalMultipliers)-1]
}
