// internal/estimator/standardized.go
package estimator

const (
	standardizedBasePrice = 206856.0
	standardizedMinPrice  = 50000
	standardizedMaxPrice  = 800000

	coastalBonus     = 25000.0
	highIncomeBonus  = 35000.0
	coastalLongitude = -118.5
	highIncomeCutoff = 6.0

	// ModelMargin is the fixed confidence margin of the standardized and regression forms.
	ModelMargin = 31094
)

// Reference statistics of the California housing dataset, in dataset column order.
var (
	referenceMeans = [8]float64{3.8707, 28.6395, 5.4290, 1.0967, 1425.4767, 3.0707, 35.6319, -119.5697}
	referenceStds  = [8]float64{1.8998, 12.5856, 2.4742, 0.4739, 1132.4621, 10.3860, 2.1360, 2.0035}

	// Dollar change per standard deviation.
	standardizedCoefficients = [8]float64{82960, 11880, -26550, 30570, -450, -3930, -89980, -87050}
)

type standardizedStrategy struct{}

// NewStandardizedStrategy returns the fixed-coefficient linear model on z-scored features.
func NewStandardizedStrategy() Strategy {
	return standardizedStrategy{}
}

func (standardizedStrategy) Info() StrategyInfo {
	return StrategyInfo{
		Name:        Standardized,
		Description: "Linear model on z-scored features with coastal and income bonuses",
		Clamped:     true,
		MinPrice:    standardizedMinPrice,
		MaxPrice:    standardizedMaxPrice,
	}
}

func (s standardizedStrategy) Estimate(f PropertyFeatures) PricePrediction {
	price := int(clamp(standardizedRawPrice(f), standardizedMinPrice, standardizedMaxPrice))

	loc := s.Classify(f.Latitude, f.Longitude)
	return PricePrediction{
		Strategy:   Standardized,
		Price:      price,
		Confidence: newConfidenceInterval(price, ModelMargin),
		Location:   loc,
		Factors:    modelFactors.Derive(f, loc),
		MarketTier: MarketTier(price),
	}
}

func (standardizedStrategy) Classify(latitude, longitude float64) Location {
	return modelRegions.Classify(latitude, longitude)
}

// standardizedRawPrice includes the flat bonuses but not the clamp.
func standardizedRawPrice(f PropertyFeatures) float64 {
	total := standardizedBasePrice
	for i, x := range f.Vector() {
		z := (x - referenceMeans[i]) / referenceStds[i]
		total += z * standardizedCoefficients[i]
	}
	if f.Longitude < coastalLongitude {
		total += coastalBonus
	}
	if f.MedianIncome > highIncomeCutoff {
		total += highIncomeBonus
	}
	return total
}
