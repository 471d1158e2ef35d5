// internal/estimator/heuristic_test.go
package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func featuresAt(latitude, longitude float64) PropertyFeatures {
	f := DefaultFeatures()
	f.Latitude = latitude
	f.Longitude = longitude
	return f
}

// boundaryGrid returns every corner of the accepted feature domain plus the defaults.
func boundaryGrid() []PropertyFeatures {
	grid := []PropertyFeatures{DefaultFeatures()}
	for mask := 0; mask < 1<<len(FeatureRanges); mask++ {
		values := make([]float64, len(FeatureRanges))
		for i, r := range FeatureRanges {
			if mask&(1<<i) != 0 {
				values[i] = r.Max
			} else {
				values[i] = r.Min
			}
		}
		grid = append(grid, PropertyFeatures{
			MedianIncome:     values[0],
			HouseAge:         values[1],
			AverageRooms:     values[2],
			AverageBedrooms:  values[3],
			Population:       values[4],
			AverageOccupancy: values[5],
			Latitude:         values[6],
			Longitude:        values[7],
		})
	}
	return grid
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHeuristic_Estimate_KnownValues(t *testing.T) {
	tests := []struct {
		name           string
		features       PropertyFeatures
		expectedPrice  int
		expectedMargin int
		expectedRegion string
		expectedTier   string
	}{
		{
			name:           "los angeles defaults",
			features:       DefaultFeatures(),
			expectedPrice:  671885, // 479918.0155 * 1.4
			expectedMargin: 100782,
			expectedRegion: "Los Angeles Metro",
			expectedTier:   "Premium Market",
		},
		{
			name:           "bay area",
			features:       featuresAt(37.5, -122.2),
			expectedPrice:  835232, // 464018.0155 * 1.8
			expectedMargin: 125284,
			expectedRegion: "San Francisco Bay Area",
			expectedTier:   "Luxury Market",
		},
		{
			name: "central valley without multiplier",
			features: func() PropertyFeatures {
				f := featuresAt(36.0, -120.0)
				f.MedianIncome = 3.0
				return f
			}(),
			expectedPrice:  314879,
			expectedMargin: 47231,
			expectedRegion: "Central Coast",
			expectedTier:   "Mid-Range Market",
		},
	}

	s := NewHeuristicStrategy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := s.Estimate(tt.features)

			assert.Equal(t, Heuristic, p.Strategy)
			assert.Equal(t, tt.expectedPrice, p.Price)
			assert.Equal(t, tt.expectedMargin, p.Confidence.Margin)
			assert.Equal(t, tt.expectedPrice-tt.expectedMargin, p.Confidence.Lower)
			assert.Equal(t, tt.expectedPrice+tt.expectedMargin, p.Confidence.Upper)
			assert.Equal(t, tt.expectedRegion, p.Location.Name)
			assert.Equal(t, tt.expectedTier, p.MarketTier)
		})
	}
}

func TestHeuristic_RawPrice_Defaults(t *testing.T) {
	assert.InDelta(t, 479918.0155, heuristicRawPrice(DefaultFeatures()), 0.001)
}

func TestHeuristic_Estimate_WithinBounds(t *testing.T) {
	s := NewHeuristicStrategy()
	for _, f := range boundaryGrid() {
		p := s.Estimate(f)
		assert.GreaterOrEqual(t, p.Price, heuristicMinPrice, "features %+v", f)
		assert.LessOrEqual(t, p.Price, heuristicMaxPrice, "features %+v", f)
	}
}

func TestHeuristic_RawPrice_MonotonicInIncome(t *testing.T) {
	for _, base := range boundaryGrid() {
		prev := base
		prev.MedianIncome = 0.5
		for income := 1.0; income <= 15.0; income += 0.5 {
			next := base
			next.MedianIncome = income
			assert.Greater(t, heuristicRawPrice(next), heuristicRawPrice(prev))
			prev = next
		}
	}
}

// ==========================
// Regional Multiplier Tests
// ==========================

func TestRegionalMultiplier(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		region    string
		factor    float64
	}{
		{"bay area reference point", 37.5, -122.2, "bay_area", 1.8},
		{"bay area edge", 37.01, -121.51, "bay_area", 1.8},
		{"bay area latitude boundary excluded", 37.0, -122.2, "none", 1.0},
		{"socal coastal", 34.0, -118.0, "socal_coastal", 1.4},
		{"socal coastal inside la metro rectangle", 33.8, -118.2, "socal_coastal", 1.4},
		{"socal coastal longitude boundary excluded", 34.0, -117.5, "none", 1.0},
		{"socal coastal latitude boundary excluded", 34.5, -118.0, "none", 1.0},
		{"inland", 36.0, -117.0, "none", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := regionalMultiplier(tt.latitude, tt.longitude)
			assert.Equal(t, tt.region, rule.region)
			assert.Equal(t, tt.factor, rule.factor)
		})
	}
}

func TestRegionalMultiplier_FirstMatchOnly(t *testing.T) {
	for lat := 32.0; lat <= 42.0; lat += 0.25 {
		for lon := -124.0; lon <= -114.0; lon += 0.25 {
			matched := 0
			var first string
			for _, rule := range regionalMultipliers {
				if rule.match(lat, lon) {
					if matched == 0 {
						first = rule.region
					}
					matched++
				}
			}
			require.GreaterOrEqual(t, matched, 1, "no rule for (%v, %v)", lat, lon)
			assert.Equal(t, first, regionalMultiplier(lat, lon).region)
		}
	}
}

func TestRegionalMultiplier_LAMetroShadowedBySoCalCoastal(t *testing.T) {
	rule := func(region string) multiplierRule {
		for _, r := range regionalMultipliers {
			if r.region == region {
				return r
			}
		}
		t.Fatalf("no %s rule", region)
		return multiplierRule{}
	}
	laMetro, socal := rule("la_metro"), rule("socal_coastal")

	checked := 0
	for lat := 33.5; lat <= 34.5; lat += 0.05 {
		for lon := -118.5; lon <= -117.5; lon += 0.05 {
			if !laMetro.match(lat, lon) {
				continue
			}
			checked++
			require.True(t, socal.match(lat, lon), "la metro point (%v, %v) outside socal coastal", lat, lon)
			assert.Equal(t, "socal_coastal", regionalMultiplier(lat, lon).region)
			assert.Equal(t, 1.4, regionalMultiplier(lat, lon).factor)
		}
	}
	require.Greater(t, checked, 0)

	f := featuresAt(34.0, -118.0)
	assert.Equal(t, int(heuristicRawPrice(f)*1.4), NewHeuristicStrategy().Estimate(f).Price)
}

func TestHeuristic_Estimate_AppliesBayAreaMultiplier(t *testing.T) {
	f := featuresAt(37.5, -122.2)
	p := NewHeuristicStrategy().Estimate(f)
	assert.Equal(t, int(heuristicRawPrice(f)*1.8), p.Price)
}

// ==========================
// Factor Tests
// ==========================

func TestHeuristic_Factors(t *testing.T) {
	tests := []struct {
		name     string
		features PropertyFeatures
		expected []string
	}{
		{
			name:     "defaults produce no factors",
			features: DefaultFeatures(),
			expected: []string{},
		},
		{
			name: "affluent new coastal",
			features: PropertyFeatures{
				MedianIncome: 12, HouseAge: 5, AverageRooms: 6, AverageBedrooms: 1,
				Population: 800, AverageOccupancy: 2.5, Latitude: 34.0, Longitude: -118.8,
			},
			expected: []string{
				"Affluent Area: High income supports premium pricing",
				"New Construction: Modern homes command higher prices",
				"Strong Appreciation: Historical price growth in coastal regions",
				"Stable Market: High-income areas typically maintain value",
			},
		},
		{
			name: "budget established inland",
			features: PropertyFeatures{
				MedianIncome: 2.5, HouseAge: 45, AverageRooms: 4, AverageBedrooms: 1,
				Population: 2000, AverageOccupancy: 3.5, Latitude: 36.5, Longitude: -117.0,
			},
			expected: []string{
				"Budget Market: More affordable pricing expected",
				"Established Neighborhood: Character homes with mature landscaping",
			},
		},
		{
			name:     "bay area appreciation",
			features: featuresAt(37.8, -122.4),
			expected: []string{"Strong Appreciation: Historical price growth in coastal regions"},
		},
	}

	s := NewHeuristicStrategy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.Estimate(tt.features).Factors)
		})
	}
}

func TestHeuristic_Estimate_Idempotent(t *testing.T) {
	s := NewHeuristicStrategy()
	for _, f := range boundaryGrid() {
		assert.Equal(t, s.Estimate(f), s.Estimate(f))
	}
}

func TestHeuristic_Info(t *testing.T) {
	info := NewHeuristicStrategy().Info()
	assert.Equal(t, Heuristic, info.Name)
	assert.True(t, info.Clamped)
	assert.Equal(t, 50000, info.MinPrice)
	assert.Equal(t, 1500000, info.MaxPrice)
}
