// internal/estimator/factors.go
package estimator

import "strings"

type factorRule struct {
	label string
	match func(f PropertyFeatures, loc Location) bool
}

// FactorRules are evaluated in order; every matching rule contributes its label.
type FactorRules []factorRule

func (rules FactorRules) Derive(f PropertyFeatures, loc Location) []string {
	labels := []string{}
	for _, rule := range rules {
		if rule.match(f, loc) {
			labels = append(labels, rule.label)
		}
	}
	return labels
}

var heuristicFactors = FactorRules{
	{"Affluent Area: High income supports premium pricing", func(f PropertyFeatures, _ Location) bool {
		return f.MedianIncome > 10.0
	}},
	{"Budget Market: More affordable pricing expected", func(f PropertyFeatures, _ Location) bool {
		return f.MedianIncome < 4.0
	}},
	{"New Construction: Modern homes command higher prices", func(f PropertyFeatures, _ Location) bool {
		return f.HouseAge < 10
	}},
	{"Established Neighborhood: Character homes with mature landscaping", func(f PropertyFeatures, _ Location) bool {
		return f.HouseAge > 40
	}},
	{"Strong Appreciation: Historical price growth in coastal regions", func(_ PropertyFeatures, loc Location) bool {
		return strings.Contains(loc.Name, "Coast") || strings.Contains(loc.Name, "Bay Area")
	}},
	{"Stable Market: High-income areas typically maintain value", func(f PropertyFeatures, _ Location) bool {
		return f.MedianIncome > 8.0
	}},
}

var modelFactors = FactorRules{
	{"High Income Area: Strong purchasing power", func(f PropertyFeatures, _ Location) bool {
		return f.MedianIncome > 6.0
	}},
	{"Coastal Premium: Proximity to the Pacific coast", func(f PropertyFeatures, _ Location) bool {
		return f.Longitude < -118.5
	}},
	{"Newer Construction: Recently built housing stock", func(f PropertyFeatures, _ Location) bool {
		return f.HouseAge < 10
	}},
	{"High Occupancy Density: Crowded households lower value", func(f PropertyFeatures, _ Location) bool {
		return f.AverageOccupancy > 3.5
	}},
}
