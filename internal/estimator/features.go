// internal/estimator/features.go
package estimator

import (
	"encoding/json"
	"fmt"
)

// Dataset column names, in the order the California housing dataset publishes them.
const (
	FeatureMedInc     = "MedInc"
	FeatureHouseAge   = "HouseAge"
	FeatureAveRooms   = "AveRooms"
	FeatureAveBedrms  = "AveBedrms"
	FeaturePopulation = "Population"
	FeatureAveOccup   = "AveOccup"
	FeatureLatitude   = "Latitude"
	FeatureLongitude  = "Longitude"
)

// PropertyFeatures is the eight-attribute feature vector of one estimate request.
type PropertyFeatures struct {
	MedianIncome     float64 `json:"medianIncome"` // units of $10,000
	HouseAge         float64 `json:"houseAge"`
	AverageRooms     float64 `json:"averageRooms"`
	AverageBedrooms  float64 `json:"averageBedrooms"`
	Population       float64 `json:"population"`
	AverageOccupancy float64 `json:"averageOccupancy"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

// FeatureRange describes the accepted domain of one feature at the input boundary.
type FeatureRange struct {
	Name     string  `json:"name"`
	JSONName string  `json:"jsonName"`
	Label    string  `json:"label"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Default  float64 `json:"default"`
}

// FeatureRanges lists every feature in dataset column order.
var FeatureRanges = []FeatureRange{
	{Name: FeatureMedInc, JSONName: "medianIncome", Label: "Median Income ($10,000s)", Min: 0.5, Max: 15.0, Default: 8.0},
	{Name: FeatureHouseAge, JSONName: "houseAge", Label: "House Age (years)", Min: 1, Max: 52, Default: 25},
	{Name: FeatureAveRooms, JSONName: "averageRooms", Label: "Average Rooms", Min: 1.0, Max: 10.0, Default: 5.33},
	{Name: FeatureAveBedrms, JSONName: "averageBedrooms", Label: "Average Bedrooms", Min: 0.5, Max: 3.0, Default: 1.08},
	{Name: FeaturePopulation, JSONName: "population", Label: "Block Population", Min: 3, Max: 10000, Default: 1425},
	{Name: FeatureAveOccup, JSONName: "averageOccupancy", Label: "Average Occupancy", Min: 1.0, Max: 6.0, Default: 2.92},
	{Name: FeatureLatitude, JSONName: "latitude", Label: "Latitude", Min: 32.0, Max: 42.0, Default: 34.0},
	{Name: FeatureLongitude, JSONName: "longitude", Label: "Longitude", Min: -124.0, Max: -114.0, Default: -118.0},
}

// DefaultFeatures returns the pre-filled form values.
func DefaultFeatures() PropertyFeatures {
	return PropertyFeatures{
		MedianIncome:     8.0,
		HouseAge:         25,
		AverageRooms:     5.33,
		AverageBedrooms:  1.08,
		Population:       1425,
		AverageOccupancy: 2.92,
		Latitude:         34.0,
		Longitude:        -118.0,
	}
}

// Value returns the feature stored under a dataset column name.
func (f PropertyFeatures) Value(name string) (float64, bool) {
	switch name {
	case FeatureMedInc:
		return f.MedianIncome, true
	case FeatureHouseAge:
		return f.HouseAge, true
	case FeatureAveRooms:
		return f.AverageRooms, true
	case FeatureAveBedrms:
		return f.AverageBedrooms, true
	case FeaturePopulation:
		return f.Population, true
	case FeatureAveOccup:
		return f.AverageOccupancy, true
	case FeatureLatitude:
		return f.Latitude, true
	case FeatureLongitude:
		return f.Longitude, true
	default:
		return 0, false
	}
}

// Vector returns the features in dataset column order.
func (f PropertyFeatures) Vector() []float64 {
	return []float64{
		f.MedianIncome,
		f.HouseAge,
		f.AverageRooms,
		f.AverageBedrooms,
		f.Population,
		f.AverageOccupancy,
		f.Latitude,
		f.Longitude,
	}
}

// IsKnownFeature reports whether name is one of the dataset column names.
func IsKnownFeature(name string) bool {
	_, ok := DefaultFeatures().Value(name)
	return ok
}

// DecodeFeatures decodes a JSON features document. Omitted fields keep their defaults.
// Range checks belong to the caller.
func DecodeFeatures(raw []byte) (PropertyFeatures, error) {
	f := DefaultFeatures()
	if len(raw) == 0 || string(raw) == "null" {
		return f, nil
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		return PropertyFeatures{}, fmt.Errorf("decode features: %w", err)
	}
	return f, nil
}

// FeatureSchema returns the JSON schema of a features document with the accepted ranges.
func FeatureSchema() map[string]interface{} {
	properties := make(map[string]interface{}, len(FeatureRanges))
	for _, r := range FeatureRanges {
		properties[r.JSONName] = map[string]interface{}{
			"type":        "number",
			"description": r.Label,
			"minimum":     r.Min,
			"maximum":     r.Max,
		}
	}
	return map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
}
