// internal/workers/valuation/classify-location/models.go
package classifylocation

import "housing-workers/internal/estimator"

type Input struct {
	Strategy  string   `json:"strategy,omitempty"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type Output struct {
	Strategy estimator.StrategyName `json:"strategy"`
	Location estimator.Location     `json:"location"`
}
