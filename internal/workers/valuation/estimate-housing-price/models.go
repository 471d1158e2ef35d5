// internal/workers/valuation/estimate-housing-price/models.go
package estimatehousingprice

import (
	"encoding/json"

	"housing-workers/internal/estimator"
)

// Input leaves Features raw so the schema check sees exactly what the process sent.
type Input struct {
	Strategy string          `json:"strategy,omitempty"`
	Features json.RawMessage `json:"features,omitempty"`
}

type Output struct {
	Prediction estimator.PricePrediction `json:"prediction"`
	Report     string                    `json:"report"`
}
