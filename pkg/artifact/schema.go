// pkg/artifact/schema.go
package artifact

// ModelTypeLinear is a dot product of the scaled features plus an intercept.
const ModelTypeLinear = "linear"

type Artifact struct {
	Version      string         `json:"version"`
	Description  string         `json:"description,omitempty"`
	TrainedAt    string         `json:"trainedAt,omitempty"`
	FeatureNames []string       `json:"featureNames"`
	Scaler       StandardScaler `json:"scaler"`
	Model        LinearModel    `json:"model"`
}

// StandardScaler is a fitted (x - mean) / scale transform.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

type LinearModel struct {
	Type         string    `json:"type"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

func (s StandardScaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if i >= len(s.Mean) || i >= len(s.Scale) {
			out[i] = v
			continue
		}
		out[i] = (v - s.Mean[i]) / s.Scale[i]
	}
	return out
}

func (m LinearModel) Predict(scaled []float64) float64 {
	total := m.Intercept
	for i, v := range scaled {
		if i >= len(m.Coefficients) {
			break
		}
		total += m.Coefficients[i] * v
	}
	return total
}

const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "featureNames", "scaler", "model"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "trainedAt": {"type": "string"},
    "featureNames": {
      "type": "array",
      "minItems": 1,
      "uniqueItems": true,
      "items": {
        "type": "string",
        "enum": ["MedInc", "HouseAge", "AveRooms", "AveBedrms", "Population", "AveOccup", "Latitude", "Longitude"]
      }
    },
    "scaler": {
      "type": "object",
      "required": ["mean", "scale"],
      "properties": {
        "mean": {"type": "array", "items": {"type": "number"}},
        "scale": {"type": "array", "items": {"type": "number"}}
      }
    },
    "model": {
      "type": "object",
      "required": ["type", "coefficients", "intercept"],
      "properties": {
        "type": {"type": "string"},
        "coefficients": {"type": "array", "items": {"type": "number"}},
        "intercept": {"type": "number"}
      }
    }
  }
}`
