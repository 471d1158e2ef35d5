// internal/estimator/regression.go
package estimator

import (
	"errors"
	"fmt"
)

// DollarsPerUnit converts regressor output, in hundreds of thousands of dollars, to dollars.
const DollarsPerUnit = 100000.0

// Scaler transforms a raw feature vector into the space the regressor was fit on.
type Scaler interface {
	Transform(x []float64) []float64
}

// Regressor maps a scaled feature vector to one scalar.
type Regressor interface {
	Predict(scaled []float64) float64
}

// ModelPackage is a loaded model artifact. FeatureNames fixes the vector order.
type ModelPackage struct {
	Version      string
	FeatureNames []string
	Scaler       Scaler
	Regressor    Regressor
}

func (p *ModelPackage) validate() error {
	if p == nil {
		return errors.New("model package is nil")
	}
	if p.Scaler == nil || p.Regressor == nil {
		return errors.New("model package is missing its scaler or regressor")
	}
	if len(p.FeatureNames) == 0 {
		return errors.New("model package has no feature names")
	}
	for _, name := range p.FeatureNames {
		if !IsKnownFeature(name) {
			return fmt.Errorf("model package references unknown feature %q", name)
		}
	}
	return nil
}

type regressionStrategy struct {
	model *ModelPackage
}

// NewRegressionStrategy wraps an already loaded model package.
func NewRegressionStrategy(model *ModelPackage) (Strategy, error) {
	if err := model.validate(); err != nil {
		return nil, err
	}
	return &regressionStrategy{model: model}, nil
}

func (s *regressionStrategy) Info() StrategyInfo {
	return StrategyInfo{
		Name:        Regression,
		Description: fmt.Sprintf("Pre-trained regression model (artifact %s)", s.model.Version),
	}
}

func (s *regressionStrategy) Estimate(f PropertyFeatures) PricePrediction {
	price := int(s.model.Regressor.Predict(s.model.Scaler.Transform(s.vector(f))) * DollarsPerUnit)

	loc := s.Classify(f.Latitude, f.Longitude)
	return PricePrediction{
		Strategy:   Regression,
		Price:      price,
		Confidence: newConfidenceInterval(price, ModelMargin),
		Location:   loc,
		Factors:    modelFactors.Derive(f, loc),
		MarketTier: MarketTier(price),
	}
}

func (s *regressionStrategy) Classify(latitude, longitude float64) Location {
	return modelRegions.Classify(latitude, longitude)
}

func (s *regressionStrategy) vector(f PropertyFeatures) []float64 {
	x := make([]float64, len(s.model.FeatureNames))
	for i, name := range s.model.FeatureNames {
		x[i], _ = f.Value(name)
	}
	return x
}
