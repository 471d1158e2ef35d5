// internal/valuation/service.go
package valuation

import (
	"bytes"
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/common/metrics"
	"housing-workers/internal/common/observability"
	"housing-workers/internal/common/validation"
	"housing-workers/internal/estimator"
)

// Service runs boundary validation in front of the estimator. Every surface goes
// through it; errors are StandardErrors.
type Service struct {
	registry *estimator.Registry
	obs      *observability.Observability
	logger   logger.Logger
}

func NewService(registry *estimator.Registry, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{registry: registry, obs: obs, logger: log}
}

func (s *Service) Strategies() []estimator.StrategyInfo {
	return s.registry.Infos()
}

func (s *Service) DefaultStrategy() estimator.StrategyName {
	return s.registry.Default()
}

// Estimate validates a features JSON document and prices it with the named strategy.
// An empty strategy selects the default one.
func (s *Service) Estimate(ctx context.Context, surface, strategy string, features []byte) (estimator.PricePrediction, error) {
	ctx, span := s.obs.StartSpan(ctx, "estimate",
		attribute.String("surface", surface),
		attribute.String("strategy", strategy),
	)
	defer span.End()

	f, err := s.features(features)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return estimator.PricePrediction{}, err
	}

	st, err := s.strategy(strategy)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return estimator.PricePrediction{}, err
	}

	if err := ctx.Err(); err != nil {
		return estimator.PricePrediction{}, errors.NewEstimationFailedError(err)
	}

	p := st.Estimate(f)
	span.SetAttributes(
		attribute.String("strategy", string(p.Strategy)),
		attribute.Int("price", p.Price),
		attribute.String("location", p.Location.Name),
	)

	metrics.ObserveEstimate(string(p.Strategy), surface, p.Price)
	s.obs.RecordEstimate(ctx, string(p.Strategy), surface)

	s.logger.Info("price estimated", map[string]interface{}{
		"surface":    surface,
		"strategy":   p.Strategy,
		"price":      p.Price,
		"location":   p.Location.Name,
		"marketTier": p.MarketTier,
	})
	return p, nil
}

// Classify names the region of a coordinate under the region table of the named strategy.
func (s *Service) Classify(ctx context.Context, strategy string, latitude, longitude *float64) (estimator.StrategyName, estimator.Location, error) {
	_, span := s.obs.StartSpan(ctx, "classify", attribute.String("strategy", strategy))
	defer span.End()

	var missing []string
	if latitude == nil {
		missing = append(missing, "latitude: is required")
	}
	if longitude == nil {
		missing = append(missing, "longitude: is required")
	}
	if len(missing) > 0 {
		return "", estimator.Location{}, errors.NewInvalidFeaturesError(missing)
	}

	doc, err := json.Marshal(map[string]float64{"latitude": *latitude, "longitude": *longitude})
	if err != nil {
		return "", estimator.Location{}, errors.NewParseError(err)
	}
	if _, err := s.features(doc); err != nil {
		return "", estimator.Location{}, err
	}

	st, err := s.strategy(strategy)
	if err != nil {
		return "", estimator.Location{}, err
	}

	loc := st.Classify(*latitude, *longitude)
	span.SetAttributes(attribute.String("location", loc.Name))
	return st.Info().Name, loc, nil
}

func (s *Service) features(raw []byte) (estimator.PropertyFeatures, error) {
	raw = bytes.TrimSpace(raw)
	result, err := validation.ValidateFeatures(raw)
	if err != nil {
		return estimator.PropertyFeatures{}, errors.NewParseError(err)
	}
	if !result.Valid {
		return estimator.PropertyFeatures{}, errors.NewInvalidFeaturesError(result.GetErrorMessages()).
			WithMetadata(map[string]interface{}{"validationErrors": result.Errors})
	}

	f, err := estimator.DecodeFeatures(raw)
	if err != nil {
		return estimator.PropertyFeatures{}, errors.NewParseError(err)
	}
	return f, nil
}

func (s *Service) strategy(name string) (estimator.Strategy, error) {
	st, err := s.registry.Get(name)
	if err != nil {
		return nil, errors.NewUnknownStrategyError(err).
			WithMetadata(map[string]interface{}{"strategy": name})
	}
	return st, nil
}
