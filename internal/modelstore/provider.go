// internal/modelstore/provider.go
package modelstore

import (
	"context"
	"sync"
	"time"

	"housing-workers/internal/common/errors"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/common/metrics"
	"housing-workers/internal/estimator"
	"housing-workers/pkg/artifact"
)

// Provider loads a model artifact once and hands the same package to every caller.
type Provider struct {
	source Source
	logger logger.Logger

	once  sync.Once
	model *estimator.ModelPackage
	err   error
}

func NewProvider(source Source, log logger.Logger) *Provider {
	return &Provider{
		source: source,
		logger: log.WithFields(map[string]interface{}{
			"artifactSource": source.Type(),
			"artifactUri":    source.URI(),
		}),
	}
}

// Load fetches and validates the artifact on first use. Later calls return the first
// result, including a failure.
func (p *Provider) Load(ctx context.Context) (*estimator.ModelPackage, error) {
	p.once.Do(func() {
		p.model, p.err = p.load(ctx)
	})
	return p.model, p.err
}

func (p *Provider) load(ctx context.Context) (*estimator.ModelPackage, error) {
	start := time.Now()

	data, err := p.source.Fetch(ctx)
	if err != nil {
		metrics.ArtifactLoads.WithLabelValues(p.source.Type(), "fetch_failed").Inc()
		p.logger.Error("failed to fetch model artifact", map[string]interface{}{"error": err})
		return nil, errors.NewArtifactLoadFailedError(p.source.URI(), err)
	}

	a, err := artifact.Decode(data)
	if err != nil {
		metrics.ArtifactLoads.WithLabelValues(p.source.Type(), "invalid").Inc()
		p.logger.Error("model artifact rejected", map[string]interface{}{"error": err})
		return nil, errors.NewArtifactInvalidError(p.source.URI(), err)
	}

	model := FromArtifact(a)
	if _, err := estimator.NewRegressionStrategy(model); err != nil {
		metrics.ArtifactLoads.WithLabelValues(p.source.Type(), "invalid").Inc()
		return nil, errors.NewArtifactInvalidError(p.source.URI(), err)
	}

	metrics.ArtifactLoads.WithLabelValues(p.source.Type(), "loaded").Inc()
	p.logger.Info("model artifact loaded", map[string]interface{}{
		"version":    a.Version,
		"features":   len(a.FeatureNames),
		"bytes":      len(data),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return model, nil
}

// Strategy loads the artifact and wraps it as the regression strategy.
func (p *Provider) Strategy(ctx context.Context) (estimator.Strategy, error) {
	model, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	return estimator.NewRegressionStrategy(model)
}

func FromArtifact(a *artifact.Artifact) *estimator.ModelPackage {
	return &estimator.ModelPackage{
		Version:      a.Version,
		FeatureNames: append([]string(nil), a.FeatureNames...),
		Scaler:       a.Scaler,
		Regressor:    a.Model,
	}
}
