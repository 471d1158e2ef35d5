// internal/valuation/registry.go
package valuation

import (
	"context"
	"fmt"

	"housing-workers/internal/common/config"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/estimator"
	"housing-workers/internal/modelstore"
)

// BuildRegistry registers the strategies enabled in cfg. When regression is enabled the
// artifact is loaded here, so a bad artifact fails startup. The provider is nil
// otherwise.
func BuildRegistry(ctx context.Context, cfg *config.Config, log logger.Logger) (*estimator.Registry, *modelstore.Provider, error) {
	var (
		strategies []estimator.Strategy
		provider   *modelstore.Provider
	)

	for _, name := range cfg.EnabledStrategies() {
		switch name {
		case estimator.Heuristic:
			strategies = append(strategies, estimator.NewHeuristicStrategy())
		case estimator.Standardized:
			strategies = append(strategies, estimator.NewStandardizedStrategy())
		case estimator.Regression:
			source, err := modelstore.NewSource(cfg.Model.ArtifactURI, ModelSourceOptions(cfg.Model)...)
			if err != nil {
				return nil, nil, fmt.Errorf("model source: %w", err)
			}
			provider = modelstore.NewProvider(source, log)
			st, err := provider.Strategy(ctx)
			if err != nil {
				return nil, nil, err
			}
			strategies = append(strategies, st)
		}
	}

	def, err := estimator.ParseStrategyName(cfg.Estimator.DefaultStrategy)
	if err != nil {
		return nil, nil, err
	}
	registry, err := estimator.NewRegistry(def, strategies...)
	if err != nil {
		return nil, nil, err
	}

	log.Info("pricing strategies registered", map[string]interface{}{
		"default":    def,
		"strategies": cfg.Estimator.Strategies,
	})
	return registry, provider, nil
}

func ModelSourceOptions(m config.ModelConfig) []modelstore.Opts {
	return []modelstore.Opts{
		modelstore.WithEndpoint(m.Endpoint),
		modelstore.WithAccessKey(m.AccessKey),
		modelstore.WithSecretKey(m.SecretKey),
		modelstore.WithSSL(m.UseSSL),
		modelstore.WithTimeout(config.GetDuration(m.FetchTimeout)),
		modelstore.WithRetries(m.FetchRetries),
	}
}
