// internal/cli/global.go
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"housing-workers/internal/common/config"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/estimator"
	"housing-workers/internal/valuation"
)

const (
	textFormat = "text"
	jsonFormat = "json"
)

var legalOutputTypes = []string{textFormat, jsonFormat}

// GlobalOptions holds the flags shared by every subcommand.
type GlobalOptions struct {
	Artifact string
	LogLevel string
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		LogLevel: "warn",
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.Artifact, "artifact", o.Artifact, "Model artifact URI (file path, http(s):// or s3://). Enables the regression strategy")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (debug, info, warn, error)")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	return nil
}

func (o *GlobalOptions) Logger() logger.Logger {
	return logger.NewStructured(o.LogLevel, "console")
}

// Service builds a valuation service with the model-free strategies, plus regression
// when an artifact was given.
func (o *GlobalOptions) Service(ctx context.Context, log logger.Logger) (*valuation.Service, error) {
	cfg := &config.Config{
		Estimator: config.EstimatorConfig{
			DefaultStrategy: string(estimator.Heuristic),
			Strategies:      []string{string(estimator.Heuristic), string(estimator.Standardized)},
		},
		Model: config.ModelConfig{
			ArtifactURI:  o.Artifact,
			FetchTimeout: 30000,
			FetchRetries: 3,
		},
	}
	if o.Artifact != "" {
		cfg.Estimator.Strategies = append(cfg.Estimator.Strategies, string(estimator.Regression))
	}

	registry, _, err := valuation.BuildRegistry(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return valuation.NewService(registry, nil, log), nil
}
