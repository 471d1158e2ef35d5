// internal/cli/validate_artifact.go
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"housing-workers/internal/estimator"
	"housing-workers/internal/modelstore"
)

type ValidateArtifactOptions struct {
	GlobalOptions

	Path      string
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Timeout   time.Duration
}

func DefaultValidateArtifactOptions() *ValidateArtifactOptions {
	return &ValidateArtifactOptions{
		GlobalOptions: DefaultGlobalOptions(),
		UseSSL:        true,
		Timeout:       30 * time.Second,
	}
}

func NewCmdValidateArtifact() *cobra.Command {
	o := DefaultValidateArtifactOptions()
	cmd := &cobra.Command{
		Use:     "validate-artifact --path URI",
		Short:   "Load a model artifact and check it can serve the regression strategy.",
		Example: "house-price validate-artifact --path configs/model-artifact.json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

// Bind skips the global --artifact flag; --path names the artifact here.
func (o *ValidateArtifactOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (debug, info, warn, error)")

	fs.StringVarP(&o.Path, "path", "p", o.Path, "Artifact URI (file path, http(s):// or s3://bucket/key)")
	fs.StringVar(&o.Endpoint, "endpoint", o.Endpoint, "Object store endpoint for s3:// URIs")
	fs.StringVar(&o.AccessKey, "access-key", o.AccessKey, "Object store access key")
	fs.StringVar(&o.SecretKey, "secret-key", o.SecretKey, "Object store secret key")
	fs.BoolVar(&o.UseSSL, "ssl", o.UseSSL, "Use TLS for the object store")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "Fetch timeout")
}

func (o *ValidateArtifactOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.Path == "" {
		return fmt.Errorf("--path is required")
	}
	return nil
}

func (o *ValidateArtifactOptions) Run(ctx context.Context, cmd *cobra.Command) error {
	source, err := modelstore.NewSource(o.Path,
		modelstore.WithEndpoint(o.Endpoint),
		modelstore.WithAccessKey(o.AccessKey),
		modelstore.WithSecretKey(o.SecretKey),
		modelstore.WithSSL(o.UseSSL),
		modelstore.WithTimeout(o.Timeout),
	)
	if err != nil {
		return err
	}

	provider := modelstore.NewProvider(source, o.Logger())
	model, err := provider.Load(ctx)
	if err != nil {
		return describe(err)
	}

	st, err := provider.Strategy(ctx)
	if err != nil {
		return describe(err)
	}
	sample := st.Estimate(estimator.DefaultFeatures())

	_, err = fmt.Fprintf(cmd.OutOrStdout(),
		"artifact OK\n  source:   %s\n  version:  %s\n  features: %d (%s)\n  sample:   %s for the default features\n",
		source.URI(), model.Version, len(model.FeatureNames), strings.Join(model.FeatureNames, ", "),
		estimator.FormatDollars(sample.Price))
	return err
}
