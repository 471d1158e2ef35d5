// internal/cli/predict.go
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"

	"housing-workers/internal/common/metrics"
	"housing-workers/internal/estimator"
)

type PredictOptions struct {
	GlobalOptions

	Strategy string
	Output   string
	Features estimator.PropertyFeatures
}

func DefaultPredictOptions() *PredictOptions {
	return &PredictOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        textFormat,
		Features:      estimator.DefaultFeatures(),
	}
}

func NewCmdPredict() *cobra.Command {
	o := DefaultPredictOptions()
	cmd := &cobra.Command{
		Use:     "predict [flags]",
		Short:   "Estimate the price of a California property.",
		Example: "house-price predict --strategy heuristic --income 8 --age 25 --lat 34 --lon -118",
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

func (o *PredictOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Strategy, "strategy", "s", o.Strategy, "Pricing strategy (heuristic, standardized, regression). Empty selects the default")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))

	f := &o.Features
	fs.Float64Var(&f.MedianIncome, "income", f.MedianIncome, "Median income of the block, in $10,000s")
	fs.Float64Var(&f.HouseAge, "age", f.HouseAge, "Median house age in years")
	fs.Float64Var(&f.AverageRooms, "rooms", f.AverageRooms, "Average rooms per household")
	fs.Float64Var(&f.AverageBedrooms, "bedrooms", f.AverageBedrooms, "Average bedrooms per household")
	fs.Float64Var(&f.Population, "population", f.Population, "Block population")
	fs.Float64Var(&f.AverageOccupancy, "occupancy", f.AverageOccupancy, "Average household members")
	fs.Float64Var(&f.Latitude, "lat", f.Latitude, "Latitude")
	fs.Float64Var(&f.Longitude, "lon", f.Longitude, "Longitude")
}

func (o *PredictOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if !funk.ContainsString(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

func (o *PredictOptions) Run(ctx context.Context, cmd *cobra.Command) error {
	log := o.Logger()
	service, err := o.Service(ctx, log)
	if err != nil {
		return err
	}

	doc, err := json.Marshal(o.Features)
	if err != nil {
		return err
	}
	p, err := service.Estimate(ctx, metrics.SurfaceCLI, o.Strategy, doc)
	if err != nil {
		return describe(err)
	}

	out := cmd.OutOrStdout()
	if o.Output == jsonFormat {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	_, err = fmt.Fprint(out, estimator.Render(p))
	return err
}
