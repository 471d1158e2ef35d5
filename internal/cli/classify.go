// internal/cli/classify.go
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

type ClassifyOptions struct {
	GlobalOptions

	Strategy  string
	Output    string
	Latitude  float64
	Longitude float64
}

func DefaultClassifyOptions() *ClassifyOptions {
	return &ClassifyOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        textFormat,
	}
}

func NewCmdClassify() *cobra.Command {
	o := DefaultClassifyOptions()
	cmd := &cobra.Command{
		Use:     "classify --lat LATITUDE --lon LONGITUDE",
		Short:   "Name the market region a coordinate falls in.",
		Example: "house-price classify --lat 37.5 --lon -122.2",
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

func (o *ClassifyOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Strategy, "strategy", "s", o.Strategy, "Strategy whose region table is used. Empty selects the default")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.Float64Var(&o.Latitude, "lat", o.Latitude, "Latitude")
	fs.Float64Var(&o.Longitude, "lon", o.Longitude, "Longitude")
}

func (o *ClassifyOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if !funk.ContainsString(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

func (o *ClassifyOptions) Run(ctx context.Context, cmd *cobra.Command) error {
	log := o.Logger()
	service, err := o.Service(ctx, log)
	if err != nil {
		return err
	}

	var lat, lon *float64
	if cmd.Flags().Changed("lat") {
		lat = &o.Latitude
	}
	if cmd.Flags().Changed("lon") {
		lon = &o.Longitude
	}

	name, loc, err := service.Classify(ctx, o.Strategy, lat, lon)
	if err != nil {
		return describe(err)
	}

	out := cmd.OutOrStdout()
	if o.Output == jsonFormat {
		return json.NewEncoder(out).Encode(map[string]interface{}{
			"strategy": name,
			"location": loc,
		})
	}
	_, err = fmt.Fprintf(out, "%s (%s strategy)\n%s\n", loc.Name, name, loc.Description)
	return err
}
