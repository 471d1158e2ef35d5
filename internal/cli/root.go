// internal/cli/root.go
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func NewHousePriceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "house-price [flags] [options]",
		Short: "house-price estimates California housing prices from the command line.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(NewCmdPredict())
	cmd.AddCommand(NewCmdClassify())
	cmd.AddCommand(NewCmdValidateArtifact())

	return cmd
}
