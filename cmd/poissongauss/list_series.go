// cmd/poissongauss/list_series.go
package poissongauss

import (
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/mwiater/poissongauss/internal/clt"
	"github.com/mwiater/poissongauss/internal/viewer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newListSeriesCmd builds 'list series', which prints one row per target
// count: elapsed hours, sigma, the Poisson mode and the curve peaks.
func newListSeriesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "series",
		Short: "Print the computed series as a table",
		Long:  `The 'series' subcommand computes every target count and prints hours, sigma, Poisson mode, peak probabilities, curve moments and the plot label, without writing a figure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			if cfg.Debug {
				pp.Fprintln(cmd.OutOrStdout(), cfg.Params())
			}
			series, err := clt.ComputeAll(cfg.Params())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), viewer.Summary(series))
			return nil
		},
	}
}
