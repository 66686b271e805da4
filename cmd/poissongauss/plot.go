// cmd/poissongauss/plot.go
package poissongauss

import (
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/mwiater/poissongauss/internal/clt"
	"github.com/mwiater/poissongauss/internal/config"
	"github.com/mwiater/poissongauss/internal/figure"
	"github.com/mwiater/poissongauss/internal/viewer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var startViewer = viewer.Start

// newPlotCmd builds 'plot', which renders the Poisson and Gaussian curves
// for every target count into a single figure.
func newPlotCmd(v *viper.Viper) *cobra.Command {
	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "Render the Poisson vs Gaussian figure",
		Long: `The 'plot' command computes, for each target count, the Poisson probability of
every count value in [0, 2*count) and the matching Gaussian curve, labels each
Poisson peak with the time needed to collect that many events, and writes the
figure with a logarithmic x axis. The image format follows the --out extension.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(cmd, v)
		},
	}

	f := plotCmd.Flags()
	f.StringP(config.KeyOut, "o", config.DefaultOut, "output image (png, svg, pdf, jpg, eps, tif)")
	f.Float64(config.KeyWidth, 6, "figure width in inches")
	f.Float64(config.KeyHeight, 4, "figure height in inches")
	f.Bool(config.KeyShow, false, "open the terminal viewer after rendering")
	bindFlags(v, f, config.KeyOut, config.KeyWidth, config.KeyHeight, config.KeyShow)

	return plotCmd
}

func runPlot(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	if cfg.Debug {
		pp.Fprintln(cmd.OutOrStdout(), cfg)
	}

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("could not create logger: %w", err)
	}
	defer log.Close()

	fig := figure.New()
	series, err := clt.Run(log, fig, cfg.Params())
	if err != nil {
		return err
	}

	w, h := cfg.Size()
	render := func() (string, error) {
		if err := fig.Save(w, h, cfg.Out); err != nil {
			return "", err
		}
		log.Infof("Wrote %v curves and %v labels to %v", len(fig.Curves()), len(fig.Annotations()), cfg.Out)
		return cfg.Out, nil
	}

	if cfg.Show {
		debugLog := ""
		if cfg.Debug {
			debugLog = "debug.log"
		}
		return startViewer(series, render, debugLog)
	}
	if _, err := render(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), viewer.Summary(series))
	return nil
}
