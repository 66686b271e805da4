// cmd/poissongauss/root.go
package poissongauss

import (
	"fmt"
	"os"

	"github.com/cyclopcam/logs"
	"github.com/mwiater/poissongauss/internal/clt"
	"github.com/mwiater/poissongauss/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// configKey is the viper key of the --config flag.
const configKey = "config"

// newLogger is swapped out in tests.
var newLogger = logs.NewLog

// newRootCmd builds the base Cobra command for the poissongauss
// application with all subcommands attached. Each tree owns its flags and
// its viper instance, so parsing one command line never leaks into the next.
func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "poissongauss",
		Short: "Compare Poisson counts with their Gaussian approximation",
		Long: `poissongauss plots the Poisson probability of observing each count value next to
the Gaussian curve with the same mean and standard deviation, for several target
counts, illustrating the Central Limit Theorem.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringP(configKey, "c", "", "config file (yaml, json or toml)")
	pf.Float64(config.KeyRate, clt.DefaultRate, "underlying rate of events per hour")
	pf.IntSlice(config.KeyCounts, clt.DefaultCounts(), "target total counts, each used as a Poisson mean")
	pf.Float64(config.KeyXMin, clt.DefaultXMin, "lower x limit of the log axis")
	pf.Float64(config.KeyXMax, clt.DefaultXMax, "upper x limit of the log axis")
	pf.Bool(config.KeyDebug, false, "print the resolved configuration")
	bindFlags(v, pf, configKey, config.KeyRate, config.KeyCounts, config.KeyXMin, config.KeyXMax, config.KeyDebug)

	rootCmd.AddCommand(newPlotCmd(v), newListCmd(v))
	return rootCmd
}

// Execute runs the root Cobra command and all registered subcommands.
// It prints any returned error and exits the process with a non-zero
// status code on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bindFlags exposes each named flag to v under the same key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys ...string) {
	for _, key := range keys {
		cobra.CheckErr(v.BindPFlag(key, fs.Lookup(key)))
	}
}

// loadConfig resolves settings from v, reading the --config file if set.
func loadConfig(v *viper.Viper) (config.Config, error) {
	return config.Load(v, v.GetString(configKey))
}
