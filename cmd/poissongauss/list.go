// cmd/poissongauss/list.go
package poissongauss

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newListCmd builds the 'list' command group, a namespace for subcommands
// that print information without writing a figure.
func newListCmd(v *viper.Viper) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Group commands for listing information",
		Long:  `The 'list' command groups related subcommands that print information. It performs no action on its own.`,
	}
	listCmd.AddCommand(newListSeriesCmd(v), newListCommandsCmd())
	return listCmd
}
