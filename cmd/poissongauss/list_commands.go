// cmd/poissongauss/list_commands.go
package poissongauss

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// newListCommandsCmd builds 'list commands', which prints the command tree
// as a table of indented command paths and their short descriptions.
func newListCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List all commands and subcommands in two columns",
		Long:  `The 'commands' subcommand prints every command and subcommand as a table, with the indented command path in the first column and its short description in the second.`,
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd.OutOrStdout(), cmd.Root())
		},
	}
}

// commandRows flattens the tree under c, depth first. Cobra's generated
// help command is skipped.
func commandRows(c *cobra.Command, depth int) [][]string {
	rows := [][]string{{strings.Repeat("  ", depth) + c.CommandPath(), c.Short}}
	for _, sub := range c.Commands() {
		if sub.IsAvailableCommand() {
			rows = append(rows, commandRows(sub, depth+1)...)
		}
	}
	return rows
}

func printCommandTree(w io.Writer, root *cobra.Command) {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("command", "description").
		Rows(commandRows(root, 0)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			return s
		})
	fmt.Fprintln(w, t.String())
}
