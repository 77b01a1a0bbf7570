package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parkd-dev/parkd/internal/cli/commands"
)

var version = "dev" // Will be set during build

// NewRootCmd builds the parkctl command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "parkctl",
		Short: "parkctl - inspect the parkd navigation table",
		Long: `parkctl inspects the parkd navigation table.

It lists the routes the booking app serves, evaluates the navigation guard
for a given session and signs session tokens for testing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "parkctl version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewRoutesCmd())
	rootCmd.AddCommand(commands.NewCheckCmd())
	rootCmd.AddCommand(commands.NewTokenCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
