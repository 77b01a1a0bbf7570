package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/parkd-dev/parkd/internal/routes"
)

// addRoutesFlag registers --routes, defaulting to ROUTES_FILE
func addRoutesFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "routes", os.Getenv("ROUTES_FILE"), "Routes YAML file (built-in table if empty)")
}

func loadTable(path string) (*routes.Table, error) {
	if path == "" {
		return routes.Default(), nil
	}
	return routes.LoadFile(path)
}
