package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/parkd-dev/parkd/internal/routes"
)

// NewRoutesCmd creates the routes command
func NewRoutesCmd() *cobra.Command {
	var routesFile string

	cmd := &cobra.Command{
		Use:     "routes",
		Aliases: []string{"ls"},
		Short:   "List the navigation table",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(routesFile)
			if err != nil {
				return err
			}
			return printRoutes(cmd.OutOrStdout(), table)
		},
	}

	addRoutesFlag(cmd, &routesFile)

	return cmd
}

func printRoutes(out io.Writer, table *routes.Table) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tPAGE\tACCESS\tNOTES")
	fmt.Fprintln(w, "────\t────\t──────\t─────")

	for _, d := range table.All() {
		access := "public"
		if d.Protected() {
			access = "login"
			if role := d.RequiredRole(); role.Valid() {
				access = "role:" + role.String()
			}
		}

		notes := ""
		switch {
		case d.IsRedirect():
			access = "-"
			notes = "redirect → " + d.RedirectTo
		case d.Lazy:
			notes = "lazy"
		}

		page := string(d.Page)
		if page == "" {
			page = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Path, page, access, notes)
	}

	return w.Flush()
}
