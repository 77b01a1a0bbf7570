package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parkd-dev/parkd/internal/navigator"
	"github.com/parkd-dev/parkd/internal/pages"
	"github.com/parkd-dev/parkd/internal/roles"
	"github.com/parkd-dev/parkd/internal/session"
)

type checkOptions struct {
	routesFile string
	to         string
	from       string
	username   string
	role       string
}

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate the navigation guard for a session",
		Example: `  parkctl check --to /admin/dashboard --username alice --role admin
  parkctl check --to /user/parking`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	addRoutesFlag(cmd, &opts.routesFile)
	cmd.Flags().StringVar(&opts.to, "to", "", "Target path")
	cmd.Flags().StringVar(&opts.from, "from", "", "Current path")
	cmd.Flags().StringVar(&opts.username, "username", "", "Session username (empty for anonymous)")
	cmd.Flags().StringVar(&opts.role, "role", "", "Session role (admin or user)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runCheck(cmd *cobra.Command, opts checkOptions) error {
	role, err := roles.Parse(opts.role)
	if err != nil {
		return err
	}

	table, err := loadTable(opts.routesFile)
	if err != nil {
		return err
	}

	registry := pages.NewRegistry()
	if err := navigator.RegisterPages(registry, table); err != nil {
		return err
	}

	s := session.Session{Username: opts.username, Role: role}
	outcome, err := navigator.New(table, registry).Navigate(context.Background(), opts.to, opts.from, s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outcome.Redirected {
		fmt.Fprintf(out, "redirect %s\n", outcome.Path)
	} else {
		fmt.Fprintf(out, "continue %s\n", outcome.Path)
	}
	fmt.Fprintf(out, "page: %s (%s)\n", outcome.Page.Title, outcome.Page.ID)
	return nil
}
