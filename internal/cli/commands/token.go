package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/parkd-dev/parkd/internal/roles"
	"github.com/parkd-dev/parkd/internal/session"
)

// NewTokenCmd creates the token command
func NewTokenCmd() *cobra.Command {
	var (
		username string
		role     string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a session token with SESSION_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := roles.Parse(role)
			if err != nil {
				return err
			}

			codec, err := session.NewTokenCodec(os.Getenv("SESSION_SECRET"))
			if err != nil {
				return fmt.Errorf("%w: set SESSION_SECRET", err)
			}

			token, err := codec.Encode(session.Session{Username: username, Role: r}, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Session username")
	cmd.Flags().StringVar(&role, "role", "", "Session role (admin or user)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime (0 for no expiry)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
