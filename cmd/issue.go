package cmd

import (
	"errors"
	"fmt"
	"time"

	"farm-market-session/model"
	"farm-market-session/util"

	"github.com/spf13/cobra"
)

func newIssueCmd() *cobra.Command {
	var (
		id    int64
		email string
		role  string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Sign a development token with the configured key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if id == 0 || email == "" || role == "" {
				return errors.New("--id, --email and --role are required")
			}

			signer, err := util.NewSignerFromConfig(util.LoadConfig())
			if err != nil {
				return err
			}
			token, err := signer.Sign(util.NewPayload(id, email, model.Role(role), time.Now(), ttl))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "user id")
	cmd.Flags().StringVar(&email, "email", "", "user email")
	cmd.Flags().StringVar(&role, "role", string(model.RoleBuyer), "user role")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime, 0 for no exp")
	return cmd
}
