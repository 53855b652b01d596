package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/algoreed/crs/internal/auth"
)

func newTokenCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an operator bearer token for the records API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				return errors.New("--subject is required")
			}

			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			token, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL).GenerateJWT(subject, auth.RoleOperator)
			if err != nil {
				return fmt.Errorf("generating token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Name of the operator the token is issued to")
	return cmd
}
