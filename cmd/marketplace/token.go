package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/codemarket/internal/auth"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/spf13/cobra"
)

// tokenCmd issues a session token signed with AUTH_JWT_SECRET, for local testing
// without the identity provider.
func tokenCmd() *cobra.Command {
	var (
		user domain.User
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if user.ID == "" {
				return errors.New("--user is required")
			}

			cfg, _, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig: %w", err)
			}

			verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
			if err != nil {
				return fmt.Errorf("auth.NewVerifier: %w", err)
			}

			token, err := verifier.Issue(user, ttl)
			if err != nil {
				return fmt.Errorf("verifier.Issue: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&user.ID, "user", "", "user id (sub claim)")
	cmd.Flags().StringVar(&user.Email, "email", "", "user email")
	cmd.Flags().StringVar(&user.Name, "name", "", "display name")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
