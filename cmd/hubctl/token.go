package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/state244/hub/internal/infrastructure/auth"
	"go.uber.org/zap"
)

func newTokenCommand(opts *options) *cobra.Command {
	var (
		user  string
		email string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token",
		Long: `Signs an access token with the configured secret, issuer and audience.
The first request with a new user id provisions a profile with the user role.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID := uuid.New()
			if user != "" {
				id, err := uuid.Parse(user)
				if err != nil {
					return fmt.Errorf("--user must be a UUID: %w", err)
				}
				userID = id
			}

			e, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = e.log.Sync() }()

			token, expiresAt, err := auth.NewJWTService(e.cfg.Auth).IssueToken(userID, email, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			e.log.Info("Issued development token",
				zap.String("user_id", userID.String()),
				zap.Time("expires_at", expiresAt))
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "User id (default: random)")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default: auth.dev_token_ttl)")
	return cmd
}
