// AngelaMos | 2026
// commands.go

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andgroupco/andoffer/internal/auth"
	"github.com/andgroupco/andoffer/internal/config"
	"github.com/andgroupco/andoffer/internal/core"
	"github.com/andgroupco/andoffer/internal/user"
)

func newMigrateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or list database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return withDatabase(ctx, cfg.Database, func(db *core.Database) error {
				var migrateErr error
				switch direction {
				case "down":
					migrateErr = core.MigrateDown(ctx, db.DB.DB)
				case "status":
					migrateErr = core.MigrateStatus(ctx, db.DB.DB)
				default:
					migrateErr = core.MigrateUp(ctx, db.DB.DB)
				}
				if migrateErr != nil {
					return migrateErr
				}

				logger.Info("migrations finished", "direction", direction)
				return nil
			})
		},
	}
}

func newKeygenCommand() *cobra.Command {
	var privatePath, publicPath string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate the ES256 key pair used to sign access tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := auth.GenerateKeyPair(privatePath, publicPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n", privatePath, publicPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&privatePath, "private", "keys/private.pem", "private key output path")
	cmd.Flags().StringVar(&publicPath, "public", "keys/public.pem", "public key output path")

	return cmd
}

func newSeedAdminCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-admin",
		Short: "Create or promote the bootstrap SUPER_ADMIN account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			boot := cfg.Bootstrap
			if boot.AdminEmail == "" || boot.AdminPassword == "" {
				return fmt.Errorf("bootstrap.admin_email and bootstrap.admin_password are required")
			}

			return withDatabase(cmd.Context(), cfg.Database, func(db *core.Database) error {
				authRepo := auth.NewRepository(db.DB)
				svc := user.NewService(user.NewRepository(db.DB), authRepo)

				u, created, err := svc.EnsureSuperAdmin(
					cmd.Context(),
					boot.AdminEmail,
					boot.AdminPassword,
					boot.AdminName,
				)
				if err != nil {
					return err
				}

				logger.Info("super admin ready",
					"user_id", u.ID,
					"email", u.Email,
					"created", created,
				)
				return nil
			})
		},
	}
}

func newPruneSessionsCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "prune-sessions",
		Short: "Delete refresh tokens that expired more than a day ago",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			return withDatabase(cmd.Context(), cfg.Database, func(db *core.Database) error {
				svc := auth.NewService(auth.NewRepository(db.DB), nil, nil, nil, nil, 0)

				n, err := svc.PruneExpiredSessions(cmd.Context())
				if err != nil {
					return err
				}

				logger.Info("expired sessions pruned", "deleted", n)
				return nil
			})
		},
	}
}

func withDatabase(
	ctx context.Context,
	cfg config.DatabaseConfig,
	fn func(db *core.Database) error,
) error {
	db, err := core.NewDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits right after

	return fn(db)
}
