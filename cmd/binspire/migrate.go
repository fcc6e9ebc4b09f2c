package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema migrations of the configured store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			s, backend, err := openStore(ctx, c.v.GetString(keyDatabaseURL))
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate %s store: %w", backend, err)
			}
			c.logger.Info("migrations applied", "backend", backend)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", backend)
			return err
		},
	}
}
