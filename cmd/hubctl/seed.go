package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/state244/hub/internal/infrastructure/logger"
	"github.com/state244/hub/internal/infrastructure/persistence"
	"github.com/state244/hub/internal/infrastructure/seed"
	"go.uber.org/zap"
)

func newSeedCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load alliances and state info from a YAML file",
		Long: `Upserts alliances by tag and state info sections by key.
Running the same file twice leaves the database unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			doc, err := seed.Parse(f)
			if err != nil {
				return err
			}

			e, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = e.log.Sync() }()

			gormLog := logger.NewGormLogger(e.log, logger.MapGormLogLevel(opts.logLevel), e.cfg.Telemetry.DBSlowQueryThresh)
			db, err := persistence.Open(cmd.Context(), &e.cfg.Database, gormLog)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					e.log.Error("Error closing database", zap.Error(err))
				}
			}()

			seeder := seed.NewSeeder(
				persistence.NewGormAllianceRepository(db.DB),
				persistence.NewGormSectionRepository(db.DB),
				e.log,
			)
			res, err := seeder.Apply(cmd.Context(), doc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "alliances: %d created, %d updated; sections: %d saved\n",
				res.AlliancesCreated, res.AlliancesUpdated, res.SectionsSaved)
			return nil
		},
	}
}
