package cmd

import (
	"context"
	"log"

	"park-pulse/core/archive"
	"park-pulse/core/config"
	"park-pulse/core/database"
	"park-pulse/core/logger"
	"park-pulse/feature/livedata"
	"park-pulse/feature/livedata/parks"
	"park-pulse/feature/livedata/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one full sync pass and exit",
	Long: `Fetches live data and crowd forecasts for every enabled park,
writes them to the database and runs retention cleanup, then exits.
Useful for cron-driven deployments and for smoke testing a new setup.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		registry := parks.NewRegistry()
		repo := livedata.NewRepository(db, logg)
		if err := repo.AutoMigrate(); err != nil {
			logg.Fatal("Failed to migrate live data tables", zap.Error(err))
		}

		liveClient := source.NewThemeParksClient(cfg.LiveSync.ThemeParksBaseURL, registry, logg)
		crowdClient := source.NewQueueTimesClient(cfg.LiveSync.QueueTimesBaseURL, registry, logg)

		var snaps *archive.Store
		if cfg.Archive.Enabled() {
			snaps = openArchive(cmd.Context(), cfg.Archive, logg)
		}

		orchestrator := livedata.NewOrchestrator(
			cfg.LiveSync, registry, liveClient, crowdClient, repo, snaps, logg)
		orchestrator.RunPass(context.Background())
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
