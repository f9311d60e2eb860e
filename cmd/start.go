package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"park-pulse/core/archive"
	"park-pulse/core/config"
	"park-pulse/core/database"
	"park-pulse/core/loader"
	"park-pulse/core/logger"
	"park-pulse/core/middleware/auth"
	"park-pulse/core/middleware/rayid"
	"park-pulse/feature/livedata"
	"park-pulse/feature/livedata/parks"
	"park-pulse/feature/livedata/source"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "park-pulse/docs/swagger"
)

// @title Park Pulse API
// @version 1.0
// @description Cached read API over live theme park data.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the live data server",
	Long:  `Starts the HTTP server and the background sync orchestrator.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		// 4. Wire the live data pipeline
		registry := parks.NewRegistry()
		repo := livedata.NewRepository(db, logg)
		if err := repo.AutoMigrate(); err != nil {
			logg.Fatal("Failed to migrate live data tables", zap.Error(err))
		}

		liveClient := source.NewThemeParksClient(cfg.LiveSync.ThemeParksBaseURL, registry, logg)
		crowdClient := source.NewQueueTimesClient(cfg.LiveSync.QueueTimesBaseURL, registry, logg)

		// Raw payload archive is optional.
		var snaps *archive.Store
		if cfg.Archive.Enabled() {
			snaps = openArchive(cmd.Context(), cfg.Archive, logg)
		}

		cache := livedata.NewLiveDataCache(repo, cfg.LiveSync, logg)
		orchestrator := livedata.NewOrchestrator(
			cfg.LiveSync, registry, liveClient, crowdClient, repo, snaps, logg)

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// Middleware: RayID first so everything is traceable.
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger documentation (public), then API key auth for the rest.
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Load Features
		mgr := loader.NewManager()
		mgr.Register(livedata.NewFeature(cache, repo, registry, logg))
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start orchestrator and auto-refresh subscriptions
		if err := orchestrator.Start(context.Background()); err != nil {
			logg.Fatal("Failed to start sync orchestrator", zap.Error(err))
		}
		for _, id := range registry.IDs() {
			if cfg.LiveSync.ParkEnabled(id) {
				if err := cache.SubscribePark(id); err != nil {
					logg.Warn("Auto-refresh subscription failed",
						zap.String("park", id), zap.Error(err))
				}
			}
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		orchestrator.Stop()
		cache.Close()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
