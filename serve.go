package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/appbridge/migration-backend/database"
	"github.com/appbridge/migration-backend/internal/api"
	"github.com/appbridge/migration-backend/internal/config"
	"github.com/appbridge/migration-backend/internal/kafka"
	"github.com/appbridge/migration-backend/internal/services"
	"github.com/appbridge/migration-backend/matching"
	"github.com/appbridge/migration-backend/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server and the job event consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := config.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			return serve(config.Load(v))
		},
	}

	cmd.Flags().String("port", "", "HTTP listen port (env PORT)")
	cmd.Flags().String("catalog-file", "", "YAML catalog to import at startup (env CATALOG_FILE)")
	cmd.Flags().Int("autoupdate-max-consecutive-failures", 0, "failures before a policy is disabled (env AUTOUPDATE_MAX_CONSECUTIVE_FAILURES)")
	return cmd
}

func serve(cfg config.Config) error {
	logger := util.InitLogger()
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn := database.InitializeDatabase(cfg.Database)

	source, document := "bundled", matching.DefaultCatalogDocument()
	if cfg.CatalogFile != "" {
		if !util.FileExists(cfg.CatalogFile) {
			return fmt.Errorf("catalog file %s does not exist", cfg.CatalogFile)
		}
		data, err := os.ReadFile(cfg.CatalogFile)
		if err != nil {
			return fmt.Errorf("failed to read catalog file: %w", err)
		}
		source, document = cfg.CatalogFile, data
	}
	if _, err := database.NewCatalogRepo(conn).ImportCatalog(ctx, source, document); err != nil {
		return err
	}

	svc := services.New(conn, logger, cfg.MaxConsecutiveFailures)

	if err := kafka.RunEventProcessor(ctx, cfg.Kafka, svc.Lifecycle, logger); err != nil {
		// the REST endpoint still accepts job outcomes
		logger.Warn("Kafka event processor not started", zap.Error(err))
	}

	app, err := api.NewFiberApp(svc)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			logger.Error("Failed to shut down server", zap.Error(err))
		}
	}()

	logger.Sugar().Infof("Starting server on port %s", cfg.Port)
	logger.Sugar().Infof("GraphQL endpoint available at /api/v1/graphql")
	return app.Listen(":" + cfg.Port)
}
