package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	apiserver "github.com/unibuddy/lecture-api/internal/api_server"
	"github.com/unibuddy/lecture-api/internal/artifacts"
	"github.com/unibuddy/lecture-api/internal/config"
	"github.com/unibuddy/lecture-api/internal/genai"
	"github.com/unibuddy/lecture-api/internal/store"
	"github.com/unibuddy/lecture-api/pkg/log"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the lecture api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		logLvl, err := zap.ParseAtomicLevel(cfg.Service.LogLevel)
		if err != nil {
			logLvl = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}

		logger := log.InitLog(logLvl)
		defer func() { _ = logger.Sync() }()

		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := s.InitialMigration(); err != nil {
			zap.S().Fatalw("running initial migration", "error", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		artifactStore, err := newArtifactStore(cfg)
		if err != nil {
			zap.S().Fatalw("initializing artifact store", "error", err)
		}

		generator, err := genai.NewVertexGenerator(ctx, cfg.GenAI.ProjectID, cfg.GenAI.Region, cfg.GenAI.Model)
		if err != nil {
			zap.S().Fatalw("initializing genai client", "error", err)
		}
		defer func() { _ = generator.Close() }()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, s, artifactStore, generator, listener)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalw("running api server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalw("creating metrics listener", "error", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalw("running metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

func newArtifactStore(cfg *config.Config) (artifacts.Store, error) {
	if cfg.Storage.Type == "s3" {
		return artifacts.NewMinioStore(
			artifacts.WithEndpoint(cfg.Storage.Endpoint),
			artifacts.WithBucket(cfg.Storage.Bucket),
			artifacts.WithAccessKey(cfg.Storage.AccessKey),
			artifacts.WithSecretKey(cfg.Storage.SecretAccessKey),
			artifacts.WithSSL(cfg.Storage.UseSSL),
		)
	}
	return artifacts.NewFilesystemStore(cfg.Storage.UploadDir)
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
