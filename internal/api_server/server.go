package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/unibuddy/lecture-api/internal/artifacts"
	"github.com/unibuddy/lecture-api/internal/config"
	"github.com/unibuddy/lecture-api/internal/events"
	"github.com/unibuddy/lecture-api/internal/genai"
	handlers "github.com/unibuddy/lecture-api/internal/handlers/v1alpha1"
	"github.com/unibuddy/lecture-api/internal/pipeline"
	"github.com/unibuddy/lecture-api/internal/pipeline/jobs"
	"github.com/unibuddy/lecture-api/internal/service"
	"github.com/unibuddy/lecture-api/internal/store"
	"github.com/unibuddy/lecture-api/pkg/metrics"
	"github.com/unibuddy/lecture-api/pkg/middleware"
	"github.com/unibuddy/lecture-api/pkg/migrations"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg       *config.Config
	store     store.Store
	artifacts artifacts.Store
	generator genai.Generator
	listener  net.Listener
}

// New returns a new instance of the lecture API server.
func New(
	cfg *config.Config,
	store store.Store,
	artifactStore artifacts.Store,
	generator genai.Generator,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:       cfg,
		store:     store,
		artifacts: artifactStore,
		generator: generator,
		listener:  listener,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   strings.Split(s.cfg.Service.CorsOrigins, ","),
			AllowedMethods:   []string{"GET", "PUT", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	// Initialize pgx pool for River
	dsn := fmt.Sprintf("host=%s user=%s password=%s port=%s dbname=%s",
		s.cfg.Database.Hostname,
		s.cfg.Database.User,
		s.cfg.Database.Password,
		s.cfg.Database.Port,
		s.cfg.Database.Name,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("failed to parse pgx config: %w", err)
	}

	// Connection pool sized for job processing plus LISTEN/NOTIFY.
	poolConfig.MaxConns = 20
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	dbPool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer dbPool.Close()

	if err := migrations.MigrateRiver(ctx, dbPool); err != nil {
		return fmt.Errorf("failed to migrate river schema: %w", err)
	}

	eventProducer := events.NewEventProducer(&events.StdoutWriter{})
	defer func() {
		_ = eventProducer.Close()
	}()

	processor := pipeline.NewProcessor(
		s.store,
		pipeline.NewArtifactExtractor(s.artifacts),
		pipeline.NewStageProcessor(s.generator),
		eventProducer,
	)

	jobClient, err := jobs.NewClient(ctx, dbPool, processor)
	if err != nil {
		return fmt.Errorf("failed to create river client: %w", err)
	}

	if err := jobClient.Start(ctx); err != nil {
		return fmt.Errorf("failed to start river: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := jobClient.Stop(stopCtx); err != nil {
			zap.S().Named("api_server").Warnw("failed to stop river client", "error", err)
		}
	}()

	zap.S().Named("api_server").Info("River job queue initialized")

	h := handlers.NewServiceHandler(
		service.NewLectureService(s.store, s.artifacts, jobClient, eventProducer),
		service.NewSupportService(s.generator),
	)
	h.Routes(router)

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}
