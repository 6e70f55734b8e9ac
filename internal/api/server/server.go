// Package server provides the HTTP server implementation
package server

// @title           AuthLedger API
// @version         1.0
// @description     Registration, login and an audited ledger of every login attempt.
//
// @description.markdown
// The /auth endpoints are rate limited per client IP. When the limit is
// exceeded 429 is returned with a Retry-After header.
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token authentication. The token cookie is accepted as well.

import (
	"context"
	"errors"
	"net/http"
	"time"

	"authledger/internal/api/routes"
	"authledger/internal/config"
	"authledger/internal/report"

	"go.uber.org/zap"
)

// Server represents the HTTP server and its background jobs
type Server struct {
	cfg  *config.Config
	deps *routes.Dependencies
	log  *zap.Logger
	http *http.Server
}

// New creates a new server instance
func New(deps *routes.Dependencies) (*Server, error) {
	router, err := routes.SetupRoutes(deps)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:  deps.Config,
		deps: deps,
		log:  deps.Log,
		http: &http.Server{
			Addr:         ":" + deps.Config.API.Port,
			Handler:      router,
			ReadTimeout:  deps.Config.API.ReadTimeout,
			WriteTimeout: deps.Config.API.WriteTimeout,
		},
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.deps.RateLimiter.Run(time.Minute, ctx.Done())

	if s.cfg.Report.Enabled {
		scheduler := report.NewScheduler(s.log)
		if err := scheduler.Register(ctx, s.cfg.Report.Schedule, report.NewLedgerSummary(s.deps.Ledger, s.log)); err != nil {
			return err
		}
		go scheduler.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting server", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return s.http.Shutdown(shutdownCtx)
}
