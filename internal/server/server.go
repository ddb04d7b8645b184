package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/communitree/backend/internal/bootstrap"
	"github.com/communitree/backend/internal/config"
	"github.com/communitree/backend/internal/db"
)

// Server holds the state for one HTTP process.
type Server struct {
	config *config.Config
	router *gin.Engine
	graph  *db.Graph
	logger zerolog.Logger
	http   *http.Server
}

// NewCommunityServer wires the community process: lifecycle, membership and
// hierarchy routes backed by the graph store and the notifier client.
func NewCommunityServer(configPath string) (*Server, error) {
	return newServer(configPath, bootstrap.BuildCommunityDependencies, bootstrap.SetupCommunityRouter)
}

// NewNotifierServer wires the notification channel process.
func NewNotifierServer(configPath string) (*Server, error) {
	return newServer(configPath, bootstrap.BuildNotifierDependencies, bootstrap.SetupNotifierRouter)
}

func newServer(
	configPath string,
	build func(*config.Config, *db.Graph, zerolog.Logger) (*bootstrap.Dependencies, error),
	setupRouter func(*config.Config, *bootstrap.Dependencies, zerolog.Logger) *gin.Engine,
) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	graph, err := bootstrap.SetupGraph(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup graph store: %w", err)
	}

	deps, err := build(cfg, graph, lgr)
	if err != nil {
		graph.Close(context.Background())
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &Server{
		config: cfg,
		router: setupRouter(cfg, deps, lgr),
		graph:  graph,
		logger: lgr,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes the graph driver.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if s.graph != nil {
		s.logger.Info().Msg("Closing graph store connection...")
		if err := s.graph.Close(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Graph store close error")
			shutdownError = true
		}
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
