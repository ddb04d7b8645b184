package bootstrap

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/communitree/backend/internal/app/controllers"
	appRepos "github.com/communitree/backend/internal/app/repositories"
	appRoutes "github.com/communitree/backend/internal/app/routes"
	appServices "github.com/communitree/backend/internal/app/services"
	"github.com/communitree/backend/internal/config"
	"github.com/communitree/backend/internal/db"
	appMiddleware "github.com/communitree/backend/internal/middleware"
	pkgAuth "github.com/communitree/backend/internal/pkg/auth"
	"github.com/communitree/backend/internal/pkg/logger"
	"github.com/communitree/backend/internal/pkg/notifier"
)

// Dependencies holds the wired application components for one process. The
// community process and the notifier process fill different subsets.
type Dependencies struct {
	CommunityService       appServices.CommunityService
	MembershipService      appServices.MembershipService
	HierarchyService       appServices.HierarchyService
	NotificationService    appServices.NotificationService
	UserService            appServices.UserService
	CommunityController    *appControllers.CommunityController
	MembershipController   *appControllers.MembershipController
	HierarchyController    *appControllers.HierarchyController
	NotificationController *appControllers.NotificationController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	JWTService             *pkgAuth.JWTService
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupGraph validates the schema identifiers, connects the graph driver and
// ensures the uniqueness constraints exist.
func SetupGraph(cfg *config.Config, lgr zerolog.Logger) (*db.Graph, error) {
	if err := db.ValidateSchema(); err != nil {
		lgr.Error().Err(err).Msg("Graph schema validation failed")
		return nil, err
	}

	lgr.Info().Str("uri", cfg.Neo4j.URI).Str("database", cfg.Neo4j.Database).Msg("Connecting to graph store...")
	graph, err := db.NewGraph(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to graph store")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := graph.EnsureConstraints(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ensure graph constraints")
		graph.Close(context.Background())
		return nil, err
	}

	lgr.Info().Msg("Graph store connection established.")
	return graph, nil
}

// BuildCommunityDependencies wires the community process: repositories,
// services, controllers and the auth middleware.
func BuildCommunityDependencies(cfg *config.Config, graph *db.Graph, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.JWTService = newJWTService(cfg)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	userRepo := appRepos.NewUserRepository(graph)
	communityRepo := appRepos.NewCommunityRepository(graph)
	membershipRepo := appRepos.NewMembershipRepository(graph)
	hierarchyRepo := appRepos.NewHierarchyRepository(graph)

	notifierClient := notifier.NewClient(
		cfg.Notifier.BaseURL,
		config.ParseDuration(cfg.Notifier.Timeout, 10*time.Second),
	)

	deps.CommunityService = appServices.NewCommunityService(communityRepo, lgr)
	deps.MembershipService = appServices.NewMembershipService(membershipRepo, userRepo, notifierClient, lgr)
	deps.HierarchyService = appServices.NewHierarchyService(hierarchyRepo, lgr)
	deps.UserService = appServices.NewUserService(userRepo)

	deps.CommunityController = appControllers.NewCommunityController(deps.CommunityService, deps.UserService)
	deps.MembershipController = appControllers.NewMembershipController(deps.MembershipService)
	deps.HierarchyController = appControllers.NewHierarchyController(deps.HierarchyService)

	return deps, nil
}

// BuildNotifierDependencies wires the notification channel process.
func BuildNotifierDependencies(cfg *config.Config, graph *db.Graph, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.JWTService = newJWTService(cfg)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	notificationRepo := appRepos.NewNotificationRepository(graph)
	deps.NotificationService = appServices.NewNotificationService(notificationRepo, lgr)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)

	return deps, nil
}

// SetupCommunityRouter builds the gin engine for the community process.
func SetupCommunityRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	router := newEngine(cfg, lgr)

	appRoutes.SetupCommunityRoutes(router,
		deps.CommunityController,
		deps.MembershipController,
		deps.HierarchyController,
		deps.AuthMiddleware,
	)

	return router
}

// SetupNotifierRouter builds the gin engine for the notification channel.
func SetupNotifierRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	router := newEngine(cfg, lgr)

	appRoutes.SetupNotifierRoutes(router,
		deps.NotificationController,
		deps.AuthMiddleware,
	)

	return router
}

func newEngine(cfg *config.Config, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	return gin.Default()
}

func newJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: config.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
}
