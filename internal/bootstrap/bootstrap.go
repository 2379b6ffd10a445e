package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/derin/volunteerhub/internal/app/controllers"
	appRepos "github.com/derin/volunteerhub/internal/app/repositories"
	appRoutes "github.com/derin/volunteerhub/internal/app/routes"
	appServices "github.com/derin/volunteerhub/internal/app/services"
	"github.com/derin/volunteerhub/internal/config"
	"github.com/derin/volunteerhub/internal/db"
	appMiddleware "github.com/derin/volunteerhub/internal/middleware"
	pkgAuth "github.com/derin/volunteerhub/internal/pkg/auth"
	"github.com/derin/volunteerhub/internal/pkg/helpers"
	"github.com/derin/volunteerhub/internal/pkg/logger"
	"github.com/derin/volunteerhub/internal/pkg/websocket"
	"github.com/derin/volunteerhub/internal/seed"
)

// migrationsDir is where the SQL migration files live, relative to the
// working directory
const migrationsDir = "migrations"

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            appServices.AuthService
	UserService            appServices.UserService
	EventService           appServices.EventService
	ParticipationService   appServices.ParticipationService
	NotificationService    appServices.NotificationService
	ReportService          appServices.ReportService
	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	EventController        *appControllers.EventController
	NotificationController *appControllers.NotificationController
	AdminController        *appControllers.AdminController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	Hub                    *websocket.Hub
	WSHandler              *websocket.Handler
	Seeder                 *seed.Seeder
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
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

// SetupDatabase establishes the database connection and initializes the
// store: migrations plus the idempotent demo seed.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seeder := seed.NewSeeder(dbPool, migrationsDir, lgr)
	if err := seeder.Bootstrap(ctx); err != nil {
		lgr.Error().Err(err).Msg("Store initialization failed")
		dbPool.Close()
		return nil, fmt.Errorf("store initialization failed: %w", err)
	}

	lgr.Info().Msg("Database ready.")
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	// The hub fans notification pushes out to websocket clients and
	// in-process subscriptions
	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)

	deps.Seeder = seed.NewSeeder(dbPool, migrationsDir, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.ProfileRepository,
		lgr,
	)
	deps.NotificationService = appServices.NewNotificationService(
		deps.Repos.NotificationRepository,
		deps.Repos.UserRepository,
		deps.Hub,
		lgr,
	)
	deps.EventService = appServices.NewEventService(
		deps.Repos.EventRepository,
		deps.Repos.ParticipationRepository,
		deps.Repos.UserRepository,
		lgr,
	)
	deps.ParticipationService = appServices.NewParticipationService(
		deps.Repos.ParticipationRepository,
		deps.Repos.EventRepository,
		deps.Repos.UserRepository,
		deps.NotificationService,
		lgr,
	)
	deps.ReportService = appServices.NewReportService(
		deps.Repos.EventRepository,
		deps.Repos.ParticipationRepository,
		deps.Repos.UserRepository,
		lgr,
	)

	go pruneExpiredTokens(deps.Repos.TokenRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.EventController = appControllers.NewEventController(deps.EventService, deps.ParticipationService)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)
	deps.AdminController = appControllers.NewAdminController(deps.ReportService, deps.Seeder)

	return deps, nil
}

// pruneExpiredTokens clears expired refresh tokens at startup and then daily
func pruneExpiredTokens(tokenRepo *appRepos.TokenRepository, lgr zerolog.Logger) {
	prune := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := tokenRepo.DeleteExpired(ctx); err != nil {
			lgr.Warn().Err(err).Msg("Failed to prune expired refresh tokens")
		}
	}

	prune()
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		prune()
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.EventController,
		deps.NotificationController,
		deps.AdminController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	return router
}
