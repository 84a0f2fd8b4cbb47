// Package bootstrap assembles the application: configuration, database,
// dependencies and routing.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ybamri/recycleapp/internal/app/controllers"
	appMigrations "github.com/ybamri/recycleapp/internal/app/migrations"
	appRepos "github.com/ybamri/recycleapp/internal/app/repositories"
	appRoutes "github.com/ybamri/recycleapp/internal/app/routes"
	appServices "github.com/ybamri/recycleapp/internal/app/services"
	"github.com/ybamri/recycleapp/internal/config"
	"github.com/ybamri/recycleapp/internal/db"
	appMiddleware "github.com/ybamri/recycleapp/internal/middleware"
	pkgAuth "github.com/ybamri/recycleapp/internal/pkg/auth"
	"github.com/ybamri/recycleapp/internal/pkg/email"
	"github.com/ybamri/recycleapp/internal/pkg/filestorage"
	"github.com/ybamri/recycleapp/internal/pkg/genai"
	"github.com/ybamri/recycleapp/internal/pkg/logger"
	"github.com/ybamri/recycleapp/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService             *appServices.AuthService
	UserService             *appServices.UserService
	ArticleService          *appServices.ArticleService
	DefiService             *appServices.DefiService
	ParticipationService    *appServices.ParticipationService
	MessageService          *appServices.MessageService
	RecyclingService        *appServices.RecyclingService
	AuthController          *appControllers.AuthController
	UserController          *appControllers.UserController
	ArticleController       *appControllers.ArticleController
	DefiController          *appControllers.DefiController
	ParticipationController *appControllers.ParticipationController
	MessageController       *appControllers.MessageController
	RecyclingController     *appControllers.RecyclingController
	AuthMiddleware          *appMiddleware.AuthMiddleware
	Repos                   *appRepos.Repositories
	JWTService              *pkgAuth.JWTService
	FileStorage             *filestorage.LocalStorage
	Logger                  zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Seeding failure should not block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.GetAccessTokenExpiration(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	emailService := email.NewEmailService(email.SMTPConfig{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		Username:    cfg.SMTP.Username,
		Password:    cfg.SMTP.Password,
		FromName:    cfg.SMTP.FromName,
		FromEmail:   cfg.SMTP.FromEmail,
		UseTLS:      cfg.SMTP.UseTLS,
		Skip:        cfg.SMTP.Skip,
		FrontendURL: cfg.Server.FrontendURL,
	}, lgr)

	genaiClient := genai.NewClient(genai.Config{
		APIKey: cfg.GenAI.APIKey,
		Model:  cfg.GenAI.Model,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.JWTService,
		emailService,
		cfg.SMTP.Skip,
		lgr,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, lgr)
	deps.ArticleService = appServices.NewArticleService(deps.Repos.ArticleRepository, deps.FileStorage, lgr)
	deps.DefiService = appServices.NewDefiService(deps.Repos.DefiRepository, lgr)
	deps.ParticipationService = appServices.NewParticipationService(
		deps.Repos.ParticipationRepository,
		deps.Repos.DefiRepository,
		deps.Repos.UserRepository,
		database,
		lgr,
	)
	deps.MessageService = appServices.NewMessageService(deps.Repos.MessageRepository, deps.Repos.UserRepository, lgr)
	deps.RecyclingService = appServices.NewRecyclingService(genaiClient, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, lgr)
	deps.ArticleController = appControllers.NewArticleController(deps.ArticleService, lgr)
	deps.DefiController = appControllers.NewDefiController(deps.DefiService, deps.ParticipationService, lgr)
	deps.ParticipationController = appControllers.NewParticipationController(deps.ParticipationService, lgr)
	deps.MessageController = appControllers.NewMessageController(deps.MessageService, lgr)
	deps.RecyclingController = appControllers.NewRecyclingController(deps.RecyclingService, lgr)

	return deps, nil
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
		deps.ArticleController,
		deps.DefiController,
		deps.ParticipationController,
		deps.MessageController,
		deps.RecyclingController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
