package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/schoolsys/registrar/internal/app/controllers"
	appMigrations "github.com/schoolsys/registrar/internal/app/migrations"
	appRepos "github.com/schoolsys/registrar/internal/app/repositories"
	appRoutes "github.com/schoolsys/registrar/internal/app/routes"
	appServices "github.com/schoolsys/registrar/internal/app/services"
	"github.com/schoolsys/registrar/internal/config"
	"github.com/schoolsys/registrar/internal/db"
	appMiddleware "github.com/schoolsys/registrar/internal/middleware"
	pkgAuth "github.com/schoolsys/registrar/internal/pkg/auth"
	"github.com/schoolsys/registrar/internal/pkg/helpers"
	"github.com/schoolsys/registrar/internal/pkg/logger"
	"github.com/schoolsys/registrar/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	StudentService    appServices.StudentService
	AuthController    *appControllers.AuthController
	StudentController *appControllers.StudentController
	SessionMiddleware *appMiddleware.SessionMiddleware
	SessionService    *pkgAuth.SessionService
	Repos             *appRepos.Repositories
	Logger            zerolog.Logger
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
// bootstraps the default admin account.
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
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	users := appRepos.NewUserRepository(database)
	if err := seed.CreateDefaultAdmin(context.Background(), users, lgr); err != nil {
		// Startup proceeds; the admin account can be seeded on the next run
		lgr.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.SessionService = pkgAuth.NewSessionService(pkgAuth.SessionConfig{
		SecretKey: cfg.Session.Secret,
		TTL:       helpers.ParseDuration(cfg.Session.TTL, 12*time.Hour),
		Issuer:    "registrar",
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.Users, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.Students, deps.Repos.Users, lgr)

	deps.SessionMiddleware = appMiddleware.NewSessionMiddleware(deps.SessionService, cfg.Session.CookieName)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.SessionService, cfg.Session.CookieName, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, cfg.Session.CookieName, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with templates, middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/static", "./web/static")

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.SessionMiddleware,
	)

	return router
}
