package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/sembesalum/tu-chat-api/internal/app/controllers"
	appMigrations "github.com/sembesalum/tu-chat-api/internal/app/migrations"
	appRepos "github.com/sembesalum/tu-chat-api/internal/app/repositories"
	appRoutes "github.com/sembesalum/tu-chat-api/internal/app/routes"
	appServices "github.com/sembesalum/tu-chat-api/internal/app/services"
	"github.com/sembesalum/tu-chat-api/internal/config"
	"github.com/sembesalum/tu-chat-api/internal/db"
	appMiddleware "github.com/sembesalum/tu-chat-api/internal/middleware"
	pkgAuth "github.com/sembesalum/tu-chat-api/internal/pkg/auth"
	"github.com/sembesalum/tu-chat-api/internal/pkg/email"
	"github.com/sembesalum/tu-chat-api/internal/pkg/filestorage"
	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
	"github.com/sembesalum/tu-chat-api/internal/pkg/validation"
	"github.com/sembesalum/tu-chat-api/internal/seed"
)

// DefaultConfigPath is where the server looks for its YAML configuration
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	AuthLimiter    *appMiddleware.RateLimiter
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath, ".env")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	level := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  level,
		Pretty: cfg.Logging.Format == "text",
	})
	lgr.Info().Str("logLevel", string(level)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase opens the pool and applies pending migrations.
func ConnectDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.Connect(ctx, cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	applied, err := appMigrations.NewMigrator(database.Pool, nil).Up(ctx)
	if err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations complete")

	return database.Pool, nil
}

// SeedDirectory applies the configured directory file while the directory is empty.
// A missing file is not an error.
func SeedDirectory(ctx context.Context, repo *appRepos.DirectoryRepository, path string, lgr zerolog.Logger) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		lgr.Debug().Str("path", path).Msg("No directory seed file, skipping")
		return nil
	}

	count, err := repo.CountUniversities(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	file, err := seed.LoadFile(path)
	if err != nil {
		return err
	}
	_, err = seed.Apply(ctx, repo, file, lgr)
	return err
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.MediaPath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 0),
		TokenIssuer: cfg.JWT.Issuer,
	})

	mailer := email.NewEmailService(email.Config{
		Provider:       cfg.Email.Provider,
		FromName:       cfg.Email.FromName,
		FromEmail:      cfg.Email.FromAddress,
		SMTPHost:       cfg.Email.SMTPHost,
		SMTPPort:       cfg.Email.SMTPPort,
		SMTPUsername:   cfg.Email.SMTPUsername,
		SMTPPassword:   cfg.Email.SMTPPassword,
		SMTPUseTLS:     cfg.Email.SMTPUseTLS,
		SendgridAPIKey: cfg.Email.SendgridAPIKey,
	}, logger.Component("email"))

	deps.Services = appServices.NewServices(appServices.Dependencies{
		Repos:      deps.Repos,
		JWTService: deps.JWTService,
		Email:      mailer,
		Storage:    deps.FileStorage,
		Auth: appServices.AuthConfig{
			OTPTTL:             helpers.ParseDuration(cfg.Auth.OTPTTL, 15*time.Minute),
			RevealUnknownEmail: cfg.Auth.RevealUnknownEmail,
		},
	})

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Services.AuthService, logger.Component("auth"))
	deps.AuthLimiter = appMiddleware.NewRateLimiter(cfg.Auth.RateLimitPerMinute)
	deps.Controllers = NewControllers(deps.Services, lgr)

	return deps, nil
}

// NewControllers builds every controller from the services
func NewControllers(s *appServices.Services, lgr zerolog.Logger) appRoutes.Controllers {
	return appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(s.AuthService, lgr),
		User:         appControllers.NewUserController(s.ProfileService, lgr),
		Directory:    appControllers.NewDirectoryController(s.DirectoryService),
		Material:     appControllers.NewMaterialController(s.MaterialService, lgr),
		Event:        appControllers.NewEventController(s.EventService),
		Blog:         appControllers.NewBlogController(s.BlogService, lgr),
		Leader:       appControllers.NewLeaderController(s.LeaderService),
		Notification: appControllers.NewNotificationController(s.NotificationService),
		Community:    appControllers.NewCommunityController(s.CommunityService, lgr),
		Chat:         appControllers.NewChatController(s.ChatService, lgr),
		Product:      appControllers.NewProductController(s.ProductService, lgr),
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}
	validation.RegisterWithGin()

	router := gin.New()
	router.MaxMultipartMemory = int64(cfg.Server.MaxUploadMB) << 20
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.BodyLimit(int64(cfg.Server.MaxUploadMB)<<20),
		appMiddleware.CORS(cfg.AllowedOrigins()),
		appMiddleware.BaseURL(),
	)
	router.NoRoute(appMiddleware.NoRoute)

	router.Static(deps.FileStorage.URLPrefix(), deps.FileStorage.BasePath())
	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.AuthLimiter)

	return router
}
