package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/config"
	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/markdown"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/service"
	"github.com/momentumhq/momentum/internal/service/payment"
	"github.com/momentumhq/momentum/internal/storage"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	AuthService         *service.AuthService
	UserService         *service.UserService
	ProfileService      *service.ProfileService
	EmailService        *service.EmailService
	FileService         *service.FileService
	SubscriptionService *service.SubscriptionService
	PaymentService      payment.Provider
	CycleService        *service.CycleService
	GoalService         *service.GoalService
	CategoryService     *service.CategoryService
	CheckInService      *service.CheckInService
	DashboardService    *service.DashboardService
	InsightService      *service.InsightService
	ExportService       *service.ExportService
	LegalService        *service.LegalService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	fileRepository := repository.NewFileRepository(database)
	subscriptionRepository := repository.NewSubscriptionRepository(database)
	cycleRepository := repository.NewCycleRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	categoryRepository := repository.NewCategoryRepository(database)
	checkInRepository := repository.NewCheckInRepository(database)
	insightRepository := repository.NewInsightRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.ResendAudienceID,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	fileService := service.NewFileService(fileRepository, fileStorage)
	subscriptionService := service.NewSubscriptionService(subscriptionRepository)

	// Initialize payment provider based on config
	paymentProvider, err := payment.NewProvider(cfg, subscriptionService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment provider: %v", err)
	}

	cycleService := service.NewCycleService(cycleRepository, goalRepository, subscriptionService)
	goalService := service.NewGoalService(goalRepository, cycleRepository, categoryRepository, subscriptionService)
	categoryService := service.NewCategoryService(categoryRepository)
	checkInService := service.NewCheckInService(checkInRepository, cycleRepository, goalRepository)
	dashboardService := service.NewDashboardService(cycleRepository, goalRepository, categoryRepository, checkInRepository)
	insightService := service.NewInsightService(cfg, insightRepository, cycleRepository, goalRepository, categoryRepository, checkInRepository, markdown.NewParser())
	exportService := service.NewExportService(cycleRepository, goalRepository, checkInRepository, categoryRepository)

	authService := service.NewAuthService(
		userRepository,
		profileRepository,
		tokenRepository,
		subscriptionService,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.TokenEmailVerifyExpiry,
		cfg.TokenPasswordResetExpiry,
		cfg.TokenEmailChangeExpiry,
		cfg.TokenMagicLinkExpiry,
	)
	userService := service.NewUserService(userRepository, profileRepository, fileService, emailService, subscriptionService)
	profileService := service.NewProfileService(profileRepository)
	legalService := service.NewLegalService(cfg.ContentPath)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		AuthService:         authService,
		UserService:         userService,
		ProfileService:      profileService,
		EmailService:        emailService,
		FileService:         fileService,
		SubscriptionService: subscriptionService,
		PaymentService:      paymentProvider,
		CycleService:        cycleService,
		GoalService:         goalService,
		CategoryService:     categoryService,
		CheckInService:      checkInService,
		DashboardService:    dashboardService,
		InsightService:      insightService,
		ExportService:       exportService,
		LegalService:        legalService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
