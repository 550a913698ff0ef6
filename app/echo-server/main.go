package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"myMealPlanner/app/echo-server/router"
	"myMealPlanner/business/meal"
	"myMealPlanner/business/mealplan"
	"myMealPlanner/business/recommend"
	"myMealPlanner/business/releasenote"
	"myMealPlanner/business/store"
	userService "myMealPlanner/business/user"
	"myMealPlanner/internal/middleware"
	"myMealPlanner/internal/mlclient"
	"myMealPlanner/internal/repository/notification"
	psqlRepo "myMealPlanner/internal/repository/postgres"
	redisRepo "myMealPlanner/internal/repository/redis"
	"myMealPlanner/internal/rest"
	"myMealPlanner/pkg/config"
	"myMealPlanner/pkg/database"
	redisdb "myMealPlanner/pkg/database/redis"
	"myMealPlanner/pkg/logger"
	"myMealPlanner/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MyMealPlanner", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close Redis client", err)
		}
	}()

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	mealRepo := psqlRepo.NewMealRepository(db)
	planRepo := psqlRepo.NewMealPlanRepository(db)
	storeRepo := psqlRepo.NewStoreRepository(db)
	noteRepo := psqlRepo.NewReleaseNoteRepository(db)
	settingRepo := psqlRepo.NewScoringSettingRepository(db)
	feedbackRepo := psqlRepo.NewFeedbackRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// Init ML client
	mlClient := mlclient.NewClient(mlclient.Config{
		BaseURL:         cfg.MLService.BaseURL,
		ReadTimeout:     cfg.MLService.ReadTimeout,
		FeedbackTimeout: cfg.MLService.FeedbackTimeout,
		TrainTimeout:    cfg.MLService.TrainTimeout,
	})

	// Init recommendation pipeline
	usageWindow := time.Duration(cfg.Reco.UsageWindowDays) * 24 * time.Hour
	usageAgg := recommend.NewUsageAggregator(planRepo, usageWindow)
	filler := recommend.NewFillerSelector(mealRepo)
	fallback := recommend.NewFallbackRecommender(usageAgg, filler, mealRepo)
	modeProvider := recommend.NewModeProvider(settingRepo, cfg.Reco.ModeCacheTTL)
	recoService := recommend.NewService(mlClient, fallback, modeProvider, feedbackRepo)

	// Init service
	userSvc := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	mealSvc := meal.NewMealService(mealRepo)
	planSvc := mealplan.NewMealPlanService(planRepo, mealRepo)
	storeSvc := store.NewStoreService(storeRepo)
	noteSvc := releasenote.NewReleaseNoteService(noteRepo)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	mealHandler := rest.NewMealHandler(mealSvc)
	planHandler := rest.NewMealPlanHandler(planSvc)
	storeHandler := rest.NewStoreHandler(storeSvc)
	noteHandler := rest.NewReleaseNoteHandler(noteSvc)
	recoHandler := rest.NewRecommendationHandler(recoService)
	scoringAdminHandler := rest.NewScoringAdminHandler(modeProvider)

	// Init metrics
	metrics.Init()

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(userSvc)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupMealRoutes(api, mealHandler, authRequired, adminOnly)
	router.SetupMealPlanRoutes(api, planHandler, authRequired)
	router.SetupRecommendationRoutes(api, recoHandler, authRequired, adminOnly)
	router.SetupScoringAdminRoutes(api, scoringAdminHandler, authRequired, adminOnly)
	router.SetupStoreRoutes(api, storeHandler, authRequired)
	router.SetupReleaseNoteRoutes(api, noteHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
