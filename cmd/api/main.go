package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/joshuabarraza/Trip-API/internal/config"
	"github.com/joshuabarraza/Trip-API/internal/database"
	"github.com/joshuabarraza/Trip-API/internal/handlers"
	"github.com/joshuabarraza/Trip-API/internal/logger"
	"github.com/joshuabarraza/Trip-API/internal/middleware"
	"github.com/joshuabarraza/Trip-API/internal/services"
	"github.com/joshuabarraza/Trip-API/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	db := dbManager.DB()
	tripService := services.NewTripService(db)
	reservationService := services.NewReservationService(db)
	categoryService := services.NewBudgetCategoryService(db)
	spendService := services.NewSpendEntryService(db)

	tripHandler := handlers.NewTripHandler(tripService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	categoryHandler := handlers.NewBudgetCategoryHandler(categoryService)
	spendHandler := handlers.NewSpendEntryHandler(spendService)

	limiter := middleware.NewRateLimiter(appConfig.RateLimitPerMinute)
	defer limiter.Stop()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	v1 := router.Group("/v1")
	v1.Use(middleware.RequireAPIKey(appConfig.APIKey))
	v1.Use(limiter.Middleware())

	trips := v1.Group("/trips")
	trips.POST("", tripHandler.CreateTrip)
	trips.GET("", tripHandler.ListTrips)
	trips.GET("/:trip_id", tripHandler.GetTrip)
	trips.PATCH("/:trip_id", tripHandler.UpdateTrip)
	trips.DELETE("/:trip_id", tripHandler.DeleteTrip)

	trips.POST("/:trip_id/reservations", reservationHandler.CreateReservation)
	trips.GET("/:trip_id/reservations", reservationHandler.ListReservations)
	trips.GET("/:trip_id/reservations/summary", reservationHandler.GetReservationSummary)

	trips.POST("/:trip_id/budget-categories", categoryHandler.CreateBudgetCategory)
	trips.GET("/:trip_id/budget-categories", categoryHandler.ListBudgetCategories)

	trips.POST("/:trip_id/spend-entries", spendHandler.CreateSpendEntry)
	trips.GET("/:trip_id/spend-entries", spendHandler.ListSpendEntries)
	trips.GET("/:trip_id/spend-entries/summary", spendHandler.GetSpendSummary)

	reservations := v1.Group("/reservations")
	reservations.GET("/:reservation_id", reservationHandler.GetReservation)
	reservations.PATCH("/:reservation_id", reservationHandler.UpdateReservation)
	reservations.DELETE("/:reservation_id", reservationHandler.DeleteReservation)

	categories := v1.Group("/budget-categories")
	categories.GET("/:category_id", categoryHandler.GetBudgetCategory)
	categories.PATCH("/:category_id", categoryHandler.UpdateBudgetCategory)
	categories.DELETE("/:category_id", categoryHandler.DeleteBudgetCategory)

	spendEntries := v1.Group("/spend-entries")
	spendEntries.GET("/:spend_entry_id", spendHandler.GetSpendEntry)
	spendEntries.PATCH("/:spend_entry_id", spendHandler.UpdateSpendEntry)
	spendEntries.DELETE("/:spend_entry_id", spendHandler.DeleteSpendEntry)

	log.Infof("Starting Trip API server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
