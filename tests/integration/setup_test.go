package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/joshuabarraza/Trip-API/internal/handlers"
	"github.com/joshuabarraza/Trip-API/internal/logger"
	"github.com/joshuabarraza/Trip-API/internal/middleware"
	"github.com/joshuabarraza/Trip-API/internal/models"
	"github.com/joshuabarraza/Trip-API/internal/services"
	"github.com/joshuabarraza/Trip-API/internal/validator"
)

// testAPIKey is the bearer credential every authenticated test request uses.
const testAPIKey = "integration-test-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test", "error")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Trip{},
		&models.Reservation{},
		&models.BudgetCategory{},
		&models.SpendEntry{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates the full application stack backed by an isolated in-memory
// SQLite database, wired exactly like the production router.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	tripService := services.NewTripService(db)
	reservationService := services.NewReservationService(db)
	categoryService := services.NewBudgetCategoryService(db)
	spendService := services.NewSpendEntryService(db)

	tripHandler := handlers.NewTripHandler(tripService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	categoryHandler := handlers.NewBudgetCategoryHandler(categoryService)
	spendHandler := handlers.NewSpendEntryHandler(spendService)

	limiter := middleware.NewRateLimiter(10000)
	t.Cleanup(limiter.Stop)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	v1.Use(middleware.RequireAPIKey(testAPIKey))
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

	return &testApp{DB: db, Router: router}
}

// request makes an authenticated HTTP request to the test router.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	return app.requestWithKey(method, path, body, testAPIKey)
}

// requestWithKey makes an HTTP request with an explicit (possibly empty) API key.
func (app *testApp) requestWithKey(method, path, body, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONList parses the response body into a slice.
func parseJSONList(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createTrip creates a trip through the API and returns its ID.
func (app *testApp) createTrip(t *testing.T, title string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"title":%q}`, title)
	rec := app.request("POST", "/v1/trips", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create trip failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(float64)
}
