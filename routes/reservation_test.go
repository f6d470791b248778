package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/99hyeon/beour-be/models"
	"github.com/99hyeon/beour-be/storage"
	"github.com/99hyeon/beour-be/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// buildReservationTestApp creates a minimal Iris app with the guest-facing
// reservation routes and the JWT verifier
func buildReservationTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AuthClaims) })

	spaces := app.Party("/api/spaces")
	{
		spaces.Post("/{id:uint}/reservations",
			accessTokenVerifierMiddleware, utils.ClaimsMiddleware, CreateReservation)
	}

	reservations := app.Party("/api/reservations", accessTokenVerifierMiddleware, utils.ClaimsMiddleware)
	{
		reservations.Get("/upcoming", GetUpcomingReservations)
		reservations.Get("/{id:uint}", GetReservationDetail)
		reservations.Patch("/{id:uint}/cancel", CancelReservation)
	}
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

// useTestDatabase swaps the shared DB handle for an in-memory one
func useTestDatabase(t *testing.T) *models.Space {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Space{},
		&models.AvailableTime{}, &models.Reservation{}, &models.Review{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	storage.DB = db

	guest := models.User{LoginID: "guest1", Password: "x", Name: "Guest", Phone: "01011112222", Email: "guest1@example.com", Role: "guest"}
	host := models.User{LoginID: "host1", Password: "x", Name: "Host", Phone: "01033334444", Email: "host1@example.com", Role: "host"}
	if err := db.Create(&guest).Error; err != nil {
		t.Fatalf("failed to seed guest: %v", err)
	}
	if err := db.Create(&host).Error; err != nil {
		t.Fatalf("failed to seed host: %v", err)
	}

	space := models.Space{HostID: host.ID, Name: "Studio A", Address: "12 Test Street", PricePerHour: 10000, MaxCapacity: 4}
	if err := db.Create(&space).Error; err != nil {
		t.Fatalf("failed to seed space: %v", err)
	}

	tomorrow := utils.DateOnly(time.Now().AddDate(0, 0, 1))
	window := models.AvailableTime{SpaceID: space.ID, Date: tomorrow, StartTime: "09:00", EndTime: "18:00"}
	if err := db.Create(&window).Error; err != nil {
		t.Fatalf("failed to seed availability window: %v", err)
	}

	return &space
}

// signGuestToken returns a signed access token for the seeded guest
func signGuestToken() string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AuthClaims{Category: utils.TokenCategoryAccess, LoginID: "guest1", Role: "guest"})
	return string(token)
}

func TestReservationFlow(t *testing.T) {
	app := buildReservationTestApp()
	space := useTestDatabase(t)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	body, _ := json.Marshal(iris.Map{
		"date":       tomorrow,
		"startTime":  "13:00",
		"endTime":    "15:00",
		"price":      20000,
		"guestCount": 3,
	})

	// No token -> rejected by the verifier
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/spaces/%d/reservations", space.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusCreated {
		t.Fatalf("expected non-201 without token, got %d", resp.Code)
	}

	// With token -> 201 and an id
	req2 := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/spaces/%d/reservations", space.ID), bytes.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("Authorization", "Bearer "+signGuestToken())
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating reservation, got %d: %s", resp2.Code, resp2.Body.String())
	}

	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(resp2.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected a reservation id, got %s", resp2.Body.String())
	}

	var saved models.Reservation
	if err := storage.DB.First(&saved, created.ID).Error; err != nil {
		t.Fatalf("reservation not persisted: %v", err)
	}
	if saved.Status != models.ReservationPending {
		t.Fatalf("expected PENDING, got %s", saved.Status)
	}

	// The new reservation shows up in the upcoming list
	req3 := httptest.NewRequest(http.MethodGet, "/api/reservations/upcoming", nil)
	req3.Header.Set("Authorization", "Bearer "+signGuestToken())
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected 200 listing upcoming, got %d: %s", resp3.Code, resp3.Body.String())
	}

	// Detail is readable
	req4 := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/reservations/%d", created.ID), nil)
	req4.Header.Set("Authorization", "Bearer "+signGuestToken())
	resp4 := httptest.NewRecorder()
	app.ServeHTTP(resp4, req4)
	if resp4.Code != http.StatusOK {
		t.Fatalf("expected 200 reading detail, got %d", resp4.Code)
	}

	// Cancel, then the upcoming list is empty again
	req5 := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/reservations/%d/cancel", created.ID), nil)
	req5.Header.Set("Authorization", "Bearer "+signGuestToken())
	resp5 := httptest.NewRecorder()
	app.ServeHTTP(resp5, req5)
	if resp5.Code != http.StatusOK {
		t.Fatalf("expected 200 cancelling, got %d: %s", resp5.Code, resp5.Body.String())
	}

	req6 := httptest.NewRequest(http.MethodGet, "/api/reservations/upcoming", nil)
	req6.Header.Set("Authorization", "Bearer "+signGuestToken())
	resp6 := httptest.NewRecorder()
	app.ServeHTTP(resp6, req6)
	if resp6.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty upcoming list, got %d", resp6.Code)
	}
}

func TestCreateReservationRejectsBadTimes(t *testing.T) {
	app := buildReservationTestApp()
	space := useTestDatabase(t)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	body, _ := json.Marshal(iris.Map{
		"date":       tomorrow,
		"startTime":  "15:00",
		"endTime":    "13:00",
		"price":      20000,
		"guestCount": 3,
	})

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/spaces/%d/reservations", space.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signGuestToken())
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted times, got %d", resp.Code)
	}
}
