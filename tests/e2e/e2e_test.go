package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fikhidmatik/internal/database"
	"fikhidmatik/internal/domain"
	"fikhidmatik/internal/middleware"
	"fikhidmatik/internal/modules/artisan"
	"fikhidmatik/internal/modules/auth"
	"fikhidmatik/internal/modules/booking"
	"fikhidmatik/internal/modules/catalog"
	"fikhidmatik/internal/modules/chat"
	"fikhidmatik/internal/modules/review"
	jwtsvc "fikhidmatik/internal/pkg/jwt"
	"fikhidmatik/internal/pkg/logger"
	"fikhidmatik/internal/repository"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwtsvc.Service
}

type TestResponse struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, repository.AutoMigrate(db), "Failed to migrate schema")

	userRepo := repository.NewUserRepository(db)
	artisanRepo := repository.NewArtisanRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	chatRepo := repository.NewChatRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authService := auth.NewService(userRepo, refreshTokenRepo, j, "test-pepper", 24*time.Hour)
	authHandler := auth.NewHandler(authService)

	artisanService := artisan.NewService(artisanRepo, userRepo)
	artisanHandler := artisan.NewHandler(artisanService)

	bookingService := booking.NewService(bookingRepo, artisanRepo)
	bookingHandler := booking.NewHandler(bookingService)

	reviewService := review.NewService(reviewRepo, bookingRepo, artisanRepo)
	reviewHandler := review.NewHandler(reviewService)

	hub := chat.NewHub()
	chatService := chat.NewService(chatRepo, artisanRepo, hub)
	chatHandler := chat.NewHandler(chatService, hub, j)

	catalogHandler := catalog.NewHandler()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestLogger(logger.L()))

	api := r.Group("/api")

	protected := api.Group("/")
	protected.Use(middleware.Auth(j))

	artisanOnly := protected.Group("/")
	artisanOnly.Use(middleware.RequireRole(domain.RoleArtisan))

	authHandler.RegisterRoutes(api, protected)
	artisanHandler.RegisterRoutes(api, artisanOnly)
	bookingHandler.RegisterRoutes(protected)
	reviewHandler.RegisterRoutes(api, protected)
	chatHandler.RegisterRoutes(api, protected)
	catalogHandler.RegisterRoutes(api)

	return &E2ETestSuite{router: r, db: db, jwt: j}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

func dataMap(t *testing.T, resp *TestResponse) map[string]interface{} {
	m, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "expected object data, got %T", resp.Data)
	return m
}

func dataArray(t *testing.T, resp *TestResponse) []interface{} {
	a, ok := resp.Data.([]interface{})
	require.True(t, ok, "expected array data, got %T", resp.Data)
	return a
}

// registerCustomer creates a customer account and returns its access token.
func (s *E2ETestSuite) registerCustomer(t *testing.T, email, name string) string {
	w := s.makeRequest("POST", "/api/auth/register", map[string]interface{}{
		"email":     email,
		"password":  "Password123",
		"full_name": name,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return s.login(t, email)
}

// registerArtisan creates an artisan account with one service and returns
// (access token, artisan profile ID).
func (s *E2ETestSuite) registerArtisan(t *testing.T, email, name, city, category string) (string, int64) {
	w := s.makeRequest("POST", "/api/auth/register/artisan", map[string]interface{}{
		"user": map[string]interface{}{
			"email":     email,
			"password":  "Password123",
			"full_name": name,
		},
		"artisan": map[string]interface{}{
			"bio":  "Professional " + category,
			"city": city,
			"services": []map[string]interface{}{
				{"category": category, "name": category + " service"},
			},
		},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	token := s.login(t, email)

	w = s.makeRequest("GET", "/api/artisans?search="+name, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	items := dataArray(t, parseResponse(t, w))
	require.NotEmpty(t, items, "artisan should appear in listing")
	id := int64(items[0].(map[string]interface{})["id"].(float64))
	return token, id
}

func (s *E2ETestSuite) login(t *testing.T, email string) string {
	w := s.makeRequest("POST", "/api/auth/login", map[string]interface{}{
		"email":    email,
		"password": "Password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := dataMap(t, parseResponse(t, w))
	tokens := data["tokens"].(map[string]interface{})
	return tokens["access_token"].(string)
}

// createBooking posts a booking for the artisan and returns its ID.
func (s *E2ETestSuite) createBooking(t *testing.T, token string, artisanID int64) int64 {
	w := s.makeRequest("POST", "/api/bookings", map[string]interface{}{
		"artisan_id":          artisanID,
		"service_category":    "plumbing",
		"service_description": "Leaking kitchen sink",
		"scheduled_date":      time.Now().AddDate(0, 0, 2).Format(time.RFC3339),
		"scheduled_time":      "10:00",
		"address":             "12 Rue Hassan II",
		"city":                "Casablanca",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := dataMap(t, parseResponse(t, w))
	assert.Equal(t, "pending", data["status"])
	return int64(data["id"].(float64))
}

func TestFlow_AuthLifecycle(t *testing.T) {
	suite := setupTestSuite(t)

	w := suite.makeRequest("POST", "/api/auth/register", map[string]interface{}{
		"email":     "client@test.ma",
		"password":  "Password123",
		"full_name": "Amine Benali",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Duplicate email registers as a conflict, not a server error.
	w = suite.makeRequest("POST", "/api/auth/register", map[string]interface{}{
		"email":     "client@test.ma",
		"password":  "Password123",
		"full_name": "Someone Else",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CONFLICT", parseResponse(t, w).Error.Code)

	w = suite.makeRequest("POST", "/api/auth/login", map[string]interface{}{
		"email":    "client@test.ma",
		"password": "Password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, parseResponse(t, w))
	tokens := data["tokens"].(map[string]interface{})
	access := tokens["access_token"].(string)
	refresh := tokens["refresh_token"].(string)

	w = suite.makeRequest("GET", "/api/auth/me", nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	me := dataMap(t, parseResponse(t, w))
	assert.Equal(t, "client@test.ma", me["email"])

	// Rotation: the new pair works, the consumed token does not.
	w = suite.makeRequest("POST", "/api/auth/refresh", map[string]interface{}{
		"refresh_token": refresh,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	rotated := dataMap(t, parseResponse(t, w))
	assert.NotEqual(t, refresh, rotated["refresh_token"])

	w = suite.makeRequest("POST", "/api/auth/refresh", map[string]interface{}{
		"refresh_token": refresh,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = suite.makeRequest("GET", "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFlow_ArtisanDirectory(t *testing.T) {
	suite := setupTestSuite(t)

	_, plumberID := suite.registerArtisan(t, "plumber@test.ma", "Hassan", "Casablanca", "plumbing")
	suite.registerArtisan(t, "electrician@test.ma", "Karim", "Rabat", "electrical")

	w := suite.makeRequest("GET", "/api/artisans", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataArray(t, parseResponse(t, w)), 2)

	w = suite.makeRequest("GET", "/api/artisans?city=casa", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	items := dataArray(t, parseResponse(t, w))
	require.Len(t, items, 1)
	assert.Equal(t, "Hassan", items[0].(map[string]interface{})["full_name"])

	w = suite.makeRequest("GET", "/api/artisans?category=electrical", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	items = dataArray(t, parseResponse(t, w))
	require.Len(t, items, 1)
	assert.Equal(t, "Karim", items[0].(map[string]interface{})["full_name"])

	w = suite.makeRequest("GET", "/api/artisans?min_rating=9", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = suite.makeRequest("GET", fmt.Sprintf("/api/artisans/%d", plumberID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	detail := dataMap(t, parseResponse(t, w))
	assert.Equal(t, "Hassan", detail["full_name"])

	w = suite.makeRequest("GET", "/api/artisans/99999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Profile endpoints demand the artisan role.
	customerToken := suite.registerCustomer(t, "client2@test.ma", "Client")
	w = suite.makeRequest("PUT", "/api/artisans/me", map[string]interface{}{"city": "Fès"}, customerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFlow_BookingLifecycle(t *testing.T) {
	suite := setupTestSuite(t)

	customerToken := suite.registerCustomer(t, "client@test.ma", "Amine")
	artisanToken, artisanID := suite.registerArtisan(t, "plumber@test.ma", "Hassan", "Casablanca", "plumbing")

	bookingID := suite.createBooking(t, customerToken, artisanID)

	// in_progress is only reachable from accepted.
	w := suite.makeRequest("POST", fmt.Sprintf("/api/bookings/%d/start", bookingID), nil, artisanToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CONFLICT", parseResponse(t, w).Error.Code)

	w = suite.makeRequest("POST", fmt.Sprintf("/api/bookings/%d/accept", bookingID), nil, artisanToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "accepted", dataMap(t, parseResponse(t, w))["status"])

	// Accepting twice is a conflict.
	w = suite.makeRequest("POST", fmt.Sprintf("/api/bookings/%d/accept", bookingID), nil, artisanToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = suite.makeRequest("POST", fmt.Sprintf("/api/bookings/%d/start", bookingID), nil, artisanToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = suite.makeRequest("POST", fmt.Sprintf("/api/bookings/%d/complete", bookingID), map[string]interface{}{
		"final_price": 450.0,
	}, artisanToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	done := dataMap(t, parseResponse(t, w))
	assert.Equal(t, "completed", done["status"])
	assert.Equal(t, 450.0, done["final_price"])

	// Completion credits the artisan's job counter.
	w = suite.makeRequest("GET", fmt.Sprintf("/api/artisans/%d", artisanID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), dataMap(t, parseResponse(t, w))["completed_jobs"])

	// Terminal bookings cannot be cancelled.
	w = suite.makeRequest("POST", fmt.Sprintf("/api/bookings/%d/cancel", bookingID), nil, customerToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CONFLICT", parseResponse(t, w).Error.Code)

	// Rejected is terminal too.
	rejectedID := suite.createBooking(t, customerToken, artisanID)
	w = suite.makeRequest("POST", fmt.Sprintf("/api/bookings/%d/reject", rejectedID), nil, artisanToken)
	require.Equal(t, http.StatusOK, w.Code)
	w = suite.makeRequest("POST", fmt.Sprintf("/api/bookings/%d/accept", rejectedID), nil, artisanToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Customers can withdraw pending bookings.
	cancelledID := suite.createBooking(t, customerToken, artisanID)
	w = suite.makeRequest("POST", fmt.Sprintf("/api/bookings/%d/cancel", cancelledID), nil, customerToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", dataMap(t, parseResponse(t, w))["status"])

	// Only participants see a booking.
	strangerToken := suite.registerCustomer(t, "stranger@test.ma", "Stranger")
	w = suite.makeRequest("GET", fmt.Sprintf("/api/bookings/%d", bookingID), nil, strangerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = suite.makeRequest("GET", "/api/bookings/my-bookings", nil, customerToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataArray(t, parseResponse(t, w)), 3)

	w = suite.makeRequest("GET", "/api/bookings/artisan-bookings?status=completed", nil, artisanToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataArray(t, parseResponse(t, w)), 1)

	// An artisan without a profile cannot list artisan bookings.
	w = suite.makeRequest("GET", "/api/bookings/artisan-bookings", nil, strangerToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Booking an unavailable artisan is refused.
	w = suite.makeRequest("PUT", "/api/artisans/me", map[string]interface{}{"is_available": false}, artisanToken)
	require.Equal(t, http.StatusOK, w.Code)
	w = suite.makeRequest("POST", "/api/bookings", map[string]interface{}{
		"artisan_id":          artisanID,
		"service_category":    "plumbing",
		"service_description": "Another job",
		"scheduled_date":      time.Now().AddDate(0, 0, 3).Format(time.RFC3339),
		"scheduled_time":      "14:00",
		"address":             "5 Avenue Mohammed V",
		"city":                "Casablanca",
	}, customerToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CONFLICT", parseResponse(t, w).Error.Code)
}

func TestFlow_ReviewsAndRatings(t *testing.T) {
	suite := setupTestSuite(t)

	customerToken := suite.registerCustomer(t, "client@test.ma", "Amine")
	artisanToken, artisanID := suite.registerArtisan(t, "plumber@test.ma", "Hassan", "Casablanca", "plumbing")

	complete := func(id int64) {
		for _, action := range []string{"accept", "start", "complete"} {
			w := suite.makeRequest("POST", fmt.Sprintf("/api/bookings/%d/%s", id, action), nil, artisanToken)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}
	}

	first := suite.createBooking(t, customerToken, artisanID)
	second := suite.createBooking(t, customerToken, artisanID)
	pending := suite.createBooking(t, customerToken, artisanID)
	complete(first)
	complete(second)

	// Reviews require a completed booking.
	w := suite.makeRequest("POST", "/api/reviews", map[string]interface{}{
		"booking_id": pending,
		"rating":     5,
	}, customerToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CONFLICT", parseResponse(t, w).Error.Code)

	w = suite.makeRequest("POST", "/api/reviews", map[string]interface{}{
		"booking_id":     first,
		"rating":         4,
		"quality_rating": 4,
		"comment":        "Bon travail",
	}, customerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reviewID := int64(dataMap(t, parseResponse(t, w))["id"].(float64))

	// The stored mean folds in each review incrementally.
	w = suite.makeRequest("GET", fmt.Sprintf("/api/reviews/stats/%d", artisanID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	stats := dataMap(t, parseResponse(t, w))
	assert.Equal(t, 4.0, stats["average_rating"])
	assert.Equal(t, float64(1), stats["total_reviews"])

	w = suite.makeRequest("POST", "/api/reviews", map[string]interface{}{
		"booking_id": second,
		"rating":     5,
	}, customerToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = suite.makeRequest("GET", fmt.Sprintf("/api/reviews/stats/%d", artisanID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	stats = dataMap(t, parseResponse(t, w))
	assert.Equal(t, 4.5, stats["average_rating"])
	assert.Equal(t, float64(2), stats["total_reviews"])
	dist := stats["distribution"].(map[string]interface{})
	assert.Equal(t, float64(1), dist["4"])
	assert.Equal(t, float64(1), dist["5"])

	// One review per booking.
	w = suite.makeRequest("POST", "/api/reviews", map[string]interface{}{
		"booking_id": first,
		"rating":     1,
	}, customerToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CONFLICT", parseResponse(t, w).Error.Code)

	// Only the booking's customer may review it.
	otherToken := suite.registerCustomer(t, "other@test.ma", "Other")
	third := suite.createBooking(t, customerToken, artisanID)
	complete(third)
	w = suite.makeRequest("POST", "/api/reviews", map[string]interface{}{
		"booking_id": third,
		"rating":     3,
	}, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Only the reviewed artisan may respond, and only once.
	otherArtisanToken, _ := suite.registerArtisan(t, "electrician@test.ma", "Karim", "Rabat", "electrical")
	w = suite.makeRequest("POST", fmt.Sprintf("/api/reviews/%d/respond", reviewID), map[string]interface{}{
		"response": "Merci",
	}, otherArtisanToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = suite.makeRequest("POST", fmt.Sprintf("/api/reviews/%d/respond", reviewID), map[string]interface{}{
		"response": "Merci beaucoup",
	}, artisanToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Merci beaucoup", dataMap(t, parseResponse(t, w))["artisan_response"])

	w = suite.makeRequest("POST", fmt.Sprintf("/api/reviews/%d/respond", reviewID), map[string]interface{}{
		"response": "Encore",
	}, artisanToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CONFLICT", parseResponse(t, w).Error.Code)

	w = suite.makeRequest("GET", fmt.Sprintf("/api/reviews/artisan/%d", artisanID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataArray(t, parseResponse(t, w)), 2)
}

func TestFlow_Chat(t *testing.T) {
	suite := setupTestSuite(t)

	customerToken := suite.registerCustomer(t, "client@test.ma", "Amine")
	artisanToken, artisanID := suite.registerArtisan(t, "plumber@test.ma", "Hassan", "Casablanca", "plumbing")

	w := suite.makeRequest("POST", "/api/conversations", map[string]interface{}{
		"artisan_id":      artisanID,
		"initial_message": "Bonjour, êtes-vous disponible demain ?",
	}, customerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := dataMap(t, parseResponse(t, w))
	conv := data["conversation"].(map[string]interface{})
	convID := int64(conv["id"].(float64))
	require.NotNil(t, data["initial_message"])

	// Reopening the pair returns the same conversation.
	w = suite.makeRequest("POST", "/api/conversations", map[string]interface{}{
		"artisan_id": artisanID,
	}, customerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	again := dataMap(t, parseResponse(t, w))["conversation"].(map[string]interface{})
	assert.Equal(t, convID, int64(again["id"].(float64)))

	w = suite.makeRequest("POST", fmt.Sprintf("/api/conversations/%d/messages", convID), map[string]interface{}{
		"content": "Oui, à partir de 10h.",
	}, artisanToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = suite.makeRequest("GET", fmt.Sprintf("/api/conversations/%d/messages", convID), nil, customerToken)
	require.Equal(t, http.StatusOK, w.Code)
	msgs := dataMap(t, parseResponse(t, w))["messages"].([]interface{})
	assert.Len(t, msgs, 2)

	w = suite.makeRequest("GET", "/api/conversations", nil, artisanToken)
	require.Equal(t, http.StatusOK, w.Code)
	convs := dataMap(t, parseResponse(t, w))["conversations"].([]interface{})
	assert.Len(t, convs, 1)

	// Outsiders cannot read the thread.
	strangerToken := suite.registerCustomer(t, "stranger@test.ma", "Stranger")
	w = suite.makeRequest("GET", fmt.Sprintf("/api/conversations/%d/messages", convID), nil, strangerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFlow_CatalogAndHealth(t *testing.T) {
	suite := setupTestSuite(t)

	w := suite.makeRequest("GET", "/api/categories", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	cats := dataMap(t, parseResponse(t, w))["categories"].([]interface{})
	assert.Len(t, cats, 12)

	w = suite.makeRequest("GET", "/api/cities", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	cities := dataMap(t, parseResponse(t, w))["cities"].([]interface{})
	assert.Len(t, cities, 20)
}
