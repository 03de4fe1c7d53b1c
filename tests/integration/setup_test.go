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

	"foundly/internal/handlers"
	"foundly/internal/logger"
	"foundly/internal/middleware"
	"foundly/internal/models"
	"foundly/internal/services"
	"foundly/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Item{},
		&models.Claim{},
		&models.AuditLog{},
		&models.Notification{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	auditService := services.NewAuditService(db)
	notificationService := services.NewNotificationService(db)
	userService := services.NewUserService(db, auditService, notificationService)
	claimService := services.NewClaimService(db, userService, auditService, notificationService)
	itemService := services.NewItemService(db, userService, auditService, notificationService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	claimHandler := handlers.NewClaimHandler(claimService)
	itemHandler := handlers.NewItemHandler(itemService)
	auditHandler := handlers.NewAuditHandler(auditService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	claims := protected.Group("/claims")
	claims.GET("", claimHandler.GetClaims)
	claims.GET("/:id", claimHandler.GetClaimByID)
	claims.PUT("/:id", claimHandler.ReviewClaim)
	claims.DELETE("/:id", claimHandler.DeleteClaim)

	users := protected.Group("/users")
	users.PUT("/:id/role", userHandler.AssignRole)
	users.DELETE("/:id/role", userHandler.RevokeRole)
	users.POST("/roles", userHandler.BulkAssignRole)
	users.PUT("/:id/status", userHandler.SetAccountStatus)

	items := protected.Group("/items")
	items.GET("/:id", itemHandler.GetItemByID)
	items.PUT("/:id/verify", itemHandler.VerifyItem)
	items.DELETE("/:id", itemHandler.DeleteItem)

	audit := protected.Group("/audit-logs")
	audit.GET("", auditHandler.GetLogs)
	audit.GET("/stats", auditHandler.GetStats)

	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.GetNotifications)
	notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
	notifications.PUT("/read-all", notificationHandler.MarkAllRead)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
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

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, name, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

// promote sets a user's role directly in the store. Role bootstrap sits
// outside the API surface, so tests seed staff this way.
func (app *testApp) promote(t *testing.T, userID string, role models.Role) {
	t.Helper()
	if err := app.DB.Model(&models.User{}).Where("id = ?", userID).Update("role", role).Error; err != nil {
		t.Fatalf("failed to promote user: %v", err)
	}
}

// registerStaff registers a user and promotes them to the given role.
func (app *testApp) registerStaff(t *testing.T, name, email string, role models.Role) (token, userID string) {
	t.Helper()
	token, userID = app.registerUser(t, name, email, "password123")
	app.promote(t, userID, role)
	return token, userID
}

// createItem inserts an active found item for a reporter.
func (app *testApp) createItem(t *testing.T, reporterID, name string) *models.Item {
	t.Helper()
	item := &models.Item{
		Name:       name,
		Location:   "East lobby",
		ReporterID: reporterID,
		Status:     models.ItemActive,
	}
	if err := app.DB.Create(item).Error; err != nil {
		t.Fatalf("failed to create item: %v", err)
	}
	return item
}

// createClaim inserts a pending ownership claim.
func (app *testApp) createClaim(t *testing.T, itemID, claimantID string) *models.Claim {
	t.Helper()
	claim := &models.Claim{
		ItemID:           itemID,
		ClaimantID:       claimantID,
		ProofOfOwnership: "Receipt with serial number",
		Status:           models.ClaimPending,
	}
	if err := app.DB.Create(claim).Error; err != nil {
		t.Fatalf("failed to create claim: %v", err)
	}
	return claim
}
