package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "foundly/internal/errors"
	"foundly/internal/models"
	"foundly/internal/pagination"
	"foundly/internal/services"
)

// --- mock notification service ---

type mockNotificationService struct {
	notifyFn               func(userID, title, message string, relatedClaimID, relatedItemID *string) (*models.Notification, error)
	markReadFn             func(userID, notificationID string) error
	markAllReadFn          func(userID string) (int64, error)
	unreadCountFn          func(userID string) (int64, error)
	getUserNotificationsFn func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error)
}

func (m *mockNotificationService) Notify(userID, title, message string, relatedClaimID, relatedItemID *string) (*models.Notification, error) {
	if m.notifyFn != nil {
		return m.notifyFn(userID, title, message, relatedClaimID, relatedItemID)
	}
	return &models.Notification{}, nil
}

func (m *mockNotificationService) MarkRead(userID, notificationID string) error {
	if m.markReadFn != nil {
		return m.markReadFn(userID, notificationID)
	}
	return nil
}

func (m *mockNotificationService) MarkAllRead(userID string) (int64, error) {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(userID)
	}
	return 0, nil
}

func (m *mockNotificationService) UnreadCount(userID string) (int64, error) {
	if m.unreadCountFn != nil {
		return m.unreadCountFn(userID)
	}
	return 0, nil
}

func (m *mockNotificationService) GetUserNotifications(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
	if m.getUserNotificationsFn != nil {
		return m.getUserNotificationsFn(userID, page)
	}
	return emptyPage[models.Notification](), nil
}

var _ services.NotificationServicer = (*mockNotificationService)(nil)

func setupNotificationRouter(handler *NotificationHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testActorID))
	auth.GET("/notifications", handler.GetNotifications)
	auth.GET("/notifications/unread-count", handler.GetUnreadCount)
	auth.PUT("/notifications/:id/read", handler.MarkRead)
	auth.PUT("/notifications/read-all", handler.MarkAllRead)
	return r
}

func TestNotificationHandler_GetNotifications(t *testing.T) {
	t.Run("returns 200 scoped to authenticated user", func(t *testing.T) {
		var gotUser string
		notifSvc := &mockNotificationService{
			getUserNotificationsFn: func(userID string, _ pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
				gotUser = userID
				resp := pagination.NewPageResponse([]models.Notification{
					{Base: models.Base{ID: testTargetID}, UserID: userID, Title: "Claim approved"},
				}, 1, 20, 1)
				return &resp, nil
			},
		}
		handler := NewNotificationHandler(notifSvc)
		r := setupNotificationRouter(handler)

		rec := doRequest(r, "GET", "/notifications", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotUser != testActorID {
			t.Errorf("expected user from auth context, got %q", gotUser)
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 1 {
			t.Errorf("expected 1 notification, got %d", len(data))
		}
	})

	t.Run("passes pagination params to service", func(t *testing.T) {
		var captured pagination.PageRequest
		notifSvc := &mockNotificationService{
			getUserNotificationsFn: func(_ string, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
				captured = page
				return emptyPage[models.Notification](), nil
			},
		}
		handler := NewNotificationHandler(notifSvc)
		r := setupNotificationRouter(handler)

		doRequest(r, "GET", "/notifications?page=3&page_size=10", "")

		if captured.Page != 3 || captured.PageSize != 10 {
			t.Errorf("expected page=3 page_size=10, got %+v", captured)
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewNotificationHandler(&mockNotificationService{})
		r := gin.New()
		r.GET("/notifications", handler.GetNotifications)

		rec := doRequest(r, "GET", "/notifications", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestNotificationHandler_GetUnreadCount(t *testing.T) {
	t.Run("returns 200 with count", func(t *testing.T) {
		notifSvc := &mockNotificationService{
			unreadCountFn: func(_ string) (int64, error) { return 4, nil },
		}
		handler := NewNotificationHandler(notifSvc)
		r := setupNotificationRouter(handler)

		rec := doRequest(r, "GET", "/notifications/unread-count", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["unread_count"].(float64) != 4 {
			t.Errorf("expected unread_count=4, got %v", result["unread_count"])
		}
	})
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var gotUser, gotID string
		notifSvc := &mockNotificationService{
			markReadFn: func(userID, notificationID string) error {
				gotUser, gotID = userID, notificationID
				return nil
			},
		}
		handler := NewNotificationHandler(notifSvc)
		r := setupNotificationRouter(handler)

		rec := doRequest(r, "PUT", "/notifications/"+testTargetID+"/read", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotUser != testActorID || gotID != testTargetID {
			t.Errorf("expected (%s, %s), got (%s, %s)", testActorID, testTargetID, gotUser, gotID)
		}
	})

	t.Run("returns 404 for another user's notification", func(t *testing.T) {
		notifSvc := &mockNotificationService{
			markReadFn: func(_, _ string) error { return apperrors.ErrNotificationNotFound },
		}
		handler := NewNotificationHandler(notifSvc)
		r := setupNotificationRouter(handler)

		rec := doRequest(r, "PUT", "/notifications/"+testTargetID+"/read", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NOTIFICATION_NOT_FOUND")
	})

	t.Run("returns 400 on invalid ID", func(t *testing.T) {
		handler := NewNotificationHandler(&mockNotificationService{})
		r := setupNotificationRouter(handler)

		rec := doRequest(r, "PUT", "/notifications/xyz/read", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestNotificationHandler_MarkAllRead(t *testing.T) {
	t.Run("returns 200 with marked count", func(t *testing.T) {
		notifSvc := &mockNotificationService{
			markAllReadFn: func(_ string) (int64, error) { return 3, nil },
		}
		handler := NewNotificationHandler(notifSvc)
		r := setupNotificationRouter(handler)

		rec := doRequest(r, "PUT", "/notifications/read-all", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["marked"].(float64) != 3 {
			t.Errorf("expected marked=3, got %v", result["marked"])
		}
	})
}
