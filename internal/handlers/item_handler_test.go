package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "foundly/internal/errors"
	"foundly/internal/models"
	"foundly/internal/services"
)

// --- mock item service ---

type mockItemService struct {
	getItemByIDFn func(id string) (*models.Item, error)
	verifyItemFn  func(itemID, actorID string) (*models.Item, error)
	deleteItemFn  func(itemID, actorID string) error
}

func (m *mockItemService) GetItemByID(id string) (*models.Item, error) {
	if m.getItemByIDFn != nil {
		return m.getItemByIDFn(id)
	}
	return &models.Item{}, nil
}

func (m *mockItemService) VerifyItem(itemID, actorID string) (*models.Item, error) {
	if m.verifyItemFn != nil {
		return m.verifyItemFn(itemID, actorID)
	}
	return &models.Item{}, nil
}

func (m *mockItemService) DeleteItem(itemID, actorID string) error {
	if m.deleteItemFn != nil {
		return m.deleteItemFn(itemID, actorID)
	}
	return nil
}

var _ services.ItemServicer = (*mockItemService)(nil)

func setupItemRouter(handler *ItemHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testActorID))
	auth.GET("/items/:id", handler.GetItemByID)
	auth.PUT("/items/:id/verify", handler.VerifyItem)
	auth.DELETE("/items/:id", handler.DeleteItem)
	return r
}

func TestItemHandler_GetItemByID(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		itemSvc := &mockItemService{
			getItemByIDFn: func(id string) (*models.Item, error) {
				return &models.Item{
					Base:   models.Base{ID: id},
					Name:   "Blue Backpack",
					Status: models.ItemActive,
				}, nil
			},
		}
		handler := NewItemHandler(itemSvc)
		r := setupItemRouter(handler)

		rec := doRequest(r, "GET", "/items/"+testTargetID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		item := result["item"].(map[string]interface{})
		if item["name"] != "Blue Backpack" {
			t.Errorf("expected Blue Backpack, got %v", item["name"])
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		itemSvc := &mockItemService{
			getItemByIDFn: func(_ string) (*models.Item, error) {
				return nil, apperrors.ErrItemNotFound
			},
		}
		handler := NewItemHandler(itemSvc)
		r := setupItemRouter(handler)

		rec := doRequest(r, "GET", "/items/"+testTargetID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ITEM_NOT_FOUND")
	})
}

func TestItemHandler_VerifyItem(t *testing.T) {
	t.Run("returns 200 with verified item", func(t *testing.T) {
		var gotActor string
		itemSvc := &mockItemService{
			verifyItemFn: func(itemID, actorID string) (*models.Item, error) {
				gotActor = actorID
				now := time.Now()
				return &models.Item{
					Base:       models.Base{ID: itemID},
					Name:       "Blue Backpack",
					Status:     models.ItemActive,
					VerifiedAt: &now,
				}, nil
			},
		}
		handler := NewItemHandler(itemSvc)
		r := setupItemRouter(handler)

		rec := doRequest(r, "PUT", "/items/"+testTargetID+"/verify", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotActor != testActorID {
			t.Errorf("expected actor from auth context, got %q", gotActor)
		}
		result := parseJSON(t, rec)
		item := result["item"].(map[string]interface{})
		if item["verified_at"] == nil {
			t.Error("expected verified_at to be set")
		}
	})

	t.Run("returns 403 when actor not staff", func(t *testing.T) {
		itemSvc := &mockItemService{
			verifyItemFn: func(_, _ string) (*models.Item, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		handler := NewItemHandler(itemSvc)
		r := setupItemRouter(handler)

		rec := doRequest(r, "PUT", "/items/"+testTargetID+"/verify", "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewItemHandler(&mockItemService{})
		r := gin.New()
		r.PUT("/items/:id/verify", handler.VerifyItem)

		rec := doRequest(r, "PUT", "/items/"+testTargetID+"/verify", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestItemHandler_DeleteItem(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		itemSvc := &mockItemService{
			deleteItemFn: func(_, _ string) error { return nil },
		}
		handler := NewItemHandler(itemSvc)
		r := setupItemRouter(handler)

		rec := doRequest(r, "DELETE", "/items/"+testTargetID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when item not found", func(t *testing.T) {
		itemSvc := &mockItemService{
			deleteItemFn: func(_, _ string) error { return apperrors.ErrItemNotFound },
		}
		handler := NewItemHandler(itemSvc)
		r := setupItemRouter(handler)

		rec := doRequest(r, "DELETE", "/items/"+testTargetID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid ID", func(t *testing.T) {
		handler := NewItemHandler(&mockItemService{})
		r := setupItemRouter(handler)

		rec := doRequest(r, "DELETE", "/items/0", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
