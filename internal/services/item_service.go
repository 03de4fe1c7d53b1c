package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "foundly/internal/errors"
	"foundly/internal/logger"
	"foundly/internal/models"
)

// itemService handles staff moderation of found item listings. Listing CRUD
// belongs to the submission surface; only status moves happen here.
type itemService struct {
	db       *gorm.DB
	users    UserServicer
	audit    AuditServicer
	notifier NotificationServicer
}

// NewItemService creates a new ItemServicer.
func NewItemService(db *gorm.DB, users UserServicer, audit AuditServicer, notifier NotificationServicer) ItemServicer {
	return &itemService{db: db, users: users, audit: audit, notifier: notifier}
}

// GetItemByID retrieves an item by ID. Deleted items are not returned.
func (s *itemService) GetItemByID(id string) (*models.Item, error) {
	var item models.Item
	if err := s.db.Where("id = ? AND status <> ?", id, models.ItemDeleted).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// VerifyItem marks a listing as checked by a moderator and tells the
// reporter. Re-verifying just refreshes the timestamp.
func (s *itemService) VerifyItem(itemID, actorID string) (*models.Item, error) {
	actor, err := s.users.AuthorizeActor(actorID, models.RoleModerator, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	item, err := s.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.Model(item).Update("verified_at", &now).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(models.ActionItemVerified, actor.ID, "item", item.ID, item.Name, nil)
	s.notifyReporter(item, "Listing verified",
		fmt.Sprintf("Your found item listing %q has been verified by a moderator.", item.Name))

	return item, nil
}

// DeleteItem removes a listing from circulation. The row is kept with a
// deleted status so existing claims still resolve their item reference.
func (s *itemService) DeleteItem(itemID, actorID string) error {
	actor, err := s.users.AuthorizeActor(actorID, models.RoleModerator, models.RoleAdmin)
	if err != nil {
		return err
	}

	item, err := s.GetItemByID(itemID)
	if err != nil {
		return err
	}

	previous := item.Status
	if err := s.db.Model(item).Update("status", models.ItemDeleted).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(models.ActionItemDeleted, actor.ID, "item", item.ID, item.Name,
		map[string]interface{}{"previous_status": previous})
	s.notifyReporter(item, "Listing removed",
		fmt.Sprintf("Your found item listing %q has been removed by a moderator.", item.Name))

	return nil
}

func (s *itemService) notifyReporter(item *models.Item, title, message string) {
	if item.ReporterID == "" {
		return
	}
	if _, err := s.notifier.Notify(item.ReporterID, title, message, nil, &item.ID); err != nil {
		logger.Get().Errorw("failed to notify reporter",
			"item_id", item.ID,
			"reporter_id", item.ReporterID,
			"error", err,
		)
	}
}
