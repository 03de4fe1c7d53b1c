package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "foundly/internal/errors"
	"foundly/internal/models"
	"foundly/internal/pagination"
)

// notificationService creates and tracks user-facing notifications.
type notificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB) NotificationServicer {
	return &notificationService{db: db}
}

// Notify creates one unread notification for the given user.
func (s *notificationService) Notify(userID, title, message string, relatedClaimID, relatedItemID *string) (*models.Notification, error) {
	if userID == "" || title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user ID and title are required")
	}

	notification := &models.Notification{
		UserID:         userID,
		Title:          title,
		Message:        message,
		RelatedClaimID: relatedClaimID,
		RelatedItemID:  relatedItemID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return notification, nil
}

// MarkRead marks one of the user's notifications as read. Marking an
// already-read notification again is a no-op.
func (s *notificationService) MarkRead(userID, notificationID string) error {
	var notification models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if notification.IsRead {
		return nil
	}

	now := time.Now()
	if err := s.db.Model(&notification).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// MarkAllRead marks every unread notification for the user as read and
// returns how many rows changed.
func (s *notificationService) MarkAllRead(userID string) (int64, error) {
	now := time.Now()
	res := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now})
	if res.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	return res.RowsAffected, nil
}

// UnreadCount returns the number of unread notifications for the user.
func (s *notificationService) UnreadCount(userID string) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

// GetUserNotifications retrieves the user's notifications, newest first.
func (s *notificationService) GetUserNotifications(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
	page.Defaults()

	base := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var notifications []models.Notification
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&notifications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(notifications, page.Page, page.PageSize, totalItems)
	return &result, nil
}
