package services

import (
	"encoding/json"

	"gorm.io/gorm"

	apperrors "foundly/internal/errors"
	"foundly/internal/logger"
	"foundly/internal/models"
	"foundly/internal/pagination"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(action models.AuditAction, moderatorID, targetType, targetID, targetInfo string, metadata map[string]interface{}) {
	var metadataJSON string
	if metadata != nil {
		data, err := json.Marshal(metadata)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log metadata", "error", err, "action", action)
			metadataJSON = "{}"
		} else {
			metadataJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		Action:      action,
		ModeratorID: moderatorID,
		TargetType:  targetType,
		TargetID:    targetID,
		TargetInfo:  targetInfo,
		Metadata:    metadataJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"action", action,
			"moderator_id", moderatorID,
			"target_type", targetType,
			"target_id", targetID,
		)
	}
}

// GetLogs retrieves a paginated audit history, newest first, optionally
// filtered by action.
func (s *auditService) GetLogs(page pagination.PageRequest, action *models.AuditAction) (*pagination.PageResponse[models.AuditLog], error) {
	page.Defaults()

	base := s.db.Model(&models.AuditLog{})
	if action != nil {
		base = base.Where("action = ?", *action)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.AuditLog
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Stats returns entry counts grouped by action over the full history.
func (s *auditService) Stats() (*AuditStats, error) {
	var counts []ActionCount
	if err := s.db.Model(&models.AuditLog{}).
		Select("action, COUNT(*) as count").
		Group("action").
		Order("count DESC").
		Scan(&counts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stats := &AuditStats{Actions: counts}
	for _, c := range counts {
		stats.Total += c.Count
	}
	return stats, nil
}
