package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "foundly/internal/errors"
	"foundly/internal/models"
	"foundly/internal/pagination"
	"foundly/internal/services"
)

// AuditHandler handles audit log read requests. The log itself is append-only
// and written by the services performing privileged mutations.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// auditActionFilter binds the optional action query parameter.
type auditActionFilter struct {
	Action string `form:"action" binding:"omitempty,audit_action"`
}

// GetLogs handles listing audit entries.
// @Summary     List audit logs
// @Description Get a paginated audit history, newest first, optionally filtered by action
// @Tags        audit
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       action    query string false "Filter by action"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.AuditLog] "Paginated audit entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audit-logs [get]
func (h *AuditHandler) GetLogs(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter auditActionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var action *models.AuditAction
	if filter.Action != "" {
		a := models.AuditAction(filter.Action)
		action = &a
	}

	result, err := h.auditService.GetLogs(page, action)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStats handles the audit stats aggregation.
// @Summary     Audit log stats
// @Description Get audit entry counts grouped by action over the full history
// @Tags        audit
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.AuditStats "Counts by action"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audit-logs/stats [get]
func (h *AuditHandler) GetStats(c *gin.Context) {
	stats, err := h.auditService.Stats()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
