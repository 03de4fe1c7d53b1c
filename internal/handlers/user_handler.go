package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "foundly/internal/errors"
	"foundly/internal/models"
	"foundly/internal/services"
)

// UserHandler handles role and account status management requests.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// AssignRoleRequest represents the request payload for a single role assignment.
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,staff_role"`
}

// BulkAssignRoleRequest represents the request payload for bulk role assignment.
type BulkAssignRoleRequest struct {
	UserIDs []string `json:"user_ids" binding:"required,min=1,max=100,dive,uuid"`
	Role    string   `json:"role" binding:"required,staff_role"`
}

// SetAccountStatusRequest represents the request payload for suspending,
// banning, or reactivating an account.
type SetAccountStatusRequest struct {
	Status string `json:"status" binding:"required,account_status"`
}

// AssignRole handles granting a staff role to a single user.
// @Summary     Assign a role
// @Description Grant a moderator or admin role to a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "User ID"
// @Param       request body AssignRoleRequest true "Role to assign"
// @Success     200 {object} services.RoleAssignmentSummary "Assignment summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Actor not admin or account disabled"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{id}/role [put]
func (h *UserHandler) AssignRole(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	summary, err := h.userService.AssignRole([]string{userID}, models.Role(req.Role), actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if msg, failed := summary.Errors[userID]; failed {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrUserNotFound, msg))
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user), "summary": summary})
}

// BulkAssignRole handles granting a staff role to a set of users.
// Each target is processed independently; the response reports per-user
// outcomes rather than failing the whole batch.
// @Summary     Bulk assign a role
// @Description Grant a moderator or admin role to multiple users at once
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BulkAssignRoleRequest true "Targets and role"
// @Success     200 {object} services.RoleAssignmentSummary "Assignment summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Actor not admin or account disabled"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/roles [post]
func (h *UserHandler) BulkAssignRole(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BulkAssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	summary, err := h.userService.AssignRole(req.UserIDs, models.Role(req.Role), actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// RevokeRole handles resetting a user's role to plain user.
// @Summary     Revoke a role
// @Description Reset a user's role to plain user; revoking an unprivileged user is a no-op
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID"
// @Success     200 {object} UserResponse "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid user ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Actor not admin or account disabled"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id}/role [delete]
func (h *UserHandler) RevokeRole(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.RevokeRole(userID, actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// SetAccountStatus handles suspending, banning, or reactivating an account.
// @Summary     Change account status
// @Description Suspend, ban, or reactivate a user account
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "User ID"
// @Param       request body SetAccountStatusRequest true "New account status"
// @Success     200 {object} UserResponse "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input or self-suspension"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Actor not admin or account disabled"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id}/status [put]
func (h *UserHandler) SetAccountStatus(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetAccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.SetAccountStatus(userID, models.AccountStatus(req.Status), actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}
