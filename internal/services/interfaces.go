package services

import (
	"foundly/internal/models"
	"foundly/internal/pagination"
)

// UserServicer defines the contract for user accounts, the account-status
// guard, and role/permission management.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool

	// AuthorizeActor resolves the actor from the store and checks that their
	// role is one of the required roles and their account is active. Every
	// privileged operation goes through this gate; role claims carried by
	// clients are never trusted.
	AuthorizeActor(actorID string, requiredRoles ...models.Role) (*models.User, error)

	AssignRole(userIDs []string, role models.Role, actorID string) (*RoleAssignmentSummary, error)
	RevokeRole(userID, actorID string) (*models.User, error)
	SetAccountStatus(userID string, status models.AccountStatus, actorID string) (*models.User, error)
}

// RoleAssignmentSummary aggregates the per-user outcomes of a bulk role
// assignment. Each target is an independent unit of work: one failure never
// aborts the rest.
type RoleAssignmentSummary struct {
	SuccessCount int               `json:"success_count"`
	FailCount    int               `json:"fail_count"`
	SkippedCount int               `json:"skipped_count"`
	Errors       map[string]string `json:"errors,omitempty"`
}

// ClaimServicer defines the contract for the claim review lifecycle.
type ClaimServicer interface {
	Review(claimID string, decision models.ClaimStatus, reviewerID, notes string) (*models.Claim, error)
	Delete(claimID, actorID string) error
	GetClaims(page pagination.PageRequest, status *models.ClaimStatus) (*pagination.PageResponse[models.Claim], error)
	GetClaimByID(id string) (*models.Claim, error)
}

// ActionCount holds the number of audit entries recorded for one action.
type ActionCount struct {
	Action models.AuditAction `json:"action"`
	Count  int64              `json:"count"`
}

// AuditStats aggregates audit entry counts by action over the full history.
type AuditStats struct {
	Total   int64         `json:"total"`
	Actions []ActionCount `json:"actions"`
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action models.AuditAction, moderatorID, targetType, targetID, targetInfo string, metadata map[string]interface{})
	GetLogs(page pagination.PageRequest, action *models.AuditAction) (*pagination.PageResponse[models.AuditLog], error)
	Stats() (*AuditStats, error)
}

// NotificationServicer defines the contract for user-facing notifications.
type NotificationServicer interface {
	Notify(userID, title, message string, relatedClaimID, relatedItemID *string) (*models.Notification, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) (int64, error)
	UnreadCount(userID string) (int64, error)
	GetUserNotifications(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error)
}

// ItemServicer defines the contract for staff moderation of found items.
// Item listing CRUD lives in the submission surface, not here.
type ItemServicer interface {
	GetItemByID(id string) (*models.Item, error)
	VerifyItem(itemID, actorID string) (*models.Item, error)
	DeleteItem(itemID, actorID string) error
}
