package models

// AuditAction identifies a privileged mutation recorded in the audit log.
type AuditAction string

// Audit actions. One entry is written per mutating action; bulk operations
// produce one entry per affected target.
const (
	ActionClaimApproved AuditAction = "claim_approved"
	ActionClaimRejected AuditAction = "claim_rejected"
	ActionClaimDeleted  AuditAction = "claim_deleted"
	ActionRoleAssigned  AuditAction = "role_assigned"
	ActionRoleRevoked   AuditAction = "role_revoked"
	ActionUserSuspended AuditAction = "user_suspended"
	ActionUserActivated AuditAction = "user_activated"
	ActionItemVerified  AuditAction = "item_verified"
	ActionItemDeleted   AuditAction = "item_deleted"
)

// AuditLog records who did what to which entity. Rows are append-only: this
// core never updates or deletes them.
type AuditLog struct {
	Base
	Action      AuditAction `gorm:"type:varchar(32);not null;index" json:"action"`
	ModeratorID string      `gorm:"type:uuid;not null;index" json:"moderator_id"`
	TargetType  string      `gorm:"type:varchar(32);not null" json:"target_type"`
	TargetID    string      `gorm:"type:uuid" json:"target_id"`
	TargetInfo  string      `json:"target_info"`
	Metadata    string      `gorm:"type:text" json:"metadata,omitempty"`
}
