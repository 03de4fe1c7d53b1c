// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("staff_role", validateStaffRole)
		_ = v.RegisterValidation("account_status", validateAccountStatus)
		_ = v.RegisterValidation("claim_decision", validateClaimDecision)
		_ = v.RegisterValidation("audit_action", validateAuditAction)
	}
}

// validateStaffRole accepts only roles that can be assigned: escalation
// targets are moderator and admin; revocation to plain user has its own
// endpoint.
func validateStaffRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "moderator", "admin":
		return true
	}
	return false
}

func validateAccountStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "suspended", "banned":
		return true
	}
	return false
}

func validateClaimDecision(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "approved", "rejected":
		return true
	}
	return false
}

func validateAuditAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "claim_approved", "claim_rejected", "claim_deleted",
		"role_assigned", "role_revoked",
		"user_suspended", "user_activated",
		"item_verified", "item_deleted":
		return true
	}
	return false
}
