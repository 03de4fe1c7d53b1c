package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"foundly/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user with the given role and a hashed password.
func CreateTestUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	n := nextID()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:          fmt.Sprintf("Test User %d", n),
		Email:         fmt.Sprintf("user%d@test.com", n),
		Password:      string(hash),
		Role:          role,
		AccountStatus: models.AccountActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestUserWithStatus creates a user with the given role and account status.
func CreateTestUserWithStatus(t *testing.T, db *gorm.DB, role models.Role, status models.AccountStatus) *models.User {
	t.Helper()

	user := CreateTestUser(t, db, role)
	if err := db.Model(user).Update("account_status", status).Error; err != nil {
		t.Fatalf("failed to set account status: %v", err)
	}
	user.AccountStatus = status
	return user
}

// CreateTestItem creates an item with the given status.
func CreateTestItem(t *testing.T, db *gorm.DB, reporterID string, status models.ItemStatus) *models.Item {
	t.Helper()

	item := &models.Item{
		Name:       fmt.Sprintf("Test Item %d", nextID()),
		Location:   "Lost and found desk",
		ReporterID: reporterID,
		Status:     status,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	return item
}

// CreateTestClaim creates a pending claim against the given item.
func CreateTestClaim(t *testing.T, db *gorm.DB, itemID, claimantID string) *models.Claim {
	t.Helper()

	claim := &models.Claim{
		ItemID:           itemID,
		ClaimantID:       claimantID,
		ProofOfOwnership: fmt.Sprintf("Proof %d", nextID()),
		Status:           models.ClaimPending,
	}
	if err := db.Create(claim).Error; err != nil {
		t.Fatalf("failed to create test claim: %v", err)
	}
	return claim
}

// CreateTestNotification creates an unread notification for the given user.
func CreateTestNotification(t *testing.T, db *gorm.DB, userID string) *models.Notification {
	t.Helper()

	notification := &models.Notification{
		UserID:  userID,
		Title:   fmt.Sprintf("Test Notification %d", nextID()),
		Message: "Something happened",
	}
	if err := db.Create(notification).Error; err != nil {
		t.Fatalf("failed to create test notification: %v", err)
	}
	return notification
}

// CountAuditEntries returns the number of audit entries for the given action.
func CountAuditEntries(t *testing.T, db *gorm.DB, action models.AuditAction) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.AuditLog{}).Where("action = ?", action).Count(&count).Error; err != nil {
		t.Fatalf("failed to count audit entries: %v", err)
	}
	return count
}
