package services

import (
	"testing"

	"foundly/internal/models"
	"foundly/internal/pagination"
	"foundly/internal/testutil"
)

func TestNotify(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNotificationService(db)

	user := testutil.CreateTestUser(t, db, models.RoleUser)

	claimID := "019526a8-0000-7000-8000-000000000001"
	n, err := svc.Notify(user.ID, "Claim approved", "Your claim was approved.", &claimID, nil)
	testutil.AssertNoError(t, err)

	if n.IsRead {
		t.Error("expected new notification to be unread")
	}
	if n.RelatedClaimID == nil || *n.RelatedClaimID != claimID {
		t.Errorf("expected related claim %s, got %v", claimID, n.RelatedClaimID)
	}

	_, err = svc.Notify("", "Title", "msg", nil, nil)
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestMarkRead(t *testing.T) {
	t.Run("marks_and_is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewNotificationService(db)

		user := testutil.CreateTestUser(t, db, models.RoleUser)
		n := testutil.CreateTestNotification(t, db, user.ID)

		testutil.AssertNoError(t, svc.MarkRead(user.ID, n.ID))

		count, err := svc.UnreadCount(user.ID)
		testutil.AssertNoError(t, err)
		if count != 0 {
			t.Errorf("expected 0 unread, got %d", count)
		}

		var reloaded models.Notification
		if err := db.Where("id = ?", n.ID).First(&reloaded).Error; err != nil {
			t.Fatalf("failed to reload notification: %v", err)
		}
		if reloaded.ReadAt == nil {
			t.Error("expected read_at to be set")
		}
		firstReadAt := *reloaded.ReadAt

		// Marking again is a no-op and keeps the original timestamp.
		testutil.AssertNoError(t, svc.MarkRead(user.ID, n.ID))
		if err := db.Where("id = ?", n.ID).First(&reloaded).Error; err != nil {
			t.Fatalf("failed to reload notification: %v", err)
		}
		if !reloaded.ReadAt.Equal(firstReadAt) {
			t.Errorf("expected read_at unchanged, got %v then %v", firstReadAt, reloaded.ReadAt)
		}
	})

	t.Run("not_found_for_other_users_notification", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewNotificationService(db)

		owner := testutil.CreateTestUser(t, db, models.RoleUser)
		other := testutil.CreateTestUser(t, db, models.RoleUser)
		n := testutil.CreateTestNotification(t, db, owner.ID)

		err := svc.MarkRead(other.ID, n.ID)
		testutil.AssertAppError(t, err, "NOTIFICATION_NOT_FOUND")
	})
}

func TestMarkAllRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNotificationService(db)

	user := testutil.CreateTestUser(t, db, models.RoleUser)
	other := testutil.CreateTestUser(t, db, models.RoleUser)
	testutil.CreateTestNotification(t, db, user.ID)
	testutil.CreateTestNotification(t, db, user.ID)
	testutil.CreateTestNotification(t, db, user.ID)
	testutil.CreateTestNotification(t, db, other.ID)

	count, err := svc.UnreadCount(user.ID)
	testutil.AssertNoError(t, err)
	if count != 3 {
		t.Fatalf("expected 3 unread, got %d", count)
	}

	changed, err := svc.MarkAllRead(user.ID)
	testutil.AssertNoError(t, err)
	if changed != 3 {
		t.Errorf("expected 3 rows changed, got %d", changed)
	}

	count, err = svc.UnreadCount(user.ID)
	testutil.AssertNoError(t, err)
	if count != 0 {
		t.Errorf("expected 0 unread after mark-all, got %d", count)
	}

	// Other users' notifications are untouched.
	otherCount, err := svc.UnreadCount(other.ID)
	testutil.AssertNoError(t, err)
	if otherCount != 1 {
		t.Errorf("expected other user's unread to remain 1, got %d", otherCount)
	}

	// Idempotent: a second pass changes nothing.
	changed, err = svc.MarkAllRead(user.ID)
	testutil.AssertNoError(t, err)
	if changed != 0 {
		t.Errorf("expected 0 rows changed on second pass, got %d", changed)
	}
}

func TestGetUserNotifications(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNotificationService(db)

	user := testutil.CreateTestUser(t, db, models.RoleUser)
	other := testutil.CreateTestUser(t, db, models.RoleUser)
	testutil.CreateTestNotification(t, db, user.ID)
	testutil.CreateTestNotification(t, db, user.ID)
	testutil.CreateTestNotification(t, db, other.ID)

	page := pagination.PageRequest{Page: 1, PageSize: 20}
	result, err := svc.GetUserNotifications(user.ID, page)
	testutil.AssertNoError(t, err)

	if result.TotalItems != 2 {
		t.Errorf("expected 2 notifications, got %d", result.TotalItems)
	}
	for _, n := range result.Data {
		if n.UserID != user.ID {
			t.Errorf("expected only user's notifications, got one for %s", n.UserID)
		}
	}
}
