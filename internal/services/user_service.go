package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "foundly/internal/errors"
	"foundly/internal/logger"
	"foundly/internal/models"
)

// userService handles user accounts, the account-status guard, and
// role/permission management.
type userService struct {
	db       *gorm.DB
	audit    AuditServicer
	notifier NotificationServicer
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, audit AuditServicer, notifier NotificationServicer) UserServicer {
	return &userService{db: db, audit: audit, notifier: notifier}
}

// CreateUser registers a new user
func (s *userService) CreateUser(name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name, email and password are required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Name:          name,
		Email:         strings.ToLower(email),
		Password:      string(hashedPassword),
		Role:          models.RoleUser,
		AccountStatus: models.AccountActive,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}

// AuthorizeActor resolves the actor from the store and enforces role and
// account status. The check runs at call time on every privileged operation.
func (s *userService) AuthorizeActor(actorID string, requiredRoles ...models.Role) (*models.User, error) {
	actor, err := s.GetUserByID(actorID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, r := range requiredRoles {
		if actor.Role == r {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperrors.ErrForbidden
	}

	if actor.AccountStatus != models.AccountActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return actor, nil
}

// AssignRole elevates each target user to the given staff role. Targets are
// processed as independent units of work: a failure for one user is recorded
// in the summary and the rest proceed. Users already holding the same or a
// higher role are skipped without an audit entry.
func (s *userService) AssignRole(userIDs []string, role models.Role, actorID string) (*RoleAssignmentSummary, error) {
	actor, err := s.AuthorizeActor(actorID, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if role != models.RoleModerator && role != models.RoleAdmin {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "role must be moderator or admin")
	}
	if len(userIDs) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one user ID is required")
	}

	summary := &RoleAssignmentSummary{Errors: make(map[string]string)}
	seen := make(map[string]bool, len(userIDs))

	for _, id := range userIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		user, err := s.GetUserByID(id)
		if err != nil {
			summary.FailCount++
			summary.Errors[id] = err.Error()
			continue
		}

		if user.Role.AtLeast(role) {
			summary.SkippedCount++
			continue
		}

		if err := s.db.Model(&models.User{}).Where("id = ?", id).
			Update("role", role).Error; err != nil {
			summary.FailCount++
			summary.Errors[id] = apperrors.ErrInternalServer.Message
			continue
		}

		summary.SuccessCount++
		s.audit.Log(models.ActionRoleAssigned, actor.ID, "user", user.ID, userSnapshot(user),
			map[string]interface{}{"role": role, "previous_role": user.Role})
		s.notifyBestEffort(user.ID, "Role updated",
			fmt.Sprintf("You have been granted %s privileges.", role))
	}

	return summary, nil
}

// RevokeRole sets the user's role back to plain user. Revoking from a user
// who already holds no staff role succeeds as a no-op: a privilege is a
// toggle, unlike a claim decision.
func (s *userService) RevokeRole(userID, actorID string) (*models.User, error) {
	actor, err := s.AuthorizeActor(actorID, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if user.Role == models.RoleUser {
		return user, nil
	}

	previous := user.Role
	if err := s.db.Model(user).Update("role", models.RoleUser).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(models.ActionRoleRevoked, actor.ID, "user", user.ID, userSnapshot(user),
		map[string]interface{}{"previous_role": previous})
	s.notifyBestEffort(user.ID, "Role updated", "Your staff privileges have been revoked.")

	return user, nil
}

// SetAccountStatus suspends, bans, or reactivates a user account.
// Setting the status the account already has is a no-op.
func (s *userService) SetAccountStatus(userID string, status models.AccountStatus, actorID string) (*models.User, error) {
	actor, err := s.AuthorizeActor(actorID, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if actor.ID == userID {
		return nil, apperrors.ErrSelfSuspension
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if user.AccountStatus == status {
		return user, nil
	}

	previous := user.AccountStatus
	if err := s.db.Model(user).Update("account_status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	action := models.ActionUserSuspended
	message := "Your account has been suspended."
	if status == models.AccountActive {
		action = models.ActionUserActivated
		message = "Your account has been reactivated."
	}

	s.audit.Log(action, actor.ID, "user", user.ID, userSnapshot(user),
		map[string]interface{}{"status": status, "previous_status": previous})
	s.notifyBestEffort(user.ID, "Account status changed", message)

	return user, nil
}

// notifyBestEffort creates a notification for a committed role or status
// change. A notification failure never rolls back the change; it is logged
// and the operation still reports success.
func (s *userService) notifyBestEffort(userID, title, message string) {
	if _, err := s.notifier.Notify(userID, title, message, nil, nil); err != nil {
		logger.Get().Errorw("failed to create notification",
			"user_id", userID,
			"title", title,
			"error", err,
		)
	}
}

// userSnapshot denormalizes the identifying fields kept on audit entries.
func userSnapshot(user *models.User) string {
	return fmt.Sprintf("%s <%s>", user.Name, user.Email)
}
