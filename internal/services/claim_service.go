package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "foundly/internal/errors"
	"foundly/internal/logger"
	"foundly/internal/models"
	"foundly/internal/pagination"
)

// claimService drives ownership claims from submission to a terminal
// decision. Decisions are final: pending is the only reviewable state.
type claimService struct {
	db       *gorm.DB
	users    UserServicer
	audit    AuditServicer
	notifier NotificationServicer
}

// NewClaimService creates a new ClaimServicer.
func NewClaimService(db *gorm.DB, users UserServicer, audit AuditServicer, notifier NotificationServicer) ClaimServicer {
	return &claimService{db: db, users: users, audit: audit, notifier: notifier}
}

// Review applies a staff decision to a pending claim. On approval the
// referenced item is flipped to claimed in the same transaction, so a stale
// or already-claimed item rolls the decision back. The claim update is
// conditional on the pending status: two reviewers racing on the same claim
// get exactly one success and one conflict.
func (s *claimService) Review(claimID string, decision models.ClaimStatus, reviewerID, notes string) (*models.Claim, error) {
	reviewer, err := s.users.AuthorizeActor(reviewerID, models.RoleModerator, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if decision != models.ClaimApproved && decision != models.ClaimRejected {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "decision must be approved or rejected")
	}
	if decision == models.ClaimRejected && strings.TrimSpace(notes) == "" {
		return nil, apperrors.ErrRejectNotesRequired
	}

	claim, err := s.GetClaimByID(claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status != models.ClaimPending {
		return nil, apperrors.ErrClaimAlreadyClosed
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Claim{}).
			Where("id = ? AND status = ?", claimID, models.ClaimPending).
			Updates(map[string]interface{}{
				"status":       decision,
				"reviewed_by":  reviewerID,
				"review_notes": notes,
			})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race to a concurrent reviewer.
			return apperrors.ErrClaimAlreadyClosed
		}

		if decision == models.ClaimApproved {
			res = tx.Model(&models.Item{}).
				Where("id = ? AND status = ?", claim.ItemID, models.ItemActive).
				Update("status", models.ItemClaimed)
			if res.Error != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
			}
			if res.RowsAffected == 0 {
				// Item missing, already claimed, or otherwise unavailable:
				// the decision must not stand against a stale item.
				return apperrors.ErrItemUnavailable
			}
		}

		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updated, err := s.GetClaimByID(claimID)
	if err != nil {
		return nil, err
	}

	s.recordDecision(updated, reviewer, decision, notes)
	return updated, nil
}

// recordDecision writes the audit entry and claimant notification for a
// committed decision. Both are best-effort: the committed claim transition is
// the source of truth and is never rolled back here.
func (s *claimService) recordDecision(claim *models.Claim, reviewer *models.User, decision models.ClaimStatus, notes string) {
	action := models.ActionClaimApproved
	if decision == models.ClaimRejected {
		action = models.ActionClaimRejected
	}

	targetInfo := ""
	if claimant, err := s.users.GetUserByID(claim.ClaimantID); err == nil {
		targetInfo = userSnapshot(claimant)
	}

	s.audit.Log(action, reviewer.ID, "claim", claim.ID, targetInfo,
		map[string]interface{}{"item_id": claim.ItemID, "notes": notes})

	itemName := "the item"
	var item models.Item
	if err := s.db.Where("id = ?", claim.ItemID).First(&item).Error; err == nil {
		itemName = fmt.Sprintf("%q", item.Name)
	}

	title := "Claim approved"
	message := fmt.Sprintf("Your ownership claim for %s has been approved. Please arrange pickup.", itemName)
	if decision == models.ClaimRejected {
		title = "Claim rejected"
		message = fmt.Sprintf("Your ownership claim for %s has been rejected: %s", itemName, notes)
	}

	if _, err := s.notifier.Notify(claim.ClaimantID, title, message, &claim.ID, &claim.ItemID); err != nil {
		logger.Get().Errorw("failed to notify claimant of decision",
			"claim_id", claim.ID,
			"claimant_id", claim.ClaimantID,
			"error", err,
		)
	}
}

// Delete removes a claim regardless of its status. The removal is a hard
// delete but still leaves an audit trail.
func (s *claimService) Delete(claimID, actorID string) error {
	actor, err := s.users.AuthorizeActor(actorID, models.RoleModerator, models.RoleAdmin)
	if err != nil {
		return err
	}

	claim, err := s.GetClaimByID(claimID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(claim).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(models.ActionClaimDeleted, actor.ID, "claim", claim.ID, "",
		map[string]interface{}{"item_id": claim.ItemID, "claimant_id": claim.ClaimantID, "status": claim.Status})

	return nil
}

// GetClaims retrieves a paginated list of claims, optionally filtered by status.
func (s *claimService) GetClaims(page pagination.PageRequest, status *models.ClaimStatus) (*pagination.PageResponse[models.Claim], error) {
	page.Defaults()

	base := s.db.Model(&models.Claim{})
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var claims []models.Claim
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&claims).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(claims, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetClaimByID retrieves a claim by ID.
func (s *claimService) GetClaimByID(id string) (*models.Claim, error) {
	var claim models.Claim
	if err := s.db.Where("id = ?", id).First(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrClaimNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &claim, nil
}
