package models

// ClaimStatus is the review state of an ownership claim.
type ClaimStatus string

// Claim statuses. Approved and rejected are terminal: once a claim leaves
// pending it can only be deleted, never re-reviewed.
const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

// Claim represents an ownership claim submitted against a found item.
// ReviewedBy and ReviewNotes are set exactly when Status is not pending.
type Claim struct {
	Base
	ItemID           string      `gorm:"type:uuid;not null;index" json:"item_id"`
	ClaimantID       string      `gorm:"type:uuid;not null;index" json:"claimant_id"`
	ProofOfOwnership string      `gorm:"type:text" json:"proof_of_ownership"`
	Status           ClaimStatus `gorm:"type:varchar(16);default:'pending';index" json:"status"`
	ReviewedBy       *string     `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewNotes      *string     `gorm:"type:text" json:"review_notes,omitempty"`
}
