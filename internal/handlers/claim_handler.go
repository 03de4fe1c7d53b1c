package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "foundly/internal/errors"
	"foundly/internal/models"
	"foundly/internal/pagination"
	"foundly/internal/services"
)

// ClaimHandler handles claim review requests.
type ClaimHandler struct {
	claimService services.ClaimServicer
}

// NewClaimHandler creates a new ClaimHandler.
func NewClaimHandler(claimService services.ClaimServicer) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// ReviewClaimRequest represents the request payload for reviewing a claim.
// The reviewer is the authenticated actor; it is never taken from the body.
type ReviewClaimRequest struct {
	Decision string `json:"decision" binding:"required,claim_decision"`
	Notes    string `json:"notes" binding:"max=2000"`
}

// GetClaims handles listing claims for staff review.
// @Summary     List claims
// @Description Get a paginated list of ownership claims, optionally filtered by status
// @Tags        claims
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "Filter by status (pending/approved/rejected)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Claim] "Paginated claims"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /claims [get]
func (h *ClaimHandler) GetClaims(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var status *models.ClaimStatus
	if v := c.Query("status"); v != "" {
		s := models.ClaimStatus(v)
		if s != models.ClaimPending && s != models.ClaimApproved && s != models.ClaimRejected {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be pending, approved, or rejected"))
			return
		}
		status = &s
	}

	result, err := h.claimService.GetClaims(page, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetClaimByID handles retrieving a single claim.
// @Summary     Get claim by ID
// @Description Get a single ownership claim
// @Tags        claims
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Claim ID"
// @Success     200 {object} models.Claim "Claim details"
// @Failure     400 {object} ErrorResponse "Invalid claim ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Claim not found"
// @Router      /claims/{id} [get]
func (h *ClaimHandler) GetClaimByID(c *gin.Context) {
	claimID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	claim, err := h.claimService.GetClaimByID(claimID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claim": claim})
}

// ReviewClaim handles a staff decision on a pending claim.
// @Summary     Review a claim
// @Description Approve or reject a pending ownership claim
// @Tags        claims
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Claim ID"
// @Param       request body ReviewClaimRequest true "Review decision"
// @Success     200 {object} models.Claim "Reviewed claim"
// @Failure     400 {object} ErrorResponse "Invalid input or missing rejection notes"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Actor not staff or account disabled"
// @Failure     404 {object} ErrorResponse "Claim not found"
// @Failure     409 {object} ErrorResponse "Claim already reviewed or item unavailable"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /claims/{id} [put]
func (h *ClaimHandler) ReviewClaim(c *gin.Context) {
	reviewerID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	claimID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReviewClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	claim, err := h.claimService.Review(claimID, models.ClaimStatus(req.Decision), reviewerID, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claim": claim})
}

// DeleteClaim handles staff deletion of a claim at any status.
// @Summary     Delete a claim
// @Description Delete an ownership claim regardless of its review status
// @Tags        claims
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Claim ID"
// @Success     200 {object} MessageResponse "Claim deleted"
// @Failure     400 {object} ErrorResponse "Invalid claim ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Actor not staff or account disabled"
// @Failure     404 {object} ErrorResponse "Claim not found"
// @Router      /claims/{id} [delete]
func (h *ClaimHandler) DeleteClaim(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	claimID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.claimService.Delete(claimID, actorID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Claim deleted successfully"})
}
