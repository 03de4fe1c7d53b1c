package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foundly/internal/services"
)

// ItemHandler handles staff moderation of found item listings.
type ItemHandler struct {
	itemService services.ItemServicer
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService services.ItemServicer) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// GetItemByID handles retrieving a single item.
// @Summary     Get item by ID
// @Description Get a single found item listing
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} models.Item "Item details"
// @Failure     400 {object} ErrorResponse "Invalid item ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Router      /items/{id} [get]
func (h *ItemHandler) GetItemByID(c *gin.Context) {
	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.itemService.GetItemByID(itemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// VerifyItem handles marking a listing as moderator-checked.
// @Summary     Verify an item
// @Description Mark a found item listing as checked by a moderator
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} models.Item "Verified item"
// @Failure     400 {object} ErrorResponse "Invalid item ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Actor not staff or account disabled"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Router      /items/{id}/verify [put]
func (h *ItemHandler) VerifyItem(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.itemService.VerifyItem(itemID, actorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem handles removing a listing from circulation.
// @Summary     Delete an item
// @Description Remove a found item listing; the row is kept with a deleted status
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} MessageResponse "Item deleted"
// @Failure     400 {object} ErrorResponse "Invalid item ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Actor not staff or account disabled"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Router      /items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.itemService.DeleteItem(itemID, actorID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
