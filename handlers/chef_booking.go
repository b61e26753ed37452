package handlers

import (
	"net/http"

	"private-chef-api/checkout"
	"private-chef-api/middleware"
	"private-chef-api/models"

	"github.com/gin-gonic/gin"
)

// GetChefBookings returns all bookings for the signed-in chef
func (h *Handler) GetChefBookings(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	bookings := h.store.BookingsByChefID(c.Request.Context(), chef.ID)

	// Filter by status
	if status := c.Query("status"); status != "" {
		bookings = filterBookings(bookings, models.BookingStatus(status))
	}

	summary := map[string]int{}
	for _, b := range bookings {
		summary[string(b.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"chef":            chef.Name,
		"booking_summary": summary,
		"count":           len(bookings),
		"bookings":        bookings,
	})
}

type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
	Note   string               `json:"note"`
}

// UpdateBookingStatus handles the chef's state transitions
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	var req UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	// bookings reference the chef profile, which may predate the account
	actor := middleware.GetUser(c)
	actor.ID = chef.ID

	h.changeStatus(c, actor, checkout.StatusChange{
		BookingID: c.Param("id"),
		To:        req.Status,
		Note:      req.Note,
	})
}
