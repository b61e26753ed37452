package handlers

import (
	"net/http"
	"strconv"

	"private-chef-api/checkout"
	"private-chef-api/middleware"
	"private-chef-api/models"
	"private-chef-api/payment"
	"private-chef-api/statemachine"

	"github.com/gin-gonic/gin"
)

func advisoryFor(chef models.Chef, c *gin.Context) string {
	guests, err := strconv.Atoi(c.DefaultQuery("guests", strconv.Itoa(checkout.DefaultGuests)))
	if err != nil || guests < 1 {
		guests = checkout.DefaultGuests
	}
	return checkout.MinSpendAdvisory(chef, guests)
}

// respondFlow writes the flow on success. A rejected step still returns the
// unchanged flow so the client can redraw.
func respondFlow(c *gin.Context, flow checkout.Flow, err error) {
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": errorText(err), "flow": flow})
		return
	}
	c.JSON(http.StatusOK, gin.H{"flow": flow})
}

func errorText(err error) string {
	if statusFor(err) == http.StatusPaymentRequired {
		return payment.UserMessage(err)
	}
	return err.Error()
}

// GetFlow returns the caller's checkout state
func (h *Handler) GetFlow(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"flow": h.checkout.Flow(middleware.GetUserID(c))})
}

// Navigate applies a plain navigation action such as back or go_home
func (h *Handler) Navigate(c *gin.Context) {
	var req struct {
		Action checkout.Action `json:"action" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	flow, err := h.checkout.Navigate(middleware.GetUserID(c), req.Action)
	respondFlow(c, flow, err)
}

// FlowSearch runs a chef search and moves the caller to the results view
func (h *Handler) FlowSearch(c *gin.Context) {
	var req struct {
		Location string `json:"location"`
		Cuisine  string `json:"cuisine"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.Location == "" {
		req.Location = defaultLocation
	}
	if req.Cuisine == "" {
		req.Cuisine = "Any"
	}

	chefs := h.discover(c, req.Location, req.Cuisine)
	flow, err := h.checkout.Search(middleware.GetUserID(c), req.Location, req.Cuisine)
	if err != nil {
		respondFlow(c, flow, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flow": flow, "count": len(chefs), "chefs": chefs})
}

// SelectChef opens a chef's profile in the flow
func (h *Handler) SelectChef(c *gin.Context) {
	var req struct {
		ChefID string `json:"chefId" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	flow, err := h.checkout.SelectChef(c.Request.Context(), middleware.GetUserID(c), req.ChefID)
	respondFlow(c, flow, err)
}

// SetDetails records date, time and party size
func (h *Handler) SetDetails(c *gin.Context) {
	var req struct {
		Date   string `json:"date" binding:"required"`
		Time   string `json:"time" binding:"required"`
		Guests int    `json:"guests" binding:"required,min=1"`
	}
	if !bindJSON(c, &req) {
		return
	}
	flow, err := h.checkout.SetDetails(middleware.GetUserID(c), req.Date, req.Time, req.Guests)
	respondFlow(c, flow, err)
}

// BookMenu picks one of the selected chef's menus
func (h *Handler) BookMenu(c *gin.Context) {
	var req struct {
		MenuID string `json:"menuId" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	flow, err := h.checkout.BookMenu(middleware.GetUserID(c), req.MenuID)
	respondFlow(c, flow, err)
}

// ProceedToPayment moves a complete booking to the payment step
func (h *Handler) ProceedToPayment(c *gin.Context) {
	flow, err := h.checkout.ProceedToPayment(middleware.GetUserID(c))
	if err != nil {
		respondFlow(c, flow, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flow": flow, "total": flow.Total()})
}

// Pay charges the card token and confirms the booking
func (h *Handler) Pay(c *gin.Context) {
	var req struct {
		PaymentMethod string `json:"paymentMethod" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	flow, err := h.checkout.Pay(c.Request.Context(), middleware.GetUser(c), req.PaymentMethod)
	if err != nil {
		respondFlow(c, flow, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Booking confirmed",
		"booking":      flow.LastBooking,
		"confirmation": flow.Confirmation,
		"flow":         flow,
	})
}

// GetMyBookings returns the diner's bookings
func (h *Handler) GetMyBookings(c *gin.Context) {
	bookings := h.store.BookingsByUserID(c.Request.Context(), middleware.GetUserID(c))
	if status := c.Query("status"); status != "" {
		bookings = filterBookings(bookings, models.BookingStatus(status))
	}
	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "bookings": bookings})
}

// GetBookingDetail returns one of the caller's bookings with its history
func (h *Handler) GetBookingDetail(c *gin.Context) {
	ctx := c.Request.Context()
	booking, ok := h.store.Bookings.Get(ctx, c.Param("id"))
	if !ok || booking.UserID != middleware.GetUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking": booking,
		"history": h.checkout.History(ctx, booking.ID),
	})
}

// CancelBooking lets a diner cancel while the booking is PENDING or CONFIRMED
func (h *Handler) CancelBooking(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	// body is optional
	_ = c.ShouldBindJSON(&req)

	h.changeStatus(c, middleware.GetUser(c), checkout.StatusChange{
		BookingID: c.Param("id"),
		To:        models.StatusCancelled,
		Note:      req.Reason,
	})
}

// changeStatus runs a booking status change and reports invalid
// transitions with the states that are allowed.
func (h *Handler) changeStatus(c *gin.Context, actor models.User, req checkout.StatusChange) {
	ctx := c.Request.Context()
	before, _ := h.store.Bookings.Get(ctx, req.BookingID)

	booking, err := h.checkout.ChangeStatus(ctx, actor, req)
	if err != nil {
		if statusFor(err) == http.StatusUnprocessableEntity {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":             "Invalid state transition",
				"current_status":    before.Status,
				"requested":         req.To,
				"reason":            err.Error(),
				"valid_next_states": statemachine.ValidTransitionsFrom(before.Status),
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Booking status updated",
		"booking_id":      booking.ID,
		"previous_status": before.Status,
		"current_status":  booking.Status,
		"booking":         booking,
	})
}

func filterBookings(bookings []models.Booking, status models.BookingStatus) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}
