package handlers

import (
	"net/http"

	"private-chef-api/checkout"
	"private-chef-api/console"
	"private-chef-api/middleware"
	"private-chef-api/models"

	"github.com/gin-gonic/gin"
)

// AdminOverview returns the platform totals for the back-office header
func (h *Handler) AdminOverview(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"overview": h.console.Overview(c.Request.Context())})
}

// AdminGetAllBookings returns every booking with a status summary
func (h *Handler) AdminGetAllBookings(c *gin.Context) {
	ctx := c.Request.Context()
	bookings := h.store.Bookings.GetAll(ctx)

	if status := c.Query("status"); status != "" {
		bookings = filterBookings(bookings, models.BookingStatus(status))
	}
	if chefID := c.Query("chef_id"); chefID != "" {
		mine := bookings[:0:0]
		for _, b := range bookings {
			if b.ChefID == chefID {
				mine = append(mine, b)
			}
		}
		bookings = mine
	}

	summary := map[string]int{}
	var gtv float64
	for _, b := range bookings {
		summary[string(b.Status)]++
		gtv += b.TotalPrice
	}

	c.JSON(http.StatusOK, gin.H{
		"booking_summary": summary,
		"gtv":             gtv,
		"count":           len(bookings),
		"bookings":        bookings,
	})
}

// AdminBookingHistory returns the recorded status changes of a booking
func (h *Handler) AdminBookingHistory(c *gin.Context) {
	ctx := c.Request.Context()
	booking, ok := h.store.Bookings.Get(ctx, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking, "history": h.checkout.History(ctx, booking.ID)})
}

// AdminUpdateBookingStatus moves a booking along the admin transitions.
// With force set any status is accepted (emergency use) and the history
// row is marked as an override.
func (h *Handler) AdminUpdateBookingStatus(c *gin.Context) {
	var req struct {
		Status models.BookingStatus `json:"status" binding:"required"`
		Note   string               `json:"note"`
		Force  bool                 `json:"force"`
	}
	if !bindJSON(c, &req) {
		return
	}
	h.changeStatus(c, middleware.GetUser(c), checkout.StatusChange{
		BookingID: c.Param("id"),
		To:        req.Status,
		Note:      req.Note,
		Force:     req.Force,
	})
}

// AdminGetAllUsers returns all users
func (h *Handler) AdminGetAllUsers(c *gin.Context) {
	users := h.store.Users.GetAll(c.Request.Context())
	out := make([]models.User, 0, len(users))
	role := models.UserRole(c.Query("role"))
	for _, u := range users {
		if role == "" || u.Role == role {
			out = append(out, u.Public())
		}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "users": out})
}

func (h *Handler) AdminSetUserRole(c *gin.Context) {
	var req struct {
		Role models.UserRole `json:"role" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.console.SetUserRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AdminGetAllChefs returns every cached chef, inactive ones included
func (h *Handler) AdminGetAllChefs(c *gin.Context) {
	chefs := h.store.CachedChefs(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"count": len(chefs), "chefs": chefs})
}

func (h *Handler) AdminUpdateChef(c *gin.Context) {
	var req console.ChefUpdate
	if !bindJSON(c, &req) {
		return
	}
	chef, err := h.console.UpdateChef(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chef": chef})
}

// ── Talent pipeline ─────────────────────────────────────────────────────────

func (h *Handler) AdminGetChefRequests(c *gin.Context) {
	requests := h.store.ChefRequests.GetAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"count": len(requests), "requests": requests})
}

func (h *Handler) AdminSetChefRequestStatus(c *gin.Context) {
	var req struct {
		Status models.ChefRequestStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	application, err := h.console.SetRequestStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": application})
}

func (h *Handler) AdminGetRecruitmentLeads(c *gin.Context) {
	leads := h.store.RecruitmentLeads.GetAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"count": len(leads), "leads": leads})
}

func (h *Handler) AdminAddRecruitmentLead(c *gin.Context) {
	var req models.RecruitmentLead
	if !bindJSON(c, &req) {
		return
	}
	lead, err := h.console.AddRecruitmentLead(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lead": lead})
}

func (h *Handler) AdminSetRecruitmentStatus(c *gin.Context) {
	var req struct {
		Status models.RecruitmentStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	lead, err := h.console.SetRecruitmentStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

func (h *Handler) AdminGetEventLeads(c *gin.Context) {
	leads := h.store.EventLeads.GetAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"count": len(leads), "leads": leads})
}

func (h *Handler) AdminUpdateEventLead(c *gin.Context) {
	var req console.EventLeadUpdate
	if !bindJSON(c, &req) {
		return
	}
	lead, err := h.console.UpdateEventLead(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

// ── Promotions & gift cards ─────────────────────────────────────────────────

func (h *Handler) AdminGetPromotions(c *gin.Context) {
	promos := h.store.Promotions.GetAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"count": len(promos), "promotions": promos})
}

func (h *Handler) AdminCreatePromotion(c *gin.Context) {
	var req models.Promotion
	if !bindJSON(c, &req) {
		return
	}
	promo, err := h.console.CreatePromotion(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"promotion": promo})
}

func (h *Handler) AdminSetPromotionStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	promo, err := h.console.SetPromotionStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"promotion": promo})
}

func (h *Handler) AdminGetGiftCards(c *gin.Context) {
	cards := h.store.GiftCards.GetAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"count": len(cards), "giftCards": cards})
}

func (h *Handler) AdminIssueGiftCard(c *gin.Context) {
	var req struct {
		Balance        float64 `json:"balance" binding:"required,gt=0"`
		RecipientEmail string  `json:"recipientEmail" binding:"required,email"`
	}
	if !bindJSON(c, &req) {
		return
	}
	card, err := h.console.IssueGiftCard(c.Request.Context(), req.Balance, req.RecipientEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"giftCard": card})
}

// ── Settings & activity ─────────────────────────────────────────────────────

func (h *Handler) AdminGetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.store.Settings(c.Request.Context())})
}

// AdminUpdateSettings replaces the settings document as a whole
func (h *Handler) AdminUpdateSettings(c *gin.Context) {
	var req models.PlatformSettings
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.console.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// AdminGetLogs returns the activity feed, newest first
func (h *Handler) AdminGetLogs(c *gin.Context) {
	logs := h.store.SystemLogs(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"count": len(logs), "logs": logs})
}

// ── AI intelligence ─────────────────────────────────────────────────────────

// AdminRunReport triggers one AI synthesis job
func (h *Handler) AdminRunReport(c *gin.Context) {
	var req console.ReportRequest
	if !bindJSON(c, &req) {
		return
	}
	report, err := h.console.RunReport(c.Request.Context(), req)
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": req.Kind, "report": report})
}

// ── Social hub ──────────────────────────────────────────────────────────────

func (h *Handler) AdminGetSocialPosts(c *gin.Context) {
	posts := h.store.SortedSocialPosts(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"count": len(posts), "posts": posts})
}

func (h *Handler) AdminGenerateCampaign(c *gin.Context) {
	var req console.CampaignRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.console.GenerateCampaign(c.Request.Context(), req)
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

func (h *Handler) AdminPublishPost(c *gin.Context) {
	post, err := h.console.PublishPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *Handler) AdminOptimizeHashtags(c *gin.Context) {
	var req struct {
		Region string `json:"region"`
	}
	_ = c.ShouldBindJSON(&req)
	post, err := h.console.OptimizePostHashtags(c.Request.Context(), c.Param("id"), req.Region)
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *Handler) AdminDeletePost(c *gin.Context) {
	if err := h.console.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
