package handlers

import (
	"net/http"
	"strings"

	"private-chef-api/models"
	"private-chef-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const defaultLocation = "London"

// ListChefs returns the cached chef catalogue, running a discovery search
// the first time the cache is empty
func (h *Handler) ListChefs(c *gin.Context) {
	ctx := c.Request.Context()
	chefs := h.store.CachedChefs(ctx)
	if len(chefs) == 0 {
		chefs = h.discover(c, defaultLocation, "Any")
	}

	// Novelty: filter by cuisine or featured
	if cuisine := c.Query("cuisine"); cuisine != "" {
		chefs = filterChefs(chefs, func(ch models.Chef) bool { return hasCuisine(ch, cuisine) })
	}
	if c.Query("featured") == "true" {
		chefs = filterChefs(chefs, func(ch models.Chef) bool { return ch.IsFeatured })
	}
	chefs = filterChefs(chefs, func(ch models.Chef) bool { return ch.Status != models.ChefInactive })

	c.JSON(http.StatusOK, gin.H{"count": len(chefs), "chefs": chefs})
}

// SearchChefs asks the AI gateway for chefs in a location
func (h *Handler) SearchChefs(c *gin.Context) {
	location := c.DefaultQuery("location", defaultLocation)
	cuisine := c.DefaultQuery("cuisine", "Any")

	chefs := h.discover(c, location, cuisine)
	c.JSON(http.StatusOK, gin.H{"count": len(chefs), "chefs": chefs})
}

// discover runs a search and merges the results into the chef cache.
// A result whose id is already cached is answered from the cache, so
// profile edits survive later searches; cached chefs the search did not
// return are kept. Repeated ids within one result batch collapse to the
// first.
func (h *Handler) discover(c *gin.Context, location, cuisine string) []models.Chef {
	ctx := c.Request.Context()
	results := h.search.SearchChefs(ctx, location, cuisine)
	cached := h.store.CachedChefs(ctx)

	index := make(map[string]int, len(cached))
	for i, ch := range cached {
		index[ch.ID] = i
	}
	merged := cached
	found := make([]models.Chef, 0, len(results))
	returned := map[string]bool{}
	for _, ch := range results {
		if returned[ch.ID] {
			continue
		}
		returned[ch.ID] = true
		if j, ok := index[ch.ID]; ok {
			found = append(found, merged[j])
			continue
		}
		index[ch.ID] = len(merged)
		merged = append(merged, ch)
		found = append(found, ch)
	}
	if len(merged) != len(cached) {
		if err := h.store.CacheChefs(ctx, merged); err != nil {
			logrus.WithError(err).Error("Failed to cache chef search results")
		}
	}
	return found
}

// GetChef returns a single chef with menus
func (h *Handler) GetChef(c *gin.Context) {
	chef, ok := h.store.ChefByID(c.Request.Context(), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"chef":     chef,
		"advisory": advisoryFor(chef, c),
	})
}

// GetPublicSettings exposes the SEO copy and currency, nothing operational
func (h *Handler) GetPublicSettings(c *gin.Context) {
	s := h.store.Settings(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"currency":        s.Currency,
		"minBookingValue": s.MinBookingValue,
		"seoConfig":       s.SEOConfig,
		"supportEmail":    s.SupportEmail,
	})
}

// GetStateMachineInfo returns the booking state machine for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"states":      []models.BookingStatus{models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled, models.StatusRefunded},
		"transitions": statemachine.GetAllTransitions(),
		"notes": []string{
			"Bookings paid at checkout start CONFIRMED",
			"Chefs can confirm pending bookings and complete confirmed ones",
			"Diners can cancel while a booking is PENDING or CONFIRMED",
			"Admins can refund and may force any status with an audit note",
		},
	})
}

// SubmitEventLead takes a bespoke event inquiry from the public form
func (h *Handler) SubmitEventLead(c *gin.Context) {
	var req struct {
		ClientName        string  `json:"clientName" binding:"required"`
		Email             string  `json:"email" binding:"required,email"`
		Location          string  `json:"location" binding:"required"`
		Date              string  `json:"date" binding:"required"`
		Guests            int     `json:"guests" binding:"required,min=1"`
		Budget            float64 `json:"budget" binding:"gte=0"`
		CuisinePreference string  `json:"cuisinePreference"`
		Notes             string  `json:"notes"`
	}
	if !bindJSON(c, &req) {
		return
	}

	lead, err := h.console.SubmitEventLead(c.Request.Context(), models.EventLead{
		ClientName:        req.ClientName,
		Email:             req.Email,
		Location:          req.Location,
		Date:              req.Date,
		Guests:            req.Guests,
		Budget:            req.Budget,
		CuisinePreference: req.CuisinePreference,
		Notes:             req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Inquiry received", "lead": lead})
}

// SubmitChefApplication takes a chef's request to join the platform
func (h *Handler) SubmitChefApplication(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		Email        string `json:"email" binding:"required,email"`
		Niche        string `json:"niche" binding:"required"`
		Experience   int    `json:"experience" binding:"gte=0"`
		PortfolioURL string `json:"portfolioUrl"`
	}
	if !bindJSON(c, &req) {
		return
	}

	application, err := h.console.SubmitChefApplication(c.Request.Context(), models.ChefRequest{
		Name:         req.Name,
		Email:        req.Email,
		Niche:        req.Niche,
		Experience:   req.Experience,
		PortfolioURL: req.PortfolioURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Application received", "request": application})
}

func filterChefs(chefs []models.Chef, keep func(models.Chef) bool) []models.Chef {
	out := make([]models.Chef, 0, len(chefs))
	for _, ch := range chefs {
		if keep(ch) {
			out = append(out, ch)
		}
	}
	return out
}

func hasCuisine(chef models.Chef, cuisine string) bool {
	for _, cu := range chef.Cuisines {
		if strings.EqualFold(cu, cuisine) {
			return true
		}
	}
	return false
}
