package handlers

import (
	"net/http"
	"strconv"

	"private-chef-api/middleware"
	"private-chef-api/models"
	"private-chef-api/portfolio"

	"github.com/gin-gonic/gin"
)

// myChef resolves the chef profile behind the signed-in CHEF account.
func (h *Handler) myChef(c *gin.Context) (models.Chef, bool) {
	chef, _, err := h.portfolio.EnsureChefProfile(c.Request.Context(), middleware.GetUser(c))
	if err != nil {
		respondError(c, err)
		return models.Chef{}, false
	}
	return chef, true
}

// GetMyChefProfile returns the caller's chef profile, creating it on first use
func (h *Handler) GetMyChefProfile(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"chef": chef})
}

// UpdateMyChefProfile saves edits to the profile fields
func (h *Handler) UpdateMyChefProfile(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	var req portfolio.ProfileUpdate
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.portfolio.UpdateProfile(c.Request.Context(), chef.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "chef": updated})
}

// GetChefDashboard returns bookings and earnings for the caller
func (h *Handler) GetChefDashboard(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"chef":      chef,
		"dashboard": h.console.ChefDashboardFor(c.Request.Context(), chef.ID),
	})
}

// ── Menus ───────────────────────────────────────────────────────────────────

// AddMenu creates an empty menu with the default courses
func (h *Handler) AddMenu(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	var req struct {
		Name         string  `json:"name" binding:"required"`
		PricePerHead float64 `json:"pricePerHead" binding:"required,gt=0"`
	}
	if !bindJSON(c, &req) {
		return
	}
	menu, err := h.portfolio.AddMenu(c.Request.Context(), chef.ID, req.Name, req.PricePerHead)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu added", "menu": menu})
}

// UpdateMenu replaces a menu wholesale
func (h *Handler) UpdateMenu(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	var menu models.Menu
	if !bindJSON(c, &menu) {
		return
	}
	menu.ID = c.Param("menuId")
	updated, err := h.portfolio.UpdateMenu(c.Request.Context(), chef.ID, menu)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu updated", "menu": updated, "courses": portfolio.OrderedCourses(updated)})
}

// DeleteMenu removes a menu from the portfolio
func (h *Handler) DeleteMenu(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	if err := h.portfolio.RemoveMenu(c.Request.Context(), chef.ID, c.Param("menuId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu deleted"})
}

// AddCourse adds a named course; its key is derived from the name
func (h *Handler) AddCourse(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	menu, err := h.portfolio.AddCourse(c.Request.Context(), chef.ID, c.Param("menuId"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"menu": menu, "courses": portfolio.OrderedCourses(menu)})
}

// DeleteCourse drops a course and its dishes
func (h *Handler) DeleteCourse(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	menu, err := h.portfolio.RemoveCourse(c.Request.Context(), chef.ID, c.Param("menuId"), c.Param("courseKey"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu, "courses": portfolio.OrderedCourses(menu)})
}

// SetDishes replaces the whole dish list of a course
func (h *Handler) SetDishes(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	var req struct {
		Dishes []models.Dish `json:"dishes" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	menu, err := h.portfolio.SetDishes(c.Request.Context(), chef.ID, c.Param("menuId"), c.Param("courseKey"), req.Dishes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu})
}

// ── AI-assisted fields ──────────────────────────────────────────────────────

func (h *Handler) GenerateMenuNarrative(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	menu, err := h.portfolio.GenerateMenuNarrative(c.Request.Context(), chef.ID, c.Param("menuId"))
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu})
}

func (h *Handler) GenerateMenuCover(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	menu, err := h.portfolio.GenerateMenuCover(c.Request.Context(), chef.ID, c.Param("menuId"))
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu})
}

// GenerateDishAsset renders a dish photo, or with ?mode=wizard writes the
// narrative and a matching photo together
func (h *Handler) GenerateDishAsset(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dish index must be a number"})
		return
	}

	ctx := c.Request.Context()
	var menu models.Menu
	if c.Query("mode") == "wizard" {
		menu, err = h.portfolio.DishWizard(ctx, chef.ID, c.Param("menuId"), c.Param("courseKey"), idx)
	} else {
		menu, err = h.portfolio.GenerateDishImage(ctx, chef.ID, c.Param("menuId"), c.Param("courseKey"), idx)
	}
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu})
}

func (h *Handler) GeneratePortrait(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	updated, err := h.portfolio.GeneratePortrait(c.Request.Context(), chef.ID)
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chef": updated})
}

// GenerateTeaser renders the promo video; this can take minutes
func (h *Handler) GenerateTeaser(c *gin.Context) {
	chef, ok := h.myChef(c)
	if !ok {
		return
	}
	var req struct {
		Prompt      string `json:"prompt" binding:"required"`
		AspectRatio string `json:"aspectRatio"`
	}
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.portfolio.GenerateTeaser(c.Request.Context(), chef.ID, req.Prompt, req.AspectRatio)
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chef": updated})
}
