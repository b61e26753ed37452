package handlers

import (
	"net/http"

	"private-chef-api/middleware"
	"private-chef-api/models"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

// Register creates a new account and signs it in
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, session, err := h.identity.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	h.signedIn(c, http.StatusCreated, "Account created successfully", user, session)
}

// Login authenticates a user and returns a JWT bound to a fresh session
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, session, err := h.identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.signedIn(c, http.StatusOK, "Login successful", user, session)
}

// signedIn issues the token and tells the client where the user lands.
// Chef accounts get a starter profile on first sign-in.
func (h *Handler) signedIn(c *gin.Context, code int, message string, user models.User, session models.Session) {
	token, err := middleware.GenerateToken(user, session.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	resp := gin.H{
		"message": message,
		"token":   token,
		"user":    user,
	}
	if user.Role == models.RoleChef {
		chef, _, err := h.portfolio.EnsureChefProfile(c.Request.Context(), user)
		if err != nil {
			respondError(c, err)
			return
		}
		resp["chef"] = chef
	}
	resp["flow"] = h.checkout.Land(user.ID, user.Role)
	c.JSON(code, resp)
}

// Logout ends the session behind the token
func (h *Handler) Logout(c *gin.Context) {
	if err := h.identity.Logout(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// GetProfile returns the signed-in user
func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.GetUser(c)})
}

type UpdateProfileRequest struct {
	Name            string   `json:"name" binding:"required"`
	Email           string   `json:"email" binding:"required,email"`
	Avatar          string   `json:"avatar"`
	Phone           string   `json:"phone"`
	FavoriteChefIDs []string `json:"favoriteChefIds"`
}

// UpdateProfile saves profile edits for the signed-in user
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	current := middleware.GetUser(c)
	current.Name = req.Name
	current.Email = req.Email
	current.Avatar = req.Avatar
	current.Phone = req.Phone
	current.FavoriteChefIDs = req.FavoriteChefIDs

	user, err := h.identity.UpdateCurrentUser(c.Request.Context(), middleware.GetSessionID(c), current)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
