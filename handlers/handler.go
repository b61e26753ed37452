package handlers

import (
	"context"
	"errors"
	"net/http"

	"private-chef-api/ai"
	"private-chef-api/checkout"
	"private-chef-api/console"
	"private-chef-api/identity"
	"private-chef-api/models"
	"private-chef-api/payment"
	"private-chef-api/portfolio"
	"private-chef-api/statemachine"
	"private-chef-api/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ChefSearcher finds chefs for a location and cuisine. It always answers,
// falling back to the house list when discovery fails.
type ChefSearcher interface {
	SearchChefs(ctx context.Context, location, cuisine string) []models.Chef
}

// Handler serves the HTTP API on top of the domain services.
type Handler struct {
	store     *store.Store
	identity  *identity.Service
	checkout  *checkout.Service
	portfolio *portfolio.Service
	console   *console.Console
	search    ChefSearcher
}

func New(st *store.Store, id *identity.Service, co *checkout.Service, pf *portfolio.Service, cons *console.Console, search ChefSearcher) *Handler {
	return &Handler{
		store:     st,
		identity:  id,
		checkout:  co,
		portfolio: pf,
		console:   cons,
		search:    search,
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var perr *payment.Error
	switch {
	case errors.As(err, &perr):
		return http.StatusPaymentRequired
	case errors.Is(err, identity.ErrIdentityNotRecognized),
		errors.Is(err, identity.ErrInvalidCredentials),
		errors.Is(err, identity.ErrAdminPasswordRequired),
		errors.Is(err, identity.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, checkout.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, identity.ErrEmailRegistered),
		errors.Is(err, portfolio.ErrCourseExists):
		return http.StatusConflict
	case errors.Is(err, statemachine.ErrInvalidTransition),
		errors.Is(err, checkout.ErrInvalidAction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, checkout.ErrChefNotFound),
		errors.Is(err, checkout.ErrMenuNotFound),
		errors.Is(err, checkout.ErrBookingNotFound),
		errors.Is(err, portfolio.ErrChefNotFound),
		errors.Is(err, portfolio.ErrMenuNotFound),
		errors.Is(err, portfolio.ErrDishNotFound),
		errors.Is(err, portfolio.ErrCourseNotFound),
		errors.Is(err, console.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, identity.ErrInvalidRole),
		errors.Is(err, checkout.ErrNoChefSelected),
		errors.Is(err, checkout.ErrIncompleteBooking),
		errors.Is(err, checkout.ErrInvalidGuests),
		errors.Is(err, checkout.ErrUnknownStatus),
		errors.Is(err, portfolio.ErrEmptyCourse),
		errors.Is(err, portfolio.ErrDishUnnamed),
		errors.Is(err, console.ErrInvalidInput),
		errors.Is(err, console.ErrThemeRequired),
		errors.Is(err, console.ErrTargetRequired),
		errors.Is(err, console.ErrUnknownReport):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError writes a domain error. Unmapped errors are logged and hidden
// behind a generic message.
func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	switch {
	case code == http.StatusPaymentRequired:
		c.JSON(code, gin.H{"error": payment.UserMessage(err)})
	case code == http.StatusInternalServerError:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		c.JSON(code, gin.H{"error": "Something went wrong, please try again"})
	default:
		c.JSON(code, gin.H{"error": err.Error()})
	}
}

// respondAIError is respondError for endpoints that call the model: errors
// that are not domain errors come from the provider and are reported with
// their friendly text.
func respondAIError(c *gin.Context, err error) {
	if code := statusFor(err); code != http.StatusInternalServerError {
		respondError(c, err)
		return
	}
	logrus.WithError(err).WithField("path", c.FullPath()).Warn("AI request failed")
	c.JSON(http.StatusBadGateway, gin.H{"error": ai.FriendlyError(err)})
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
