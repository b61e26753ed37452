package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"private-chef-api/models"
)

// Actors allowed to move a booking along.
const (
	ActorChef  = "chef"
	ActorDiner = "diner"
	ActorAdmin = "admin"
)

var ErrInvalidTransition = errors.New("invalid transition")

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.BookingStatus `json:"from"`
	To    models.BookingStatus `json:"to"`
	Actor string               `json:"actor"`
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Chef accepts a request, then marks the dinner done
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: ActorChef},
	{From: models.StatusConfirmed, To: models.StatusCompleted, Actor: ActorChef},
	// Diner can back out until the event has happened
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorDiner},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorDiner},
	// Admin can do everything above, plus refunds
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: ActorAdmin},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorAdmin},
	{From: models.StatusConfirmed, To: models.StatusCompleted, Actor: ActorAdmin},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorAdmin},
	{From: models.StatusConfirmed, To: models.StatusRefunded, Actor: ActorAdmin},
	{From: models.StatusCompleted, To: models.StatusRefunded, Actor: ActorAdmin},
	{From: models.StatusCancelled, To: models.StatusRefunded, Actor: ActorAdmin},
}

type transitionKey struct {
	From  models.BookingStatus
	To    models.BookingStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ActorFor maps a user role to its booking actor.
func ActorFor(role models.UserRole) string {
	switch role {
	case models.RoleAdmin:
		return ActorAdmin
	case models.RoleChef:
		return ActorChef
	default:
		return ActorDiner
	}
}

// IsKnownStatus reports whether s is one of the booking statuses.
func IsKnownStatus(s models.BookingStatus) bool {
	switch s {
	case models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled, models.StatusRefunded:
		return true
	}
	return false
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.BookingStatus) []models.BookingStatus {
	var nexts []models.BookingStatus
	seen := map[models.BookingStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.BookingStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("%w: %s → %s is not allowed for actor '%s'. Valid transitions from %s are: %s",
		ErrInvalidTransition, from, to, actor, from, describeValidFrom(from))
}

func describeValidFrom(status models.BookingStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
