package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"private-chef-api/models"
)

var ErrInvalidInput = errors.New("invalid input")

// ── Chef applications ───────────────────────────────────────────────────────

// SetRequestStatus moves an application along the recruitment pipeline.
func (c *Console) SetRequestStatus(ctx context.Context, id string, status models.ChefRequestStatus) (models.ChefRequest, error) {
	switch status {
	case models.RequestPending, models.RequestVetting, models.RequestInterview,
		models.RequestApproved, models.RequestRejected:
	default:
		return models.ChefRequest{}, fmt.Errorf("%w: unknown request status %q", ErrInvalidInput, status)
	}
	req, ok := c.store.ChefRequests.Get(ctx, id)
	if !ok {
		return models.ChefRequest{}, fmt.Errorf("%w: chef request %s", ErrNotFound, id)
	}
	req.Status = status
	if _, err := c.store.ChefRequests.Update(ctx, req); err != nil {
		return models.ChefRequest{}, fmt.Errorf("update chef request: %w", err)
	}
	c.store.AddSystemLog(ctx, fmt.Sprintf("Chef application %s marked %s", req.Name, status))
	return req, nil
}

// ── Recruitment ─────────────────────────────────────────────────────────────

func validRecruitmentStatus(status models.RecruitmentStatus) error {
	switch status {
	case models.RecruitmentIdentified, models.RecruitmentContacted, models.RecruitmentVetting,
		models.RecruitmentSigned, models.RecruitmentRejected:
		return nil
	}
	return fmt.Errorf("%w: unknown recruitment status %q", ErrInvalidInput, status)
}

func (c *Console) AddRecruitmentLead(ctx context.Context, lead models.RecruitmentLead) (models.RecruitmentLead, error) {
	if strings.TrimSpace(lead.Name) == "" {
		return models.RecruitmentLead{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	lead.ID = uuid.NewString()
	if lead.Status == "" {
		lead.Status = models.RecruitmentIdentified
	}
	if err := validRecruitmentStatus(lead.Status); err != nil {
		return models.RecruitmentLead{}, err
	}
	lead.CreatedAt = c.now().UTC().Format(time.RFC3339)
	if err := c.store.RecruitmentLeads.Save(ctx, lead); err != nil {
		return models.RecruitmentLead{}, fmt.Errorf("save recruitment lead: %w", err)
	}
	return lead, nil
}

func (c *Console) SetRecruitmentStatus(ctx context.Context, id string, status models.RecruitmentStatus) (models.RecruitmentLead, error) {
	if err := validRecruitmentStatus(status); err != nil {
		return models.RecruitmentLead{}, err
	}
	lead, ok := c.store.RecruitmentLeads.Get(ctx, id)
	if !ok {
		return models.RecruitmentLead{}, fmt.Errorf("%w: recruitment lead %s", ErrNotFound, id)
	}
	lead.Status = status
	if _, err := c.store.RecruitmentLeads.Update(ctx, lead); err != nil {
		return models.RecruitmentLead{}, fmt.Errorf("update recruitment lead: %w", err)
	}
	return lead, nil
}

// ── Event leads ─────────────────────────────────────────────────────────────

// EventLeadUpdate carries the admin-editable parts of a lead. Nil fields
// are left alone.
type EventLeadUpdate struct {
	Status           *models.EventLeadStatus `json:"status"`
	SuggestedChefIDs []string                `json:"suggestedChefIds"`
	Notes            *string                 `json:"notes"`
}

func (c *Console) UpdateEventLead(ctx context.Context, id string, upd EventLeadUpdate) (models.EventLead, error) {
	lead, ok := c.store.EventLeads.Get(ctx, id)
	if !ok {
		return models.EventLead{}, fmt.Errorf("%w: event lead %s", ErrNotFound, id)
	}
	if upd.Status != nil {
		lead.Status = *upd.Status
	}
	if upd.SuggestedChefIDs != nil {
		for _, chefID := range upd.SuggestedChefIDs {
			if _, ok := c.store.ChefByID(ctx, chefID); !ok {
				return models.EventLead{}, fmt.Errorf("%w: chef %s", ErrNotFound, chefID)
			}
		}
		lead.SuggestedChefIDs = upd.SuggestedChefIDs
	}
	if upd.Notes != nil {
		lead.Notes = *upd.Notes
	}
	if _, err := c.store.EventLeads.Update(ctx, lead); err != nil {
		return models.EventLead{}, fmt.Errorf("update event lead: %w", err)
	}
	return lead, nil
}

// ── Promotions & gift cards ─────────────────────────────────────────────────

func (c *Console) CreatePromotion(ctx context.Context, p models.Promotion) (models.Promotion, error) {
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	if p.Code == "" || p.Value <= 0 {
		return models.Promotion{}, fmt.Errorf("%w: promotion needs a code and a positive value", ErrInvalidInput)
	}
	if p.DiscountType != "FIXED" {
		p.DiscountType = "PERCENT"
	}
	if p.DiscountType == "PERCENT" && p.Value > 100 {
		return models.Promotion{}, fmt.Errorf("%w: percentage above 100", ErrInvalidInput)
	}
	p.ID = uuid.NewString()
	p.Status = "ACTIVE"
	p.UsageCount = 0
	if err := c.store.Promotions.Save(ctx, p); err != nil {
		return models.Promotion{}, fmt.Errorf("save promotion: %w", err)
	}
	c.store.AddSystemLog(ctx, "Promotion "+p.Code+" created")
	return p, nil
}

func (c *Console) SetPromotionStatus(ctx context.Context, id, status string) (models.Promotion, error) {
	switch status {
	case "ACTIVE", "PAUSED", "EXPIRED":
	default:
		return models.Promotion{}, fmt.Errorf("%w: unknown promotion status %q", ErrInvalidInput, status)
	}
	p, ok := c.store.Promotions.Get(ctx, id)
	if !ok {
		return models.Promotion{}, fmt.Errorf("%w: promotion %s", ErrNotFound, id)
	}
	p.Status = status
	if _, err := c.store.Promotions.Update(ctx, p); err != nil {
		return models.Promotion{}, fmt.Errorf("update promotion: %w", err)
	}
	return p, nil
}

// IssueGiftCard mints a card with a random LUXE- code.
func (c *Console) IssueGiftCard(ctx context.Context, balance float64, recipient string) (models.GiftCard, error) {
	if balance <= 0 {
		return models.GiftCard{}, fmt.Errorf("%w: balance must be positive", ErrInvalidInput)
	}
	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	g := models.GiftCard{
		ID:             uuid.NewString(),
		Code:           "LUXE-" + code,
		Balance:        balance,
		RecipientEmail: recipient,
		Status:         "ACTIVE",
	}
	if err := c.store.GiftCards.Save(ctx, g); err != nil {
		return models.GiftCard{}, fmt.Errorf("save gift card: %w", err)
	}
	c.store.AddSystemLog(ctx, fmt.Sprintf("Gift card issued to %s", recipient))
	return g, nil
}

// ── Users & chefs ───────────────────────────────────────────────────────────

func (c *Console) SetUserRole(ctx context.Context, id string, role models.UserRole) (models.User, error) {
	switch role {
	case models.RoleDiner, models.RoleChef, models.RoleAdmin:
	default:
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	u, ok := c.store.Users.Get(ctx, id)
	if !ok {
		return models.User{}, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	u.Role = role
	if _, err := c.store.Users.Update(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	c.store.AddSystemLog(ctx, fmt.Sprintf("User %s role set to %s", u.Email, role))
	return u.Public(), nil
}

// ChefUpdate toggles the admin-controlled flags of a chef listing.
type ChefUpdate struct {
	Status           *models.ChefStatus `json:"status"`
	IsFeatured       *bool              `json:"isFeatured"`
	FeaturedCategory *string            `json:"featuredCategory"`
}

func (c *Console) UpdateChef(ctx context.Context, id string, upd ChefUpdate) (models.Chef, error) {
	chef, ok := c.store.ChefByID(ctx, id)
	if !ok {
		return models.Chef{}, fmt.Errorf("%w: chef %s", ErrNotFound, id)
	}
	if upd.Status != nil {
		if *upd.Status != models.ChefActive && *upd.Status != models.ChefInactive {
			return models.Chef{}, fmt.Errorf("%w: unknown chef status %q", ErrInvalidInput, *upd.Status)
		}
		chef.Status = *upd.Status
	}
	if upd.IsFeatured != nil {
		chef.IsFeatured = *upd.IsFeatured
	}
	if upd.FeaturedCategory != nil {
		chef.FeaturedCategory = *upd.FeaturedCategory
	}
	if err := c.store.SaveChef(ctx, chef); err != nil {
		return models.Chef{}, fmt.Errorf("save chef: %w", err)
	}
	return chef, nil
}

// UpdateSettings replaces the platform settings document as a whole.
func (c *Console) UpdateSettings(ctx context.Context, s models.PlatformSettings) (models.PlatformSettings, error) {
	if s.CommissionRate < 0 || s.CommissionRate > 100 {
		return models.PlatformSettings{}, fmt.Errorf("%w: commission rate must be between 0 and 100", ErrInvalidInput)
	}
	if s.Currency == "" {
		s.Currency = c.store.Settings(ctx).Currency
	}
	if err := c.store.UpdateSettings(ctx, s); err != nil {
		return models.PlatformSettings{}, err
	}
	c.store.AddSystemLog(ctx, "Platform settings updated")
	return s, nil
}
