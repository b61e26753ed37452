// Package console backs the admin back-office: platform overview, AI
// report triggers, the social hub and lead pipelines.
package console

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"private-chef-api/ai"
	"private-chef-api/models"
	"private-chef-api/store"
)

// ChefShare is the part of a booking the chef keeps.
const ChefShare = 0.85

var (
	ErrUnknownReport  = errors.New("unknown report")
	ErrNotFound       = errors.New("record not found")
	ErrThemeRequired  = errors.New("strategic theme required")
	ErrTargetRequired = errors.New("target id required for chef and event campaigns")
)

// Intelligence is the slice of the AI gateway the console drives.
type Intelligence interface {
	GenerateGrowthForecast(ctx context.Context, bookings []models.Booking) (ai.Forecast, error)
	GenerateTrafficInsights(ctx context.Context, hub string) (ai.TrafficInsights, error)
	GenerateMarketDiscovery(ctx context.Context, location string) (ai.MarketDiscovery, error)
	GenerateBudgetStrategy(ctx context.Context, revenue, targetMargin float64) (ai.BudgetStrategy, error)
	GenerateCommTemplate(ctx context.Context, purpose, channel string) (ai.CommTemplate, error)
	GenerateMarketingStrategy(ctx context.Context, niche string) (string, error)
	GeneratePrintAssets(ctx context.Context, kind string) (string, error)
	GenerateTalentOutreach(ctx context.Context, niche string) (ai.TalentOutreach, error)
	VetChefApplication(ctx context.Context, req models.ChefRequest) (ai.Vetting, error)
	GenerateSocialCampaign(ctx context.Context, theme, brief string) (ai.Campaign, error)
	OptimizeHashtags(ctx context.Context, content, region string) (string, error)
}

type Console struct {
	store *store.Store
	ai    Intelligence
	now   func() time.Time
}

func New(st *store.Store, intel Intelligence) *Console {
	return &Console{store: st, ai: intel, now: time.Now}
}

// WithClock is used by tests.
func (c *Console) WithClock(now func() time.Time) *Console {
	c.now = now
	return c
}

type Overview struct {
	GTV              float64        `json:"gtv"`
	CommissionRate   float64        `json:"commissionRate"`
	Commission       float64        `json:"commission"`
	Currency         string         `json:"currency"`
	BookingsByStatus map[string]int `json:"bookingsByStatus"`
	Bookings         int            `json:"bookings"`
	Users            int            `json:"users"`
	Chefs            int            `json:"chefs"`
	EventLeads       int            `json:"eventLeads"`
	PendingRequests  int            `json:"pendingRequests"`
}

// Overview sums the gross transaction value of every booking regardless
// of status.
func (c *Console) Overview(ctx context.Context) Overview {
	bookings := c.store.Bookings.GetAll(ctx)
	settings := c.store.Settings(ctx)

	o := Overview{
		CommissionRate:   settings.CommissionRate,
		Currency:         settings.Currency,
		BookingsByStatus: map[string]int{},
		Bookings:         len(bookings),
		Users:            len(c.store.Users.GetAll(ctx)),
		Chefs:            len(c.store.CachedChefs(ctx)),
		EventLeads:       len(c.store.EventLeads.GetAll(ctx)),
	}
	for _, b := range bookings {
		o.GTV += b.TotalPrice
		o.BookingsByStatus[string(b.Status)]++
	}
	o.Commission = round2(o.GTV * settings.CommissionRate / 100)
	for _, r := range c.store.ChefRequests.GetAll(ctx) {
		if r.Status == models.RequestPending {
			o.PendingRequests++
		}
	}
	return o
}

type ChefDashboard struct {
	Bookings    []models.Booking `json:"bookings"`
	NetEarnings float64          `json:"netEarnings"`
	Pending     int              `json:"pending"`
}

// ChefDashboardFor reports a chef's bookings and net earnings from
// CONFIRMED bookings after the platform share.
func (c *Console) ChefDashboardFor(ctx context.Context, chefID string) ChefDashboard {
	d := ChefDashboard{Bookings: c.store.BookingsByChefID(ctx, chefID)}
	var confirmed float64
	for _, b := range d.Bookings {
		switch b.Status {
		case models.StatusConfirmed:
			confirmed += b.TotalPrice
		case models.StatusPending:
			d.Pending++
		}
	}
	d.NetEarnings = round2(confirmed * ChefShare)
	return d
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// SubmitEventLead records an inbound bespoke event inquiry.
func (c *Console) SubmitEventLead(ctx context.Context, lead models.EventLead) (models.EventLead, error) {
	lead.ID = uuid.NewString()
	lead.Status = models.LeadNew
	lead.SuggestedChefIDs = []string{}
	lead.CreatedAt = c.now().UTC().Format(time.RFC3339)
	if lead.CuisinePreference == "" {
		lead.CuisinePreference = "Any"
	}
	if err := c.store.EventLeads.Save(ctx, lead); err != nil {
		return models.EventLead{}, fmt.Errorf("save event lead: %w", err)
	}
	c.store.AddSystemLog(ctx, "Inbound Event Lead created by "+lead.ClientName)
	return lead, nil
}

// SubmitChefApplication queues a chef's request to join. When the platform
// auto-approves chefs the request lands already APPROVED.
func (c *Console) SubmitChefApplication(ctx context.Context, req models.ChefRequest) (models.ChefRequest, error) {
	req.ID = uuid.NewString()
	req.Status = models.RequestPending
	if c.store.Settings(ctx).AutoApproveChefs {
		req.Status = models.RequestApproved
	}
	req.AppliedAt = c.now().UTC().Format(time.RFC3339)
	req.AIRecommendation = ""
	if err := c.store.ChefRequests.Save(ctx, req); err != nil {
		return models.ChefRequest{}, fmt.Errorf("save chef request: %w", err)
	}
	c.store.AddSystemLog(ctx, "Chef application received from "+req.Name)
	return req, nil
}
