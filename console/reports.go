package console

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"private-chef-api/ai"
	"private-chef-api/models"
)

type ReportKind string

const (
	ReportForecast        ReportKind = "FORECAST"
	ReportTraffic         ReportKind = "TRAFFIC"
	ReportMarket          ReportKind = "MARKET"
	ReportBudget          ReportKind = "BUDGET"
	ReportStrategy        ReportKind = "STRATEGY"
	ReportPrint           ReportKind = "PRINT"
	ReportTalentOutreach  ReportKind = "TALENT_OUTREACH"
	ReportTalentDiscovery ReportKind = "TALENT_DISCOVERY"
	ReportCommTemplate    ReportKind = "COMM_TEMPLATE"
	ReportEmail           ReportKind = "EMAIL"
	ReportSMS             ReportKind = "SMS"
	ReportVetting         ReportKind = "VETTING"
)

// ReportRequest carries the optional inputs of a report. Empty fields take
// the back-office defaults.
type ReportRequest struct {
	Kind      ReportKind `json:"kind" binding:"required"`
	Hub       string     `json:"hub"`
	Location  string     `json:"location"`
	Niche     string     `json:"niche"`
	Purpose   string     `json:"purpose"`
	Channel   string     `json:"channel"`
	AssetType string     `json:"assetType"`
	RequestID string     `json:"requestId"`
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Trigger runs one AI job and records its start and outcome in the system log.
func (c *Console) Trigger(ctx context.Context, id string, fn func(context.Context) (any, error)) (any, error) {
	c.store.AddSystemLog(ctx, fmt.Sprintf("Admin initiating AI synthesis for [%s]...", id))
	res, err := fn(ctx)
	if err != nil {
		friendly := ai.FriendlyError(err)
		c.store.AddSystemLog(ctx, fmt.Sprintf("AI ERROR [%s]: %s", id, friendly))
		logrus.WithError(err).WithField("report", id).Warn("admin AI synthesis failed")
		return nil, err
	}
	c.store.AddSystemLog(ctx, fmt.Sprintf("AI synthesis for [%s] complete.", id))
	return res, nil
}

// RunReport dispatches a back-office report to the AI gateway.
func (c *Console) RunReport(ctx context.Context, req ReportRequest) (any, error) {
	var fn func(context.Context) (any, error)

	switch req.Kind {
	case ReportForecast:
		fn = func(ctx context.Context) (any, error) {
			return c.ai.GenerateGrowthForecast(ctx, c.store.Bookings.GetAll(ctx))
		}
	case ReportTraffic:
		fn = func(ctx context.Context) (any, error) {
			return c.ai.GenerateTrafficInsights(ctx, orDefault(req.Hub, "London Luxury Hub"))
		}
	case ReportMarket:
		fn = func(ctx context.Context) (any, error) {
			return c.ai.GenerateMarketDiscovery(ctx, orDefault(req.Location, "London"))
		}
	case ReportBudget:
		fn = func(ctx context.Context) (any, error) {
			gtv := c.Overview(ctx).GTV
			return c.ai.GenerateBudgetStrategy(ctx, gtv, gtv*0.4)
		}
	case ReportStrategy:
		fn = func(ctx context.Context) (any, error) {
			return c.ai.GenerateMarketingStrategy(ctx, orDefault(req.Niche, "Elite Culinary Expansion 2024"))
		}
	case ReportPrint:
		fn = func(ctx context.Context) (any, error) {
			return c.ai.GeneratePrintAssets(ctx, orDefault(req.AssetType, "Menu Cards"))
		}
	case ReportTalentOutreach:
		fn = func(ctx context.Context) (any, error) {
			return c.ai.GenerateTalentOutreach(ctx, orDefault(req.Niche, "Omakase Master"))
		}
	case ReportTalentDiscovery:
		fn = func(ctx context.Context) (any, error) {
			return c.ai.GenerateTalentOutreach(ctx, orDefault(req.Niche, "Freelance Elite Chef"))
		}
	case ReportCommTemplate, ReportEmail, ReportSMS:
		channel := req.Channel
		if req.Kind != ReportCommTemplate {
			channel = string(req.Kind)
		}
		fn = func(ctx context.Context) (any, error) {
			return c.ai.GenerateCommTemplate(ctx, orDefault(req.Purpose, "Partner Outreach"), orDefault(channel, "EMAIL"))
		}
	case ReportVetting:
		fn = func(ctx context.Context) (any, error) {
			return c.vet(ctx, req.RequestID)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownReport, req.Kind)
	}

	return c.Trigger(ctx, string(req.Kind), fn)
}

// VettingResult pairs the updated application with the model's assessment.
type VettingResult struct {
	Request models.ChefRequest `json:"request"`
	Vetting ai.Vetting         `json:"vetting"`
}

// vet scores an application and keeps the recommendation on it. A PENDING
// application moves to VETTING.
func (c *Console) vet(ctx context.Context, requestID string) (VettingResult, error) {
	req, ok := c.store.ChefRequests.Get(ctx, requestID)
	if !ok {
		return VettingResult{}, fmt.Errorf("%w: chef request %s", ErrNotFound, requestID)
	}
	v, err := c.ai.VetChefApplication(ctx, req)
	if err != nil {
		return VettingResult{}, err
	}
	req.AIRecommendation = v.Recommendation
	if req.Status == models.RequestPending {
		req.Status = models.RequestVetting
	}
	if err := c.store.ChefRequests.Save(ctx, req); err != nil {
		return VettingResult{}, fmt.Errorf("save chef request: %w", err)
	}
	return VettingResult{Request: req, Vetting: v}, nil
}
