package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"private-chef-api/metrics"
	"private-chef-api/models"
)

// ErrNotConfigured is returned by every call when no API key was provided.
var ErrNotConfigured = errors.New("AI model not configured: Requested entity was not found")

const (
	defaultConfirmation = "Your booking is confirmed."
	defaultHashtags     = "#LuxePlate #PrivateChef #FineDining"
)

// Gateway wraps a Model with per-use-case prompts, schemas, retries and
// typed results.
type Gateway struct {
	model    Model
	retry    Retrier
	fallback []models.Chef
	metrics  *metrics.Collector
}

type Option func(*Gateway)

func WithRetrier(r Retrier) Option { return func(g *Gateway) { g.retry = r } }

func WithMetrics(m *metrics.Collector) Option { return func(g *Gateway) { g.metrics = m } }

// NewGateway builds a gateway. A nil model yields a gateway on which every
// call fails with ErrNotConfigured, except chef search which falls back.
func NewGateway(model Model, fallback []models.Chef, opts ...Option) *Gateway {
	if model == nil {
		model = unconfigured{}
	}
	g := &Gateway{model: model, retry: DefaultRetrier(), fallback: fallback}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type unconfigured struct{}

func (unconfigured) Generate(context.Context, Request) (Response, error) {
	return Response{}, ErrNotConfigured
}

func (unconfigured) GenerateImage(context.Context, ImageRequest) (string, error) {
	return "", ErrNotConfigured
}

func (unconfigured) GenerateVideo(context.Context, string, string) (string, error) {
	return "", ErrNotConfigured
}

func (g *Gateway) observe(op string, started time.Time, err error) {
	g.metrics.ObserveAI(op, time.Since(started).Seconds(), err)
	if err != nil {
		logrus.WithError(err).WithField("operation", op).Error("AI Service Error")
	}
}

func (g *Gateway) text(ctx context.Context, op string, req Request) (Response, error) {
	started := time.Now()
	resp, err := Do(ctx, g.retry, func() (Response, error) { return g.model.Generate(ctx, req) })
	g.observe(op, started, err)
	return resp, err
}

// generateJSON asks for a schema-shaped answer and decodes it leniently:
// text that is not valid JSON leaves the zero value in place.
func generateJSON[T any](ctx context.Context, g *Gateway, op string, req Request) (T, []string, error) {
	var out T
	resp, err := g.text(ctx, op, req)
	if err != nil {
		return out, nil, err
	}
	if derr := json.Unmarshal([]byte(stripFences(resp.Text)), &out); derr != nil {
		logrus.WithError(derr).WithField("operation", op).Warn("AI returned malformed JSON, using defaults")
		var zero T
		out = zero
	}
	if n, ok := any(&out).(normalizer); ok {
		n.normalize()
	}
	return out, resp.Sources, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// SearchChefs never fails: any error, or an empty answer, yields the
// fallback roster.
func (g *Gateway) SearchChefs(ctx context.Context, location, cuisine string) []models.Chef {
	chefs, _, err := generateJSON[[]models.Chef](ctx, g, "search_chefs", Request{
		Model:  ModelFlash,
		Prompt: fmt.Sprintf("Generate 6 elite chefs in %s for %s. JSON format.", location, cuisine),
		Schema: chefListSchema,
	})
	if err != nil || len(chefs) == 0 {
		return g.Fallback()
	}
	for i := range chefs {
		sanitizeChef(&chefs[i], i)
	}
	return chefs
}

// Fallback returns a copy of the static roster.
func (g *Gateway) Fallback() []models.Chef {
	out := make([]models.Chef, len(g.fallback))
	copy(out, g.fallback)
	return out
}

func sanitizeChef(c *models.Chef, i int) {
	if c.ID == "" {
		c.ID = "chef-" + uuid.NewString()
	}
	if c.ImageURL == "" {
		c.ImageURL = ChefPortraits[i%len(ChefPortraits)]
	}
	c.Cuisines = orEmpty(c.Cuisines)
	c.Badges = orEmpty(c.Badges)
	c.Tags = orEmpty(c.Tags)
	c.Menus = orEmpty(c.Menus)
}

func (g *Gateway) GenerateMenuDescription(ctx context.Context, menuName string) (string, error) {
	resp, err := g.text(ctx, "menu_description", Request{
		Model:  ModelFlash,
		Prompt: fmt.Sprintf("Write a captivating 1-paragraph narrative for a menu titled %q. Focus on the sensory experience. High-end tone.", menuName),
	})
	return resp.Text, err
}

func (g *Gateway) GenerateDishDescription(ctx context.Context, dishName string, ingredients []string) (string, error) {
	resp, err := g.text(ctx, "dish_description", Request{
		Model: ModelFlash,
		Prompt: fmt.Sprintf("Write a captivating 1-2 sentence narrative for a gourmet dish titled %q containing %s. Focus on flavor profile.",
			dishName, strings.Join(ingredients, ", ")),
	})
	return resp.Text, err
}

func (g *Gateway) GenerateBookingConfirmation(ctx context.Context, chefName, menuName string, guests int, date, at string) (string, error) {
	resp, err := g.text(ctx, "booking_confirmation", Request{
		Model:  ModelFlash,
		Prompt: fmt.Sprintf("Write a sophisticated booking confirmation from Chef %s for %s on %s at %s for %d guests.", chefName, menuName, date, at, guests),
	})
	if err != nil {
		return "", err
	}
	return orDefault(resp.Text, defaultConfirmation), nil
}

// GenerateHighQualityImage returns a data URI.
func (g *Gateway) GenerateHighQualityImage(ctx context.Context, req ImageRequest) (string, error) {
	started := time.Now()
	img, err := Do(ctx, g.retry, func() (string, error) { return g.model.GenerateImage(ctx, req) })
	g.observe("image", started, err)
	return img, err
}

func (g *Gateway) GenerateMenuCoverImage(ctx context.Context, menuName, description string) (string, error) {
	return g.GenerateHighQualityImage(ctx, ImageRequest{
		Prompt: fmt.Sprintf("Ultra high-end cinematic wide shot representing the culinary collection '%s'. Atmosphere: %s. "+
			"Luxury interior or ingredients, Michelin aesthetic, soft lighting, 8k resolution.", menuName, description),
		AspectRatio: "16:9",
		ImageSize:   "1K",
	})
}

func (g *Gateway) GenerateDishImage(ctx context.Context, dish models.Dish) (string, error) {
	return g.GenerateHighQualityImage(ctx, ImageRequest{
		Prompt: fmt.Sprintf("Extreme high-end culinary photography: '%s'. Context: %s. Plating: %s. Elements: %s. Cinematic lighting, Michelin star aesthetic.",
			dish.Name, dish.Description, dish.PlatingStyle, strings.Join(dish.Ingredients, ", ")),
		AspectRatio: "1:1",
		ImageSize:   "1K",
	})
}

// GenerateDishPhotoFromNarrative shoots a dish from a freshly written narrative.
func (g *Gateway) GenerateDishPhotoFromNarrative(ctx context.Context, dish models.Dish, narrative string) (string, error) {
	return g.GenerateHighQualityImage(ctx, ImageRequest{
		Prompt:      fmt.Sprintf("Elite food photography: '%s'. Narrative: %s. Plating: %s. Cinematic lighting.", dish.Name, narrative, dish.PlatingStyle),
		AspectRatio: "1:1",
		ImageSize:   "1K",
	})
}

func (g *Gateway) GenerateChefPortrait(ctx context.Context, chefName string) (string, error) {
	return g.GenerateHighQualityImage(ctx, ImageRequest{
		Prompt:      fmt.Sprintf("Professional high-end headshot of Chef %s in a Michelin kitchen setting, cinematic lighting, 8k resolution.", chefName),
		AspectRatio: "1:1",
		ImageSize:   "1K",
	})
}

// GenerateChefTeaser runs a long video job and is not retried.
func (g *Gateway) GenerateChefTeaser(ctx context.Context, prompt, aspectRatio string) (string, error) {
	if aspectRatio != "9:16" {
		aspectRatio = "16:9"
	}
	started := time.Now()
	url, err := g.model.GenerateVideo(ctx, prompt, aspectRatio)
	g.observe("chef_teaser", started, err)
	return url, err
}

func (g *Gateway) GenerateSocialCampaign(ctx context.Context, theme, brief string) (Campaign, error) {
	out, _, err := generateJSON[Campaign](ctx, g, "social_campaign", Request{
		Model: ModelFlash,
		Prompt: fmt.Sprintf(`Generate a high-prestige multi-platform social media campaign.
Theme: %q
Context: %q
Platforms: Instagram (Visual Focus), Facebook (Narrative Focus), X (Concise, punchy, < 280 chars).
Include a visual prompt for AI image generation and a base set of luxury hashtags.
Output JSON format.`, theme, brief),
		Schema: campaignSchema,
	})
	return out, err
}

func (g *Gateway) OptimizeHashtags(ctx context.Context, content, region string) (string, error) {
	if region == "" {
		region = "Global Luxury"
	}
	content = truncate(content, 200)
	resp, err := g.text(ctx, "optimize_hashtags", Request{
		Model: ModelFlash,
		Prompt: fmt.Sprintf("Optimize hashtags for the following content in the %s luxury dining market: %q. "+
			"Search for trending keywords using Google Search. Return only a space-separated string of 15-20 optimized hashtags starting with #.", region, content),
		Search: true,
	})
	if err != nil {
		return "", err
	}
	return orDefault(resp.Text, defaultHashtags), nil
}

func (g *Gateway) VetChefApplication(ctx context.Context, req models.ChefRequest) (Vetting, error) {
	out, _, err := generateJSON[Vetting](ctx, g, "vet_application", Request{
		Model:  ModelFlash,
		Prompt: fmt.Sprintf("Analyze this chef application. Chef: %s, Niche: %s, Exp: %d years. JSON format.", req.Name, req.Niche, req.Experience),
		Schema: vettingSchema,
	})
	return out, err
}

// GenerateGrowthForecast looks at the first ten bookings only.
func (g *Gateway) GenerateGrowthForecast(ctx context.Context, bookings []models.Booking) (Forecast, error) {
	if len(bookings) > 10 {
		bookings = bookings[:10]
	}
	sample, err := json.Marshal(bookings)
	if err != nil {
		return Forecast{}, fmt.Errorf("encode bookings: %w", err)
	}
	out, _, err := generateJSON[Forecast](ctx, g, "growth_forecast", Request{
		Model: ModelPro,
		Prompt: fmt.Sprintf("Analyze these platform bookings and generate a 12-month growth forecast: %s. "+
			"Include executive summary, projections (month, estimatedRevenue, growthDrivers), and strategic pivots. JSON format.", sample),
		Schema: forecastSchema,
	})
	return out, err
}

func (g *Gateway) GenerateTrafficInsights(ctx context.Context, hub string) (TrafficInsights, error) {
	out, _, err := generateJSON[TrafficInsights](ctx, g, "traffic_insights", Request{
		Model:  ModelFlash,
		Prompt: fmt.Sprintf("Analyze luxury dining traffic insights and competitive landscape for the %s. Use web search for accuracy. JSON format.", hub),
		Schema: trafficSchema,
		Search: true,
	})
	return out, err
}

func (g *Gateway) GenerateMarketDiscovery(ctx context.Context, location string) (MarketDiscovery, error) {
	out, sources, err := generateJSON[MarketDiscovery](ctx, g, "market_discovery", Request{
		Model: ModelPro,
		Prompt: fmt.Sprintf(`Conduct a deep market discovery for the luxury private dining sector in %s.
Specifically analyze: market saturation, major competitors (benchmarking), emerging culinary trends, and expansion opportunities.
Search real-time data using Google Search. Output JSON format.`, location),
		Schema: marketDiscoverySchema,
		Search: true,
	})
	if err != nil {
		return out, err
	}
	out.GroundingSources = orEmpty(sources)
	return out, nil
}

func (g *Gateway) GenerateBudgetStrategy(ctx context.Context, revenue, targetMargin float64) (BudgetStrategy, error) {
	out, _, err := generateJSON[BudgetStrategy](ctx, g, "budget_strategy", Request{
		Model: ModelFlash,
		Prompt: fmt.Sprintf("Platform financial audit: Current Revenue is £%.2f, Target Margin is £%.2f. "+
			"Provide strategic margin analysis, cost optimization steps, and reinvestment advice. JSON format.", revenue, targetMargin),
		Schema: budgetSchema,
	})
	return out, err
}

// GenerateCommTemplate drafts an EMAIL or SMS template.
func (g *Gateway) GenerateCommTemplate(ctx context.Context, purpose, channel string) (CommTemplate, error) {
	out, _, err := generateJSON[CommTemplate](ctx, g, "comm_template", Request{
		Model:  ModelFlash,
		Prompt: fmt.Sprintf("Generate a high-prestige, luxury-aligned %s template for the following purpose: %s. JSON format.", channel, purpose),
		Schema: commTemplateSchema,
	})
	return out, err
}

func (g *Gateway) GenerateMarketingStrategy(ctx context.Context, niche string) (string, error) {
	resp, err := g.text(ctx, "marketing_strategy", Request{
		Model:  ModelFlash,
		Prompt: fmt.Sprintf("Synthesize a high-level marketing strategy for the elite culinary niche: %s. Focus on brand positioning and luxury acquisition channels.", niche),
	})
	return resp.Text, err
}

func (g *Gateway) GeneratePrintAssets(ctx context.Context, kind string) (string, error) {
	resp, err := g.text(ctx, "print_assets", Request{
		Model: ModelFlash,
		Prompt: fmt.Sprintf("Generate conceptual designs and content for physical luxury print assets of type: %s. "+
			"E.g., menu cards, invitation suites, or brand lookbooks.", kind),
	})
	return resp.Text, err
}

func (g *Gateway) GenerateTalentOutreach(ctx context.Context, niche string) (TalentOutreach, error) {
	out, _, err := generateJSON[TalentOutreach](ctx, g, "talent_outreach", Request{
		Model: ModelPro,
		Prompt: fmt.Sprintf("Develop a comprehensive talent outreach strategy for elite chefs specializing in %s. "+
			"Include value proposition, recommended recruitment channels, and tailored outreach templates for different platforms. JSON format.", niche),
		Schema: talentOutreachSchema,
	})
	return out, err
}
