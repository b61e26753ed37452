package console

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"private-chef-api/ai"
	"private-chef-api/models"
	"private-chef-api/store"
)

type fakeIntel struct {
	err          error
	hubs         []string
	niches       []string
	budgetArgs   [2]float64
	forecastSeen int
	campaignCtx  string
}

func (f *fakeIntel) GenerateGrowthForecast(_ context.Context, b []models.Booking) (ai.Forecast, error) {
	f.forecastSeen = len(b)
	return ai.Forecast{ExecutiveSummary: "up"}, f.err
}

func (f *fakeIntel) GenerateTrafficInsights(_ context.Context, hub string) (ai.TrafficInsights, error) {
	f.hubs = append(f.hubs, hub)
	return ai.TrafficInsights{}, f.err
}

func (f *fakeIntel) GenerateMarketDiscovery(context.Context, string) (ai.MarketDiscovery, error) {
	return ai.MarketDiscovery{}, f.err
}

func (f *fakeIntel) GenerateBudgetStrategy(_ context.Context, revenue, margin float64) (ai.BudgetStrategy, error) {
	f.budgetArgs = [2]float64{revenue, margin}
	return ai.BudgetStrategy{}, f.err
}

func (f *fakeIntel) GenerateCommTemplate(context.Context, string, string) (ai.CommTemplate, error) {
	return ai.CommTemplate{}, f.err
}

func (f *fakeIntel) GenerateMarketingStrategy(_ context.Context, niche string) (string, error) {
	f.niches = append(f.niches, niche)
	return "plan", f.err
}

func (f *fakeIntel) GeneratePrintAssets(context.Context, string) (string, error) { return "print", f.err }

func (f *fakeIntel) GenerateTalentOutreach(_ context.Context, niche string) (ai.TalentOutreach, error) {
	f.niches = append(f.niches, niche)
	return ai.TalentOutreach{}, f.err
}

func (f *fakeIntel) VetChefApplication(context.Context, models.ChefRequest) (ai.Vetting, error) {
	return ai.Vetting{Score: 91, Recommendation: "Fast-track to interview"}, f.err
}

func (f *fakeIntel) GenerateSocialCampaign(_ context.Context, _, brief string) (ai.Campaign, error) {
	f.campaignCtx = brief
	return ai.Campaign{
		Content:  models.SocialContent{Instagram: "ig", Facebook: "fb", XTwitter: "x"},
		Hashtags: "#LuxePlate",
	}, f.err
}

func (f *fakeIntel) OptimizeHashtags(context.Context, string, string) (string, error) {
	return "#Mayfair #Omakase", f.err
}

var fixedNow = time.Date(2026, 3, 14, 18, 30, 5, 0, time.UTC)

func newConsole(t *testing.T, intel Intelligence) (*Console, *store.Store) {
	t.Helper()
	seed := store.MustLoadSeed()
	st := store.New(store.NewMemoryKV(), seed, store.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, st.CacheChefs(context.Background(), seed.Chefs()))
	return New(st, intel).WithClock(func() time.Time { return fixedNow }), st
}

func seedBookings(t *testing.T, st *store.Store, bookings ...models.Booking) {
	t.Helper()
	for _, b := range bookings {
		require.NoError(t, st.CreateBooking(context.Background(), b))
	}
}

func TestOverview_GTVAndCommission(t *testing.T) {
	c, st := newConsole(t, &fakeIntel{})
	seedBookings(t, st,
		models.Booking{ID: "b1", ChefID: "chef-fallback-1", TotalPrice: 510, Status: models.StatusConfirmed},
		models.Booking{ID: "b2", ChefID: "chef-fallback-1", TotalPrice: 490, Status: models.StatusPending},
		models.Booking{ID: "b3", ChefID: "chef-fallback-2", TotalPrice: 1000, Status: models.StatusCancelled},
	)

	o := c.Overview(context.Background())
	assert.Equal(t, 2000.0, o.GTV)
	assert.Equal(t, 15.0, o.CommissionRate)
	assert.Equal(t, 300.0, o.Commission)
	assert.Equal(t, 3, o.Bookings)
	assert.Equal(t, 1, o.BookingsByStatus["CONFIRMED"])
	assert.Equal(t, 1, o.BookingsByStatus["CANCELLED"])
	assert.Equal(t, 1, o.EventLeads)
	assert.Equal(t, 1, o.PendingRequests)
}

func TestChefDashboard_NetEarnings(t *testing.T) {
	c, st := newConsole(t, &fakeIntel{})
	seedBookings(t, st,
		models.Booking{ID: "b1", ChefID: "chef-fallback-1", TotalPrice: 510, Status: models.StatusConfirmed},
		models.Booking{ID: "b2", ChefID: "chef-fallback-1", TotalPrice: 100, Status: models.StatusConfirmed},
		models.Booking{ID: "b3", ChefID: "chef-fallback-1", TotalPrice: 900, Status: models.StatusPending},
		models.Booking{ID: "b4", ChefID: "chef-fallback-1", TotalPrice: 300, Status: models.StatusCompleted},
		models.Booking{ID: "b5", ChefID: "chef-fallback-2", TotalPrice: 700, Status: models.StatusConfirmed},
	)

	d := c.ChefDashboardFor(context.Background(), "chef-fallback-1")
	assert.Len(t, d.Bookings, 4)
	assert.Equal(t, 518.5, d.NetEarnings)
	assert.Equal(t, 1, d.Pending)
}

func TestRunReport_LogsStartAndCompletion(t *testing.T) {
	intel := &fakeIntel{}
	c, st := newConsole(t, intel)

	_, err := c.RunReport(context.Background(), ReportRequest{Kind: ReportTraffic})
	require.NoError(t, err)

	assert.Equal(t, []string{"London Luxury Hub"}, intel.hubs)
	logs := st.SystemLogs(context.Background())
	require.Len(t, logs, 2)
	assert.Equal(t, "[18:30:05] AI synthesis for [TRAFFIC] complete.", logs[0])
	assert.Equal(t, "[18:30:05] Admin initiating AI synthesis for [TRAFFIC]...", logs[1])
}

func TestRunReport_FailureLogsFriendlyError(t *testing.T) {
	intel := &fakeIntel{err: errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED")}
	c, st := newConsole(t, intel)

	_, err := c.RunReport(context.Background(), ReportRequest{Kind: ReportStrategy})
	require.Error(t, err)

	logs := st.SystemLogs(context.Background())
	require.Len(t, logs, 2)
	assert.Equal(t,
		"[18:30:05] AI ERROR [STRATEGY]: AI request volume has exceeded the current quota. This is a temporary limit.",
		logs[0])
	assert.Equal(t, []string{"Elite Culinary Expansion 2024"}, intel.niches)
}

func TestRunReport_Defaults(t *testing.T) {
	intel := &fakeIntel{}
	c, st := newConsole(t, intel)
	seedBookings(t, st, models.Booking{ID: "b1", TotalPrice: 1000, Status: models.StatusConfirmed})
	ctx := context.Background()

	_, err := c.RunReport(ctx, ReportRequest{Kind: ReportBudget})
	require.NoError(t, err)
	assert.Equal(t, [2]float64{1000, 400}, intel.budgetArgs)

	_, err = c.RunReport(ctx, ReportRequest{Kind: ReportTalentDiscovery})
	require.NoError(t, err)
	assert.Equal(t, "Freelance Elite Chef", intel.niches[len(intel.niches)-1])

	_, err = c.RunReport(ctx, ReportRequest{Kind: ReportForecast})
	require.NoError(t, err)
	assert.Equal(t, 1, intel.forecastSeen)

	_, err = c.RunReport(ctx, ReportRequest{Kind: "HOROSCOPE"})
	assert.ErrorIs(t, err, ErrUnknownReport)
}

func TestRunReport_VettingMovesPendingToVetting(t *testing.T) {
	c, st := newConsole(t, &fakeIntel{})
	ctx := context.Background()

	res, err := c.RunReport(ctx, ReportRequest{Kind: ReportVetting, RequestID: "req-1"})
	require.NoError(t, err)

	out := res.(VettingResult)
	assert.Equal(t, models.RequestVetting, out.Request.Status)
	assert.Equal(t, 91.0, out.Vetting.Score)

	stored, ok := st.ChefRequests.Get(ctx, "req-1")
	require.True(t, ok)
	assert.Equal(t, models.RequestVetting, stored.Status)
	assert.Equal(t, "Fast-track to interview", stored.AIRecommendation)

	_, err = c.RunReport(ctx, ReportRequest{Kind: ReportVetting, RequestID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateCampaign_SchedulesPost(t *testing.T) {
	intel := &fakeIntel{}
	c, st := newConsole(t, intel)
	ctx := context.Background()

	post, err := c.GenerateCampaign(ctx, CampaignRequest{Theme: "Winter truffles", TargetType: models.TargetChef, TargetID: "chef-fallback-1"})
	require.NoError(t, err)

	assert.Equal(t, "CHEF: Marco Rossi", intel.campaignCtx)
	assert.Equal(t, "Marco Rossi", post.TargetName)
	assert.Equal(t, models.PostScheduled, post.Status)
	assert.Equal(t, "2026-03-15T18:30:05Z", post.ScheduledAt)
	assert.Equal(t, []models.SocialPlatform{models.PlatformInstagram, models.PlatformFacebook, models.PlatformX}, post.Platforms)
	assert.Equal(t, "ig", post.Content.Instagram)

	published, err := c.PublishPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostPublished, published.Status)
	assert.Equal(t, "2026-03-14T18:30:05Z", published.PublishedAt)

	posts := st.SortedSocialPosts(ctx)
	require.Len(t, posts, 1)
	assert.Equal(t, models.PostPublished, posts[0].Status)
}

func TestGenerateCampaign_TargetNames(t *testing.T) {
	intel := &fakeIntel{}
	c, _ := newConsole(t, intel)
	ctx := context.Background()

	_, err := c.GenerateCampaign(ctx, CampaignRequest{Theme: "Spring"})
	require.NoError(t, err)
	assert.Equal(t, "PLATFORM: LuxePlate Official", intel.campaignCtx)

	_, err = c.GenerateCampaign(ctx, CampaignRequest{Theme: "Gala", TargetType: models.TargetEvent, TargetID: "unknown"})
	require.NoError(t, err)
	assert.Equal(t, "EVENT: Gala Event", intel.campaignCtx)

	_, err = c.GenerateCampaign(ctx, CampaignRequest{Theme: "Gala", TargetType: models.TargetEvent})
	assert.ErrorIs(t, err, ErrTargetRequired)

	_, err = c.GenerateCampaign(ctx, CampaignRequest{Theme: "  "})
	assert.ErrorIs(t, err, ErrThemeRequired)
}

func TestGenerateCampaign_FailureStoresNothing(t *testing.T) {
	c, st := newConsole(t, &fakeIntel{err: errors.New("boom")})
	_, err := c.GenerateCampaign(context.Background(), CampaignRequest{Theme: "x"})
	require.Error(t, err)
	assert.Empty(t, st.SocialPosts.GetAll(context.Background()))
}

func TestSubmitEventLead(t *testing.T) {
	c, st := newConsole(t, &fakeIntel{})
	ctx := context.Background()

	lead, err := c.SubmitEventLead(ctx, models.EventLead{ClientName: "Ada", Email: "ada@example.com", Guests: 20, Budget: 5000})
	require.NoError(t, err)
	assert.Equal(t, models.LeadNew, lead.Status)
	assert.Equal(t, []string{}, lead.SuggestedChefIDs)
	assert.Equal(t, "Any", lead.CuisinePreference)

	leads := st.EventLeads.GetAll(ctx)
	require.Len(t, leads, 2)
	assert.Equal(t, lead.ID, leads[0].ID, "newest lead first")
	assert.Equal(t, "[18:30:05] Inbound Event Lead created by Ada", st.SystemLogs(ctx)[0])
}

func TestSubmitChefApplication(t *testing.T) {
	c, st := newConsole(t, &fakeIntel{})
	ctx := context.Background()

	req, err := c.SubmitChefApplication(ctx, models.ChefRequest{Name: "Noor", Email: "noor@example.com", Niche: "Levantine"})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)

	settings := st.Settings(ctx)
	settings.AutoApproveChefs = true
	require.NoError(t, st.UpdateSettings(ctx, settings))

	req, err = c.SubmitChefApplication(ctx, models.ChefRequest{Name: "Ola"})
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, req.Status)
}

func TestCreatePromotion(t *testing.T) {
	c, _ := newConsole(t, &fakeIntel{})
	ctx := context.Background()

	p, err := c.CreatePromotion(ctx, models.Promotion{Code: " winter10 ", Value: 10})
	require.NoError(t, err)
	assert.Equal(t, "WINTER10", p.Code)
	assert.Equal(t, "PERCENT", p.DiscountType)
	assert.Equal(t, "ACTIVE", p.Status)

	_, err = c.CreatePromotion(ctx, models.Promotion{Code: "BIG", Value: 150})
	assert.ErrorIs(t, err, ErrInvalidInput)

	p, err = c.SetPromotionStatus(ctx, p.ID, "PAUSED")
	require.NoError(t, err)
	assert.Equal(t, "PAUSED", p.Status)
}

func TestRecruitmentStatus_Validates(t *testing.T) {
	c, st := newConsole(t, &fakeIntel{})
	ctx := context.Background()

	lead, err := c.AddRecruitmentLead(ctx, models.RecruitmentLead{Name: "Aiko Tanaka"})
	require.NoError(t, err)
	assert.Equal(t, models.RecruitmentIdentified, lead.Status)

	_, err = c.AddRecruitmentLead(ctx, models.RecruitmentLead{Name: "Bruno", Status: "MAYBE"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.SetRecruitmentStatus(ctx, lead.ID, "HIRED-ISH")
	assert.ErrorIs(t, err, ErrInvalidInput)
	stored, ok := st.RecruitmentLeads.Get(ctx, lead.ID)
	require.True(t, ok)
	assert.Equal(t, models.RecruitmentIdentified, stored.Status)

	lead, err = c.SetRecruitmentStatus(ctx, lead.ID, models.RecruitmentContacted)
	require.NoError(t, err)
	assert.Equal(t, models.RecruitmentContacted, lead.Status)
}

func TestUpdateEventLead_RejectsUnknownChef(t *testing.T) {
	c, _ := newConsole(t, &fakeIntel{})
	ctx := context.Background()

	_, err := c.UpdateEventLead(ctx, "lead-1", EventLeadUpdate{SuggestedChefIDs: []string{"nobody"}})
	assert.ErrorIs(t, err, ErrNotFound)

	status := models.LeadMatching
	lead, err := c.UpdateEventLead(ctx, "lead-1", EventLeadUpdate{Status: &status, SuggestedChefIDs: []string{"chef-fallback-1"}})
	require.NoError(t, err)
	assert.Equal(t, models.LeadMatching, lead.Status)
	assert.Equal(t, []string{"chef-fallback-1"}, lead.SuggestedChefIDs)
}

func TestUpdateSettings_Validates(t *testing.T) {
	c, st := newConsole(t, &fakeIntel{})
	ctx := context.Background()

	_, err := c.UpdateSettings(ctx, models.PlatformSettings{CommissionRate: 120})
	assert.ErrorIs(t, err, ErrInvalidInput)

	s, err := c.UpdateSettings(ctx, models.PlatformSettings{CommissionRate: 20})
	require.NoError(t, err)
	assert.Equal(t, "GBP", s.Currency)
	assert.Equal(t, 20.0, st.Settings(ctx).CommissionRate)
}
