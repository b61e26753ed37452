package ai

import "private-chef-api/models"

// Campaign is a multi-platform social post draft.
type Campaign struct {
	Content      models.SocialContent `json:"content"`
	Hashtags     string               `json:"hashtags"`
	VisualPrompt string               `json:"visualPrompt"`
}

type Vetting struct {
	Score           float64  `json:"score"`
	Recommendation  string   `json:"recommendation"`
	SuggestedBadges []string `json:"suggestedBadges"`
	RiskFactors     []string `json:"riskFactors"`
}

func (v *Vetting) normalize() {
	v.SuggestedBadges = orEmpty(v.SuggestedBadges)
	v.RiskFactors = orEmpty(v.RiskFactors)
}

type Projection struct {
	Month            string  `json:"month"`
	EstimatedRevenue float64 `json:"estimatedRevenue"`
	GrowthDrivers    string  `json:"growthDrivers"`
}

type Forecast struct {
	ExecutiveSummary string       `json:"executiveSummary"`
	Projections      []Projection `json:"projections"`
	StrategicPivots  []string     `json:"strategicPivots"`
}

func (f *Forecast) normalize() {
	f.Projections = orEmpty(f.Projections)
	f.StrategicPivots = orEmpty(f.StrategicPivots)
}

type TrafficInsights struct {
	CompetitiveLandscape string   `json:"competitiveLandscape"`
	TrafficSources       []string `json:"trafficSources"`
}

func (t *TrafficInsights) normalize() { t.TrafficSources = orEmpty(t.TrafficSources) }

type CompetitorBenchmark struct {
	Name        string `json:"name"`
	PricePoint  string `json:"pricePoint"`
	KeyStrength string `json:"keyStrength"`
	MarketShare string `json:"marketShare"`
}

type Trend struct {
	Trend       string `json:"trend"`
	Description string `json:"description"`
	Momentum    string `json:"momentum"`
}

type ExpansionOpportunity struct {
	Location                  string `json:"location"`
	Reasoning                 string `json:"reasoning"`
	EstimatedRevenuePotential string `json:"estimatedRevenuePotential"`
}

// MarketDiscovery is a web-grounded market report. GroundingSources lists
// the pages the model cited.
type MarketDiscovery struct {
	ExecutiveSummary       string                 `json:"executiveSummary"`
	SaturationIndex        float64                `json:"saturationIndex"`
	ViabilityScore         float64                `json:"viabilityScore"`
	CompetitorBenchmarks   []CompetitorBenchmark  `json:"competitorBenchmarks"`
	EmergingTrends         []Trend                `json:"emergingTrends"`
	ExpansionOpportunities []ExpansionOpportunity `json:"expansionOpportunities"`
	GroundingSources       []string               `json:"groundingSources"`
}

func (m *MarketDiscovery) normalize() {
	m.CompetitorBenchmarks = orEmpty(m.CompetitorBenchmarks)
	m.EmergingTrends = orEmpty(m.EmergingTrends)
	m.ExpansionOpportunities = orEmpty(m.ExpansionOpportunities)
	m.GroundingSources = orEmpty(m.GroundingSources)
}

type BudgetStrategy struct {
	MarginAnalysis        string   `json:"marginAnalysis"`
	CostOptimizationSteps []string `json:"costOptimizationSteps"`
	ReinvestmentAdvice    string   `json:"reinvestmentAdvice"`
}

func (b *BudgetStrategy) normalize() { b.CostOptimizationSteps = orEmpty(b.CostOptimizationSteps) }

type CommTemplate struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type OutreachTemplate struct {
	Channel string `json:"channel"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type TalentOutreach struct {
	ValueProposition    string             `json:"valueProposition"`
	RecruitmentChannels []string           `json:"recruitmentChannels"`
	OutreachTemplates   []OutreachTemplate `json:"outreachTemplates"`
}

func (t *TalentOutreach) normalize() {
	t.RecruitmentChannels = orEmpty(t.RecruitmentChannels)
	t.OutreachTemplates = orEmpty(t.OutreachTemplates)
}

type normalizer interface{ normalize() }

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
