package ai

import "google.golang.org/genai"

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
func num() *genai.Schema { return &genai.Schema{Type: genai.TypeNumber} }
func integer() *genai.Schema { return &genai.Schema{Type: genai.TypeInteger} }

func arr(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}

func obj(props map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props}
}

var chefListSchema = arr(obj(map[string]*genai.Schema{
	"id":              str(),
	"name":            str(),
	"location":        str(),
	"bio":             str(),
	"rating":          num(),
	"reviewsCount":    integer(),
	"cuisines":        arr(str()),
	"imageUrl":        str(),
	"minPrice":        num(),
	"minSpend":        num(),
	"yearsExperience": integer(),
	"eventsCount":     integer(),
	"badges":          arr(str()),
	"tags":            arr(str()),
}))

var campaignSchema = obj(map[string]*genai.Schema{
	"content": obj(map[string]*genai.Schema{
		"instagram": str(),
		"facebook":  str(),
		"x_twitter": str(),
	}),
	"hashtags":     str(),
	"visualPrompt": str(),
})

var vettingSchema = obj(map[string]*genai.Schema{
	"score":           num(),
	"recommendation":  str(),
	"suggestedBadges": arr(str()),
	"riskFactors":     arr(str()),
})

var forecastSchema = obj(map[string]*genai.Schema{
	"executiveSummary": str(),
	"projections": arr(obj(map[string]*genai.Schema{
		"month":            str(),
		"estimatedRevenue": num(),
		"growthDrivers":    str(),
	})),
	"strategicPivots": arr(str()),
})

var trafficSchema = obj(map[string]*genai.Schema{
	"competitiveLandscape": str(),
	"trafficSources":       arr(str()),
})

var marketDiscoverySchema = obj(map[string]*genai.Schema{
	"executiveSummary": str(),
	"saturationIndex":  num(),
	"viabilityScore":   num(),
	"competitorBenchmarks": arr(obj(map[string]*genai.Schema{
		"name":        str(),
		"pricePoint":  str(),
		"keyStrength": str(),
		"marketShare": str(),
	})),
	"emergingTrends": arr(obj(map[string]*genai.Schema{
		"trend":       str(),
		"description": str(),
		"momentum":    str(),
	})),
	"expansionOpportunities": arr(obj(map[string]*genai.Schema{
		"location":                  str(),
		"reasoning":                 str(),
		"estimatedRevenuePotential": str(),
	})),
})

var budgetSchema = obj(map[string]*genai.Schema{
	"marginAnalysis":        str(),
	"costOptimizationSteps": arr(str()),
	"reinvestmentAdvice":    str(),
})

var commTemplateSchema = obj(map[string]*genai.Schema{
	"subject": str(),
	"body":    str(),
})

var talentOutreachSchema = obj(map[string]*genai.Schema{
	"valueProposition":    str(),
	"recruitmentChannels": arr(str()),
	"outreachTemplates": arr(obj(map[string]*genai.Schema{
		"channel": str(),
		"subject": str(),
		"message": str(),
	})),
})
