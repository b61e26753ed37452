package models

type SocialTargetType string

const (
	TargetPlatform SocialTargetType = "PLATFORM"
	TargetChef     SocialTargetType = "CHEF"
	TargetEvent    SocialTargetType = "EVENT"
)

type SocialPlatform string

const (
	PlatformInstagram SocialPlatform = "INSTAGRAM"
	PlatformFacebook  SocialPlatform = "FACEBOOK"
	PlatformX         SocialPlatform = "X_TWITTER"
)

type SocialPostStatus string

const (
	PostScheduled SocialPostStatus = "SCHEDULED"
	PostPublished SocialPostStatus = "PUBLISHED"
)

type SocialContent struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	XTwitter  string `json:"x_twitter"`
}

type SocialPost struct {
	ID           string           `json:"id"`
	TargetType   SocialTargetType `json:"targetType"`
	TargetID     string           `json:"targetId,omitempty"`
	TargetName   string           `json:"targetName"`
	Platforms    []SocialPlatform `json:"platforms"`
	Content      SocialContent    `json:"content"`
	Hashtags     string           `json:"hashtags"`
	VisualPrompt string           `json:"visualPrompt"`
	Status       SocialPostStatus `json:"status"`
	ScheduledAt  string           `json:"scheduledAt"`
	PublishedAt  string           `json:"publishedAt,omitempty"`
}

func (p SocialPost) GetID() string { return p.ID }

type Promotion struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	DiscountType string  `json:"discountType"` // PERCENT or FIXED
	Value        float64 `json:"value"`
	Expiry       string  `json:"expiry"`
	Status       string  `json:"status"` // ACTIVE, PAUSED, EXPIRED
	UsageCount   int     `json:"usageCount"`
}

func (p Promotion) GetID() string { return p.ID }

type GiftCard struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	Balance        float64 `json:"balance"`
	RecipientEmail string  `json:"recipientEmail"`
	Status         string  `json:"status"` // ACTIVE, REDEEMED, EXPIRED
}

func (g GiftCard) GetID() string { return g.ID }
