package models

type ChefRequestStatus string

const (
	RequestPending   ChefRequestStatus = "PENDING"
	RequestVetting   ChefRequestStatus = "VETTING"
	RequestInterview ChefRequestStatus = "INTERVIEW"
	RequestApproved  ChefRequestStatus = "APPROVED"
	RequestRejected  ChefRequestStatus = "REJECTED"
)

// ChefRequest is an inbound application from a chef wanting to join
type ChefRequest struct {
	ID               string            `json:"id" yaml:"id"`
	Name             string            `json:"name" yaml:"name"`
	Email            string            `json:"email" yaml:"email"`
	Niche            string            `json:"niche" yaml:"niche"`
	Experience       int               `json:"experience" yaml:"experience"`
	PortfolioURL     string            `json:"portfolioUrl,omitempty" yaml:"portfolioUrl,omitempty"`
	Status           ChefRequestStatus `json:"status" yaml:"status"`
	AppliedAt        string            `json:"appliedAt" yaml:"appliedAt"`
	AIRecommendation string            `json:"aiRecommendation,omitempty" yaml:"aiRecommendation,omitempty"`
	Notes            string            `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (r ChefRequest) GetID() string { return r.ID }

type RecruitmentStatus string

const (
	RecruitmentIdentified RecruitmentStatus = "IDENTIFIED"
	RecruitmentContacted  RecruitmentStatus = "CONTACTED"
	RecruitmentVetting    RecruitmentStatus = "VETTING"
	RecruitmentSigned     RecruitmentStatus = "SIGNED"
	RecruitmentRejected   RecruitmentStatus = "REJECTED"
)

// RecruitmentLead is a chef the platform is courting
type RecruitmentLead struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Niche     string            `json:"niche"`
	Status    RecruitmentStatus `json:"status"`
	Source    string            `json:"source"`
	Notes     string            `json:"notes"`
	CreatedAt string            `json:"createdAt"`
}

func (l RecruitmentLead) GetID() string { return l.ID }

type EventLeadStatus string

const (
	LeadNew         EventLeadStatus = "NEW"
	LeadMatching    EventLeadStatus = "MATCHING"
	LeadSentToChefs EventLeadStatus = "SENT_TO_CHEFS"
	LeadBooked      EventLeadStatus = "BOOKED"
	LeadExpired     EventLeadStatus = "EXPIRED"
)

// EventLead is a bespoke event inquiry from a prospective client
type EventLead struct {
	ID                string          `json:"id" yaml:"id"`
	ClientName        string          `json:"clientName" yaml:"clientName"`
	Email             string          `json:"email" yaml:"email"`
	Location          string          `json:"location" yaml:"location"`
	Date              string          `json:"date" yaml:"date"`
	Guests            int             `json:"guests" yaml:"guests"`
	Budget            float64         `json:"budget" yaml:"budget"`
	CuisinePreference string          `json:"cuisinePreference" yaml:"cuisinePreference"`
	Notes             string          `json:"notes" yaml:"notes"`
	Status            EventLeadStatus `json:"status" yaml:"status"`
	SuggestedChefIDs  []string        `json:"suggestedChefIds" yaml:"suggestedChefIds"`
	CreatedAt         string          `json:"createdAt" yaml:"createdAt"`
}

func (l EventLead) GetID() string { return l.ID }
