package models

type SEOPageConfig struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Keywords    string `json:"keywords" yaml:"keywords"`
}

type SEOConfig struct {
	Home       SEOPageConfig `json:"home" yaml:"home"`
	Search     SEOPageConfig `json:"search" yaml:"search"`
	Portfolios SEOPageConfig `json:"portfolios" yaml:"portfolios"`
}

// PlatformSettings is a singleton, always read and written as a whole.
type PlatformSettings struct {
	CommissionRate   float64   `json:"commissionRate" yaml:"commissionRate"`
	Currency         string    `json:"currency" yaml:"currency"`
	MaintenanceMode  bool      `json:"maintenanceMode" yaml:"maintenanceMode"`
	SupportEmail     string    `json:"supportEmail" yaml:"supportEmail"`
	AutoApproveChefs bool      `json:"autoApproveChefs" yaml:"autoApproveChefs"`
	MinBookingValue  float64   `json:"minBookingValue" yaml:"minBookingValue"`
	SEOConfig        SEOConfig `json:"seoConfig" yaml:"seoConfig"`
}
