package store

import (
	_ "embed"
	"fmt"
	"time"

	"private-chef-api/models"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// Seed holds the rows a fresh installation starts with.
type Seed struct {
	Settings      models.PlatformSettings `yaml:"settings"`
	FallbackChefs []models.Chef           `yaml:"fallbackChefs"`
	ChefRequests  []seedChefRequest       `yaml:"chefRequests"`
	EventLeads    []models.EventLead      `yaml:"eventLeads"`
}

type seedChefRequest struct {
	models.ChefRequest `yaml:",inline"`
	AppliedDaysAgo     int `yaml:"appliedDaysAgo"`
}

// LoadSeed parses the embedded seed document.
func LoadSeed() (*Seed, error) {
	return ParseSeed(seedYAML)
}

func ParseSeed(raw []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &s, nil
}

// MustLoadSeed is LoadSeed for the embedded document, which is known good.
func MustLoadSeed() *Seed {
	s, err := LoadSeed()
	if err != nil {
		panic(err)
	}
	return s
}

// Chefs returns a deep-enough copy of the fallback chefs so callers can mutate freely.
func (s *Seed) Chefs() []models.Chef {
	out := make([]models.Chef, len(s.FallbackChefs))
	for i, c := range s.FallbackChefs {
		c.Menus = append([]models.Menu(nil), c.Menus...)
		if c.Menus == nil {
			c.Menus = []models.Menu{}
		}
		out[i] = c
	}
	return out
}

func (s *Seed) chefRequests(now time.Time) []models.ChefRequest {
	out := make([]models.ChefRequest, 0, len(s.ChefRequests))
	for _, r := range s.ChefRequests {
		req := r.ChefRequest
		if req.AppliedAt == "" {
			req.AppliedAt = now.Add(-time.Duration(r.AppliedDaysAgo) * 24 * time.Hour).UTC().Format(time.RFC3339)
		}
		out = append(out, req)
	}
	return out
}

func (s *Seed) eventLeads(now time.Time) []models.EventLead {
	out := make([]models.EventLead, 0, len(s.EventLeads))
	for _, l := range s.EventLeads {
		if l.CreatedAt == "" {
			l.CreatedAt = now.UTC().Format(time.RFC3339)
		}
		if l.SuggestedChefIDs == nil {
			l.SuggestedChefIDs = []string{}
		}
		out = append(out, l)
	}
	return out
}
