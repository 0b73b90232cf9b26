// internal/models/provider.go
package models

import "fmt"

// ServiceProvider is a local service business as listed by an upstream source.
type ServiceProvider struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	Rating            float64  `json:"rating"`
	ReviewCount       int      `json:"reviewCount"`
	Price             string   `json:"price"`
	Location          string   `json:"location"`
	Phone             string   `json:"phone"`
	Description       string   `json:"description"`
	Availability      string   `json:"availability"`
	Services          []string `json:"services"`
	Source            string   `json:"source"`
	ResponseTime      string   `json:"responseTime"`
	InsuranceVerified bool     `json:"insuranceVerified"`
	BackgroundChecked bool     `json:"backgroundChecked"`
	YearsInBusiness   int      `json:"yearsInBusiness"`
}

// Clone returns a copy that shares no slices with p.
func (p ServiceProvider) Clone() ServiceProvider {
	if p.Services != nil {
		p.Services = append([]string(nil), p.Services...)
	}
	return p
}

// ValidateRanges checks the numeric fields the Neptune Score reads:
// rating in [0, 5], non-negative review count and years in business.
func (p ServiceProvider) ValidateRanges() error {
	switch {
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("provider %d: rating %.1f outside [0, 5]", p.ID, p.Rating)
	case p.ReviewCount < 0:
		return fmt.Errorf("provider %d: negative reviewCount", p.ID)
	case p.YearsInBusiness < 0:
		return fmt.Errorf("provider %d: negative yearsInBusiness", p.ID)
	}
	return nil
}

// ScoredProvider is a ServiceProvider with its computed Neptune Score.
// Only the ranking code constructs it, so holding one means the score is set.
type ScoredProvider struct {
	ServiceProvider
	NeptuneScore float64 `json:"neptuneScore"`
}

// SearchResponse is the envelope returned for one query.
type SearchResponse struct {
	Query        string           `json:"query"`
	LLMResponse  string           `json:"llmResponse"`
	Providers    []ScoredProvider `json:"providers"`
	TotalResults int              `json:"totalResults"`
	// SearchTime is Unix milliseconds at which the response was produced.
	SearchTime int64 `json:"searchTime"`
}
