// Package dataset holds the fixed provider records every search ranks.
package dataset

import (
	"fmt"

	"neptune-workers/internal/common/validation"
	"neptune-workers/internal/models"
)

// fixture is never mutated; Providers hands out copies.
var fixture = []models.ServiceProvider{
	{
		ID:                1,
		Name:              "Golden Gate Appliance Experts",
		Rating:            4.9,
		ReviewCount:       234,
		Price:             "$90-$180",
		Location:          "San Francisco, CA",
		Phone:             "(415) 555-0789",
		Description:       "Premium appliance repair service with lifetime warranty on parts.",
		Availability:      "Available now",
		Services:          []string{"Dishwasher repair", "Premium service", "Emergency calls"},
		Source:            "Yelp",
		ResponseTime:      "< 1 hour",
		InsuranceVerified: true,
		BackgroundChecked: true,
		YearsInBusiness:   25,
	},
	{
		ID:                2,
		Name:              "San Francisco Appliance Repair Pros",
		Rating:            4.5,
		ReviewCount:       89,
		Price:             "$75-$150",
		Location:          "San Francisco, CA",
		Phone:             "(415) 555-0123",
		Description:       "Expert dishwasher repair with same-day service. 15+ years experience.",
		Availability:      "Available today",
		Services:          []string{"Dishwasher repair", "Installation", "Maintenance"},
		Source:            "Angie's List",
		ResponseTime:      "< 3 hours",
		InsuranceVerified: true,
		BackgroundChecked: true,
		YearsInBusiness:   15,
	},
	{
		ID:                3,
		Name:              "Budget Appliance Repair",
		Rating:            4.1,
		ReviewCount:       45,
		Price:             "$50-$90",
		Location:          "San Francisco, CA",
		Phone:             "(415) 555-0654",
		Description:       "Affordable appliance repair service for budget-conscious customers.",
		Availability:      "Available in 2 days",
		Services:          []string{"Dishwasher repair", "Basic service"},
		Source:            "Thumbtack",
		ResponseTime:      "< 6 hours",
		InsuranceVerified: false,
		BackgroundChecked: true,
		YearsInBusiness:   5,
	},
}

// Providers returns a fresh copy of the fixture in dataset order.
func Providers() []models.ServiceProvider {
	out := make([]models.ServiceProvider, len(fixture))
	for i, p := range fixture {
		out[i] = p.Clone()
	}
	return out
}

// ByID looks up a single fixture record.
func ByID(id int) (models.ServiceProvider, bool) {
	for _, p := range fixture {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.ServiceProvider{}, false
}

// Len is the number of fixture records.
func Len() int {
	return len(fixture)
}

// Check reports the first fixture record whose fields fall outside their
// domains: duplicate id, rating outside [0, 5], negative counts or a
// malformed phone number.
func Check() error {
	return check(fixture)
}

func check(providers []models.ServiceProvider) error {
	seen := make(map[int]bool, len(providers))
	for _, p := range providers {
		if err := p.ValidateRanges(); err != nil {
			return err
		}
		switch {
		case seen[p.ID]:
			return fmt.Errorf("provider %d: duplicate id", p.ID)
		case !validation.ValidatePhone(p.Phone):
			return fmt.Errorf("provider %d: malformed phone %q", p.ID, p.Phone)
		}
		seen[p.ID] = true
	}
	return nil
}
