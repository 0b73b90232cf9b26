// internal/workers/search/calculate-neptune-score/score.go
package calculateneptunescore

import (
	"math"
	"strings"

	"neptune-workers/internal/models"
)

// Factor weights. They sum to 100.
const (
	RatingWeight       = 40.0
	ReviewsWeight      = 15.0
	ResponseTimeWeight = 15.0
	InsuredPoints      = 7.0
	CheckedPoints      = 8.0
	ExperienceWeight   = 10.0
	AvailabilityWeight = 5.0

	ReviewSaturation     = 200.0
	ExperienceSaturation = 25.0
)

// tier pairs a substring with the points it earns. Tiers are checked in
// order and the first match wins.
type tier struct {
	marker string
	points float64
}

var responseTimeTiers = []tier{
	{"< 1 hour", 15},
	{"< 2 hours", 12},
	{"< 3 hours", 8},
}

const responseTimeFallback = 5.0

var availabilityTiers = []tier{
	{"now", 5},
	{"today", 4},
	{"tomorrow", 2},
}

const availabilityFallback = 1.0

func tierPoints(value string, tiers []tier, fallback float64) float64 {
	for _, t := range tiers {
		if strings.Contains(value, t.marker) {
			return t.points
		}
	}
	return fallback
}

// Breakdown computes each factor's contribution for p without rounding.
func Breakdown(p models.ServiceProvider) ScoreBreakdown {
	b := ScoreBreakdown{
		Rating:       p.Rating / 5 * RatingWeight,
		Reviews:      math.Min(float64(p.ReviewCount)/ReviewSaturation, 1) * ReviewsWeight,
		ResponseTime: tierPoints(p.ResponseTime, responseTimeTiers, responseTimeFallback),
		Experience:   math.Min(float64(p.YearsInBusiness)/ExperienceSaturation, 1) * ExperienceWeight,
		Availability: tierPoints(p.Availability, availabilityTiers, availabilityFallback),
	}
	if p.InsuranceVerified {
		b.Verification += InsuredPoints
	}
	if p.BackgroundChecked {
		b.Verification += CheckedPoints
	}
	return b
}

// Score is the provider's Neptune Score rounded to one decimal place.
// Inputs are not clamped; a rating above 5 scores above 100.
func Score(p models.ServiceProvider) float64 {
	return Round1(Breakdown(p).Total())
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
