package httpapi

import (
	"net/http"

	calculateneptunescore "neptune-workers/internal/workers/search/calculate-neptune-score"
)

type LegendFactor struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Percent     float64 `json:"percent"`
}

// ScoreLegend explains the Neptune Score to end users.
type ScoreLegend struct {
	Title   string         `json:"title"`
	Summary string         `json:"summary"`
	Factors []LegendFactor `json:"factors"`
	Tiers   []ScoreTier    `json:"tiers"`
}

// Legend percentages are derived from the scoring weights, with rating and
// review volume shown as one factor.
func Legend() ScoreLegend {
	return ScoreLegend{
		Title:   "Neptune Score Explained",
		Summary: "Our proprietary Neptune Score rates service providers from 0-100 based on:",
		Factors: []LegendFactor{
			{
				Name:        "Rating & Reviews",
				Description: "Customer satisfaction & volume",
				Percent:     calculateneptunescore.RatingWeight + calculateneptunescore.ReviewsWeight,
			},
			{
				Name:        "Response Time",
				Description: "How quickly they respond",
				Percent:     calculateneptunescore.ResponseTimeWeight,
			},
			{
				Name:        "Verification",
				Description: "Insurance & background checks",
				Percent:     calculateneptunescore.InsuredPoints + calculateneptunescore.CheckedPoints,
			},
			{
				Name:        "Experience",
				Description: "Years in business",
				Percent:     calculateneptunescore.ExperienceWeight,
			},
			{
				Name:        "Availability",
				Description: "How soon they can help",
				Percent:     calculateneptunescore.AvailabilityWeight,
			},
		},
		Tiers: Tiers,
	}
}

type LegendHandler struct{}

func (LegendHandler) Get(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, Legend())
}
