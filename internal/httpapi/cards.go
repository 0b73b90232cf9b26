package httpapi

import (
	"strings"

	"neptune-workers/internal/models"
)

// ScoreTier buckets a Neptune Score for display.
type ScoreTier struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Min   float64 `json:"min"`
}

// Tiers are ordered from best to worst; the first whose Min is reached applies.
var Tiers = []ScoreTier{
	{Name: "excellent", Color: "green", Min: 85},
	{Name: "great", Color: "blue", Min: 70},
	{Name: "good", Color: "yellow", Min: 55},
	{Name: "fair", Color: "orange", Min: 0},
}

func Tier(score float64) ScoreTier {
	for _, t := range Tiers[:len(Tiers)-1] {
		if score >= t.Min {
			return t
		}
	}
	return Tiers[len(Tiers)-1]
}

// FormatPhone strips everything but digits and groups the first ten as
// (XXX) XXX-XXXX. Extra digits trail the last group; fewer than ten are
// returned bare.
func FormatPhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if len(digits) < 10 {
		return digits
	}
	return "(" + digits[0:3] + ") " + digits[3:6] + "-" + digits[6:]
}

// ProviderCard is the display view of one ranked provider.
type ProviderCard struct {
	Rank           int       `json:"rank"`
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	NeptuneScore   float64   `json:"neptuneScore"`
	Tier           ScoreTier `json:"tier"`
	FormattedPhone string    `json:"formattedPhone"`
	Verified       []string  `json:"verified"`
}

func Cards(providers []models.ScoredProvider) []ProviderCard {
	cards := make([]ProviderCard, len(providers))
	for i, p := range providers {
		verified := []string{}
		if p.InsuranceVerified {
			verified = append(verified, "insured")
		}
		if p.BackgroundChecked {
			verified = append(verified, "background checked")
		}
		cards[i] = ProviderCard{
			Rank:           i + 1,
			ID:             p.ID,
			Name:           p.Name,
			NeptuneScore:   p.NeptuneScore,
			Tier:           Tier(p.NeptuneScore),
			FormattedPhone: FormatPhone(p.Phone),
			Verified:       verified,
		}
	}
	return cards
}
