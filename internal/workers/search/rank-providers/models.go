// internal/workers/search/rank-providers/models.go
package rankproviders

import "neptune-workers/internal/models"

// Input.Providers may be omitted, in which case the fixture dataset is ranked.
// An explicit empty list ranks nothing.
type Input struct {
	Providers *[]models.ServiceProvider `json:"providers,omitempty"`
}

// WithProviders returns an Input that ranks exactly providers.
func WithProviders(providers []models.ServiceProvider) *Input {
	return &Input{Providers: &providers}
}

type Output struct {
	RankedProviders []models.ScoredProvider `json:"rankedProviders"`
}

const InputSchema = `{
	"type": "object",
	"properties": {
		"providers": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"rating": {"type": "number", "minimum": 0, "maximum": 5},
					"reviewCount": {"type": "integer", "minimum": 0},
					"yearsInBusiness": {"type": "integer", "minimum": 0}
				},
				"required": ["id", "name", "rating", "reviewCount"]
			}
		}
	}
}`
