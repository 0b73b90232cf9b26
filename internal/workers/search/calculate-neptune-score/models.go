// internal/workers/search/calculate-neptune-score/models.go
package calculateneptunescore

import "neptune-workers/internal/models"

type Input struct {
	Provider models.ServiceProvider `json:"provider"`
}

type Output struct {
	NeptuneScore float64        `json:"neptuneScore"`
	Breakdown    ScoreBreakdown `json:"breakdown"`
}

// ScoreBreakdown holds the un-rounded contribution of each factor.
type ScoreBreakdown struct {
	Rating       float64 `json:"rating"`
	Reviews      float64 `json:"reviews"`
	ResponseTime float64 `json:"responseTime"`
	Verification float64 `json:"verification"`
	Experience   float64 `json:"experience"`
	Availability float64 `json:"availability"`
}

// Total sums the six factors.
func (b ScoreBreakdown) Total() float64 {
	return b.Rating + b.Reviews + b.ResponseTime + b.Verification + b.Experience + b.Availability
}

const InputSchema = `{
	"type": "object",
	"properties": {
		"provider": {
			"type": "object",
			"properties": {
				"rating": {"type": "number", "minimum": 0, "maximum": 5},
				"reviewCount": {"type": "integer", "minimum": 0},
				"responseTime": {"type": "string"},
				"insuranceVerified": {"type": "boolean"},
				"backgroundChecked": {"type": "boolean"},
				"yearsInBusiness": {"type": "integer", "minimum": 0},
				"availability": {"type": "string"}
			},
			"required": ["rating", "reviewCount", "responseTime", "insuranceVerified",
				"backgroundChecked", "yearsInBusiness", "availability"]
		}
	},
	"required": ["provider"]
}`
