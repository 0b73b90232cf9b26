// internal/workers/search/compose-search-response/models.go
package composesearchresponse

import "neptune-workers/internal/models"

type Input struct {
	Query           string                  `json:"query"`
	RankedProviders []models.ScoredProvider `json:"rankedProviders"`
	IsServiceQuery  bool                    `json:"isServiceQuery"`
}

type Output struct {
	LLMResponse string `json:"llmResponse"`
}

const InputSchema = `{
	"type": "object",
	"properties": {
		"query": {"type": "string"},
		"rankedProviders": {"type": ["array", "null"]},
		"isServiceQuery": {"type": "boolean"}
	},
	"required": ["query", "isServiceQuery"]
}`
