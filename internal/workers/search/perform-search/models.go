// internal/workers/search/perform-search/models.go
package performsearch

import "neptune-workers/internal/models"

type Input struct {
	Query string `json:"query"`
}

// Output is the search envelope, completed as the job's variables.
type Output = models.SearchResponse

const InputSchema = `{
	"type": "object",
	"properties": {
		"query": {"type": "string"}
	},
	"required": ["query"]
}`
