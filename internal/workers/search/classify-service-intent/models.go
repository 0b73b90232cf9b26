// internal/workers/search/classify-service-intent/models.go
package classifyserviceintent

type Input struct {
	Query string `json:"query"`
}

type Output struct {
	IsServiceQuery  bool     `json:"isServiceQuery"`
	MatchedKeywords []string `json:"matchedKeywords"`
}

const InputSchema = `{
	"type": "object",
	"properties": {
		"query": {"type": "string"}
	},
	"required": ["query"]
}`
