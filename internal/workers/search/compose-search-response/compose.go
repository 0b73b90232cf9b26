// internal/workers/search/compose-search-response/compose.go
package composesearchresponse

import (
	"fmt"

	"neptune-workers/internal/models"
)

const notServiceTemplate = "I'm designed to help you find local service providers. Your query \"%s\" doesn't appear to be related to finding local services. \n\n" +
	"Try searching for things like:\n" +
	"- \"Find dishwasher repair in San Francisco\"\n" +
	"- \"Best plumbers near me\" \n" +
	"- \"Emergency HVAC repair services\""

const serviceTemplate = "Based on your query \"%s\", I found %d highly-rated dishwasher repair technicians in San Francisco.\n\n" +
	"**How to Book:**\n" +
	"- Call directly using the phone numbers provided\n" +
	"- Most providers offer online booking through their websites\n" +
	"- Many offer same-day or next-day service\n" +
	"- Always verify insurance and get a written estimate before work begins\n\n" +
	"The Neptune Scores shown help you compare providers based on ratings, reviews, response time, verification status, experience, and availability."

// Compose renders the assistant text for query. relevant selects between
// the booking guidance (with the count of ranked providers) and the
// redirect message. The query is embedded verbatim, without escaping.
func Compose(query string, ranked []models.ScoredProvider, relevant bool) string {
	if !relevant {
		return fmt.Sprintf(notServiceTemplate, query)
	}
	return fmt.Sprintf(serviceTemplate, query, len(ranked))
}
