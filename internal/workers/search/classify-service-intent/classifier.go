// internal/workers/search/classify-service-intent/classifier.go
package classifyserviceintent

import "strings"

// ServiceKeywords are the lower-case markers of a local-services query.
var ServiceKeywords = []string{
	"repair",
	"service",
	"fix",
	"install",
	"maintenance",
	"plumber",
	"electrician",
	"technician",
	"contractor",
	"cleaning",
	"landscaping",
	"handyman",
	"appliance",
}

// IsServiceQuery reports whether query looks like a request for a local
// service provider. Matching is case-insensitive substring matching, so
// "repairs" and "prefix" both count.
func IsServiceQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range ServiceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// MatchedKeywords returns every keyword found in query, in ServiceKeywords order.
func MatchedKeywords(query string) []string {
	lower := strings.ToLower(query)
	matched := []string{}
	for _, kw := range ServiceKeywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}
