// internal/workers/search/rank-providers/rank.go
package rankproviders

import (
	"sort"

	"neptune-workers/internal/models"
	calculateneptunescore "neptune-workers/internal/workers/search/calculate-neptune-score"
)

// MaxResults is how many providers a search returns.
const MaxResults = 3

// Rank scores every provider and returns the best MaxResults, highest
// score first. Providers with equal scores keep their input order.
func Rank(providers []models.ServiceProvider) []models.ScoredProvider {
	return RankTop(providers, MaxResults)
}

// RankTop is Rank with a caller-chosen limit, capped at MaxResults.
// n <= 0 means MaxResults. The input slice is not modified.
func RankTop(providers []models.ServiceProvider, n int) []models.ScoredProvider {
	if n <= 0 || n > MaxResults {
		n = MaxResults
	}

	scored := make([]models.ScoredProvider, len(providers))
	for i, p := range providers {
		scored[i] = models.ScoredProvider{
			ServiceProvider: p.Clone(),
			NeptuneScore:    calculateneptunescore.Score(p),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].NeptuneScore > scored[j].NeptuneScore
	})

	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}
