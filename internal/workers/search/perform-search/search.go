// internal/workers/search/perform-search/search.go
package performsearch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"neptune-workers/internal/common/logger"
	"neptune-workers/internal/common/metrics"
	"neptune-workers/internal/common/observability"
	"neptune-workers/internal/dataset"
	"neptune-workers/internal/models"
	classifyserviceintent "neptune-workers/internal/workers/search/classify-service-intent"
	composesearchresponse "neptune-workers/internal/workers/search/compose-search-response"
	rankproviders "neptune-workers/internal/workers/search/rank-providers"
)

// Searcher runs the classify, rank and compose pipeline over the fixture
// dataset. It holds no per-search state and is safe for concurrent use.
type Searcher struct {
	config    *Config
	logger    logger.Logger
	obs       *observability.Observability
	sleep     func(time.Duration)
	now       func() time.Time
	providers func() []models.ServiceProvider
}

func NewSearcher(config *Config, log logger.Logger, obs *observability.Observability) *Searcher {
	return &Searcher{
		config:    config,
		logger:    log,
		obs:       obs,
		sleep:     time.Sleep,
		now:       time.Now,
		providers: dataset.Providers,
	}
}

var defaultSearcher = NewSearcher(LoadConfig(), logger.NewNoOpLogger(), nil)

// Search runs a query through the default Searcher.
func Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	return defaultSearcher.Search(ctx, query)
}

// Search always waits the configured delay, even when ctx is already done,
// and never returns an error. The error result is there for callers that
// wrap the facade.
func (s *Searcher) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	start := time.Now()
	requestID := uuid.NewString()

	ctx, span := s.obs.StartSpan(ctx, "perform-search", attribute.String("requestId", requestID))
	defer span.End()

	s.sleep(s.config.Delay)

	relevant := classifyserviceintent.IsServiceQuery(query)
	resp := &models.SearchResponse{
		Query:     query,
		Providers: []models.ScoredProvider{},
	}

	if relevant {
		resp.Providers = rankproviders.RankTop(s.providers(), s.config.MaxResults)
	}
	resp.TotalResults = len(resp.Providers)
	resp.LLMResponse = composesearchresponse.Compose(query, resp.Providers, relevant)
	resp.SearchTime = s.now().UnixMilli()

	intent := metrics.IntentLabel(relevant)
	metrics.SearchesTotal.WithLabelValues(intent).Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	s.obs.RecordSearch(ctx, intent, resp.TotalResults)
	span.SetAttributes(
		attribute.String("intent", intent),
		attribute.Int("totalResults", resp.TotalResults),
	)

	s.logger.Info("search completed", map[string]interface{}{
		"requestId":    requestID,
		"intent":       intent,
		"totalResults": resp.TotalResults,
		"durationMs":   time.Since(start).Milliseconds(),
	})

	return resp, nil
}
