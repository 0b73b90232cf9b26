// internal/workers/search/perform-search/handler_test.go
package performsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"neptune-workers/internal/common/config"
	"neptune-workers/internal/common/logger"
	"neptune-workers/internal/common/metrics"
	"neptune-workers/internal/dataset"
	"neptune-workers/internal/models"
	composesearchresponse "neptune-workers/internal/workers/search/compose-search-response"
)

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func createTestConfig() *Config {
	c := LoadConfig()
	c.Delay = 0
	return c
}

type sleepRecorder struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (r *sleepRecorder) sleep(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, d)
}

func newTestSearcher(t *testing.T, cfg *Config) (*Searcher, *sleepRecorder) {
	rec := &sleepRecorder{}
	s := NewSearcher(cfg, logger.NewTestLogger(t), nil)
	s.sleep = rec.sleep
	s.now = func() time.Time { return fixedNow }
	return s, rec
}

func providerIDs(providers []models.ScoredProvider) []int {
	out := make([]int, len(providers))
	for i, p := range providers {
		out[i] = p.ID
	}
	return out
}

// ==========================
// Search Tests
// ==========================

func TestSearch_ServiceQuery(t *testing.T) {
	s, rec := newTestSearcher(t, LoadConfig())

	resp, err := s.Search(context.Background(), "Find dishwasher repair in San Francisco")
	require.NoError(t, err)

	assert.Equal(t, "Find dishwasher repair in San Francisco", resp.Query)
	assert.Equal(t, 3, resp.TotalResults)
	assert.Equal(t, []int{1, 2, 3}, providerIDs(resp.Providers))
	assert.Equal(t, 99.2, resp.Providers[0].NeptuneScore)
	assert.InDelta(t, 75.7, resp.Providers[1].NeptuneScore, 0.11)
	assert.InDelta(t, 52.2, resp.Providers[2].NeptuneScore, 0.11)
	assert.Equal(t, composesearchresponse.Compose(resp.Query, resp.Providers, true), resp.LLMResponse)
	assert.Contains(t, resp.LLMResponse, "I found 3 highly-rated")
	assert.Equal(t, fixedNow.UnixMilli(), resp.SearchTime)

	assert.Equal(t, []time.Duration{DefaultDelay}, rec.calls)
}

func TestSearch_NotServiceQuery(t *testing.T) {
	s, rec := newTestSearcher(t, LoadConfig())

	resp, err := s.Search(context.Background(), "what is the weather today")
	require.NoError(t, err)

	assert.Equal(t, 0, resp.TotalResults)
	require.NotNil(t, resp.Providers)
	assert.Empty(t, resp.Providers)
	assert.Equal(t, composesearchresponse.Compose("what is the weather today", nil, false), resp.LLMResponse)
	assert.Len(t, rec.calls, 1, "the delay applies to irrelevant queries too")

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"providers":[]`)
}

func TestSearch_EmptyQuery(t *testing.T) {
	s, _ := newTestSearcher(t, createTestConfig())

	resp, err := s.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "", resp.Query)
	assert.Equal(t, 0, resp.TotalResults)
	assert.Contains(t, resp.LLMResponse, `Your query "" doesn't`)
}

func TestSearch_TotalResultsMatchesProviders(t *testing.T) {
	s, _ := newTestSearcher(t, createTestConfig())
	queries := []string{"plumber", "hello", "HANDYMAN needed", "", "cleaning service"}

	for _, q := range queries {
		resp, err := s.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, len(resp.Providers), resp.TotalResults, q)
		assert.LessOrEqual(t, resp.TotalResults, 3)
	}
}

func TestSearch_Idempotent(t *testing.T) {
	s, _ := newTestSearcher(t, createTestConfig())

	first, err := s.Search(context.Background(), "appliance repair")
	require.NoError(t, err)
	second, err := s.Search(context.Background(), "appliance repair")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSearch_DelayNotCancellable(t *testing.T) {
	cfg := createTestConfig()
	cfg.Delay = 30 * time.Millisecond
	s := NewSearcher(cfg, logger.NewNoOpLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	resp, err := s.Search(ctx, "fix my fridge")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, 3, resp.TotalResults)
}

func TestSearch_SearchTimeIsCurrentMillis(t *testing.T) {
	s := NewSearcher(createTestConfig(), logger.NewNoOpLogger(), nil)

	before := time.Now().UnixMilli()
	resp, err := s.Search(context.Background(), "repair")
	require.NoError(t, err)
	after := time.Now().UnixMilli()

	assert.GreaterOrEqual(t, resp.SearchTime, before)
	assert.LessOrEqual(t, resp.SearchTime, after)
}

func TestSearch_MaxResults(t *testing.T) {
	cfg := createTestConfig()
	cfg.MaxResults = 2
	s, _ := newTestSearcher(t, cfg)

	resp, err := s.Search(context.Background(), "repair")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, providerIDs(resp.Providers))
	assert.Contains(t, resp.LLMResponse, "I found 2 highly-rated")
}

func TestSearch_MaxResultsCappedAtThree(t *testing.T) {
	cfg := createTestConfig()
	cfg.MaxResults = 10
	s, _ := newTestSearcher(t, cfg)
	extra := dataset.Providers()
	for i := range extra {
		extra[i].ID += 10
	}
	s.providers = func() []models.ServiceProvider {
		return append(dataset.Providers(), extra...)
	}

	resp, err := s.Search(context.Background(), "repair")
	require.NoError(t, err)
	assert.Len(t, resp.Providers, 3)
	assert.Equal(t, 3, resp.TotalResults)
}

func TestSearch_Concurrent(t *testing.T) {
	cfg := createTestConfig()
	cfg.Delay = 5 * time.Millisecond
	s := NewSearcher(cfg, logger.NewNoOpLogger(), nil)

	var g errgroup.Group
	results := make([]*models.SearchResponse, 20)
	for i := range results {
		i := i
		g.Go(func() error {
			q := fmt.Sprintf("plumber %d", i)
			if i%2 == 1 {
				q = fmt.Sprintf("tell me a story %d", i)
			}
			resp, err := s.Search(context.Background(), q)
			results[i] = resp
			return err
		})
	}
	require.NoError(t, g.Wait())

	for i, resp := range results {
		if i%2 == 1 {
			assert.Equal(t, fmt.Sprintf("tell me a story %d", i), resp.Query)
			assert.Empty(t, resp.Providers)
			continue
		}
		assert.Equal(t, fmt.Sprintf("plumber %d", i), resp.Query)
		assert.Equal(t, []int{1, 2, 3}, providerIDs(resp.Providers))
	}
}

func TestSearch_RecordsIntentMetric(t *testing.T) {
	s, _ := newTestSearcher(t, createTestConfig())

	before := testutil.ToFloat64(metrics.SearchesTotal.WithLabelValues(metrics.IntentService))
	_, err := s.Search(context.Background(), "electrician")
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.SearchesTotal.WithLabelValues(metrics.IntentService)))
}

func TestPackageSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("default searcher waits the full delay")
	}
	resp, err := Search(context.Background(), "landscaping")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalResults)
}

// ==========================
// Handler Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(createTestConfig(), nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Query: "Best plumbers near me"})
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalResults)

	out, err = h.Execute(context.Background(), &Input{Query: "recipe for bread"})
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalResults)
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.SearchConfig{DelayMs: 250, MaxResults: 2})
	assert.Equal(t, 250*time.Millisecond, cfg.Delay)
	assert.Equal(t, 2, cfg.MaxResults)

	cfg = ConfigFrom(config.SearchConfig{})
	assert.Equal(t, time.Duration(0), cfg.Delay)
	assert.Equal(t, 3, cfg.MaxResults)
}
