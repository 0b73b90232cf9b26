// internal/workers/search/rank-providers/handler_test.go
package rankproviders

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neptune-workers/internal/common/logger"
	"neptune-workers/internal/common/validation"
	"neptune-workers/internal/dataset"
	"neptune-workers/internal/models"
	calculateneptunescore "neptune-workers/internal/workers/search/calculate-neptune-score"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return LoadConfig()
}

func provider(id int, rating float64) models.ServiceProvider {
	return models.ServiceProvider{
		ID:           id,
		Name:         "provider",
		Rating:       rating,
		ResponseTime: "< 6 hours",
		Availability: "Available next week",
	}
}

func ids(ranked []models.ScoredProvider) []int {
	out := make([]int, len(ranked))
	for i, p := range ranked {
		out[i] = p.ID
	}
	return out
}

// ==========================
// Rank Tests
// ==========================

func TestRank_Fixture(t *testing.T) {
	ranked := Rank(dataset.Providers())
	require.Len(t, ranked, 3)

	assert.Equal(t, []int{1, 2, 3}, ids(ranked))
	assert.Equal(t, 99.2, ranked[0].NeptuneScore)
	assert.InDelta(t, 75.7, ranked[1].NeptuneScore, 0.11)
	assert.InDelta(t, 52.2, ranked[2].NeptuneScore, 0.11)
	assert.Equal(t, "Golden Gate Appliance Experts", ranked[0].Name)
}

func TestRank_OrderIndependent(t *testing.T) {
	providers := dataset.Providers()
	reversed := []models.ServiceProvider{providers[2], providers[1], providers[0]}
	assert.Equal(t, []int{1, 2, 3}, ids(Rank(reversed)))
}

func TestRank_Truncates(t *testing.T) {
	providers := []models.ServiceProvider{
		provider(1, 3.0),
		provider(2, 4.8),
		provider(3, 2.0),
		provider(4, 4.0),
		provider(5, 5.0),
	}
	ranked := Rank(providers)
	assert.Equal(t, []int{5, 2, 4}, ids(ranked))

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].NeptuneScore, ranked[i].NeptuneScore)
	}
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	providers := []models.ServiceProvider{
		provider(7, 4.0),
		provider(3, 4.0),
		provider(9, 4.5),
		provider(1, 4.0),
	}
	assert.Equal(t, []int{9, 7, 3}, ids(Rank(providers)))
}

func TestRank_SmallInputs(t *testing.T) {
	assert.Empty(t, Rank(nil))
	assert.Empty(t, Rank([]models.ServiceProvider{}))

	ranked := Rank([]models.ServiceProvider{provider(1, 4.0), provider(2, 4.5)})
	assert.Equal(t, []int{2, 1}, ids(ranked))
}

func TestRank_ScoresMatchScorer(t *testing.T) {
	for _, p := range Rank(dataset.Providers()) {
		assert.Equal(t, calculateneptunescore.Score(p.ServiceProvider), p.NeptuneScore)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	providers := []models.ServiceProvider{provider(1, 2.0), provider(2, 5.0)}
	ranked := Rank(providers)
	ranked[0].Name = "changed"

	assert.Equal(t, 1, providers[0].ID)
	assert.Equal(t, "provider", providers[1].Name)
}

func TestRankTop(t *testing.T) {
	providers := dataset.Providers()
	assert.Len(t, RankTop(providers, 1), 1)
	assert.Len(t, RankTop(providers, 10), 3)
	assert.Len(t, RankTop(providers, 0), 3)
	assert.Len(t, RankTop(providers, -2), 3)

	five := []models.ServiceProvider{
		provider(1, 1.0), provider(2, 2.0), provider(3, 3.0), provider(4, 4.0), provider(5, 5.0),
	}
	assert.Equal(t, []int{5, 4, 3}, ids(RankTop(five, 10)))
	assert.Equal(t, []int{5, 4}, ids(RankTop(five, 2)))
}

func TestParseInput_MissingVersusEmpty(t *testing.T) {
	var missing Input
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
	assert.Nil(t, missing.Providers)

	var empty Input
	require.NoError(t, json.Unmarshal([]byte(`{"providers": []}`), &empty))
	require.NotNil(t, empty.Providers)
	assert.Empty(t, *empty.Providers)

	h := NewHandler(createTestConfig(), logger.NewNoOpLogger())
	out, err := h.Execute(context.Background(), &empty)
	require.NoError(t, err)
	assert.Empty(t, out.RankedProviders)

	out, err = h.Execute(context.Background(), &missing)
	require.NoError(t, err)
	assert.Len(t, out.RankedProviders, 3)
}

// ==========================
// Handler Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		config         *Config
		input          *Input
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:   "empty input ranks the dataset",
			config: createTestConfig(),
			input:  &Input{},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, []int{1, 2, 3}, ids(output.RankedProviders))
			},
		},
		{
			name:   "explicit providers",
			config: createTestConfig(),
			input:  WithProviders([]models.ServiceProvider{provider(4, 1.0), provider(8, 4.9)}),
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, []int{8, 4}, ids(output.RankedProviders))
			},
		},
		{
			name:   "explicit empty list ranks nothing",
			config: createTestConfig(),
			input:  WithProviders([]models.ServiceProvider{}),
			validateOutput: func(t *testing.T, output *Output) {
				require.NotNil(t, output.RankedProviders)
				assert.Empty(t, output.RankedProviders)
			},
		},
		{
			name:   "limit above three is capped",
			config: &Config{MaxItems: 10, Timeout: createTestConfig().Timeout},
			input: WithProviders([]models.ServiceProvider{
				provider(1, 1.0), provider(2, 2.0), provider(3, 3.0), provider(4, 4.0), provider(5, 5.0),
			}),
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, []int{5, 4, 3}, ids(output.RankedProviders))
			},
		},
		{
			name:   "configured limit",
			config: &Config{MaxItems: 1, Timeout: createTestConfig().Timeout},
			input:  &Input{},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, []int{1}, ids(output.RankedProviders))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.config, logger.NewTestLogger(t))
			output, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			tt.validateOutput(t, output)
		})
	}
}

func TestHandler_Execute_RejectsOutOfDomainProviders(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewNoOpLogger())

	tests := []struct {
		name   string
		modify func(p *models.ServiceProvider)
	}{
		{"rating above five", func(p *models.ServiceProvider) { p.Rating = 10 }},
		{"negative rating", func(p *models.ServiceProvider) { p.Rating = -1 }},
		{"negative review count", func(p *models.ServiceProvider) { p.ReviewCount = -20 }},
		{"negative years in business", func(p *models.ServiceProvider) { p.YearsInBusiness = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			golden, _ := dataset.ByID(1)
			tt.modify(&golden)

			out, err := h.Execute(context.Background(), WithProviders([]models.ServiceProvider{golden}))
			require.Error(t, err)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, ErrProviderInvalid)
		})
	}
}

func TestInputSchema_RejectsOutOfDomainProviders(t *testing.T) {
	res, err := validation.ValidateJSON(InputSchema, []byte(`{"providers": [
		{"id": 1, "name": "a", "rating": 10, "reviewCount": 5}]}`))
	require.NoError(t, err)
	assert.False(t, res.Valid)

	res, err = validation.ValidateJSON(InputSchema, []byte(`{"providers": [
		{"id": 1, "name": "a", "rating": 4.5, "reviewCount": -1}]}`))
	require.NoError(t, err)
	assert.False(t, res.Valid)

	res, err = validation.ValidateJSON(InputSchema, []byte(`{"providers": [
		{"id": 1, "name": "a", "rating": 4.5, "reviewCount": 12, "yearsInBusiness": 3}]}`))
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestHandler_Execute_CancelledContext(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewNoOpLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Execute(ctx, &Input{})
	assert.ErrorIs(t, err, ErrRankingFailed)
}
