// internal/workers/search/compose-search-response/handler_test.go
package composesearchresponse

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neptune-workers/internal/common/logger"
	"neptune-workers/internal/common/validation"
	"neptune-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return LoadConfig()
}

func scored(n int) []models.ScoredProvider {
	out := make([]models.ScoredProvider, n)
	for i := range out {
		out[i] = models.ScoredProvider{
			ServiceProvider: models.ServiceProvider{ID: i + 1},
			NeptuneScore:    90,
		}
	}
	return out
}

// ==========================
// Compose Tests
// ==========================

func TestCompose_NotRelevantLiteral(t *testing.T) {
	want := "I'm designed to help you find local service providers. Your query \"what is the weather\" doesn't appear to be related to finding local services. \n\n" +
		"Try searching for things like:\n" +
		"- \"Find dishwasher repair in San Francisco\"\n" +
		"- \"Best plumbers near me\" \n" +
		"- \"Emergency HVAC repair services\""

	assert.Equal(t, want, Compose("what is the weather", nil, false))
}

func TestCompose_RelevantLiteral(t *testing.T) {
	want := "Based on your query \"fix my dishwasher\", I found 3 highly-rated dishwasher repair technicians in San Francisco.\n\n" +
		"**How to Book:**\n" +
		"- Call directly using the phone numbers provided\n" +
		"- Most providers offer online booking through their websites\n" +
		"- Many offer same-day or next-day service\n" +
		"- Always verify insurance and get a written estimate before work begins\n\n" +
		"The Neptune Scores shown help you compare providers based on ratings, reviews, response time, verification status, experience, and availability."

	assert.Equal(t, want, Compose("fix my dishwasher", scored(3), true))
}

func TestCompose_CountFollowsProviders(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "I found 0 highly-rated"},
		{1, "I found 1 highly-rated"},
		{2, "I found 2 highly-rated"},
		{3, "I found 3 highly-rated"},
	}
	for _, tt := range tests {
		assert.Contains(t, Compose("repair", scored(tt.count), true), tt.want)
	}
}

func TestCompose_QueryEmbeddedVerbatim(t *testing.T) {
	queries := []string{
		`say "hi" 100%`,
		"line\nbreak",
		"",
		"ünïcödé",
	}
	for _, q := range queries {
		assert.Contains(t, Compose(q, nil, false), "Your query \""+q+"\" doesn't")
		assert.Contains(t, Compose(q, scored(1), true), "your query \""+q+"\", I found")
	}
}

func TestCompose_DecisionIgnoresProvidersWhenNotRelevant(t *testing.T) {
	assert.Equal(t, Compose("hello", nil, false), Compose("hello", scored(3), false))
	assert.False(t, strings.Contains(Compose("hello", scored(3), false), "I found"))
}

// ==========================
// Handler Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	out := h.Execute(&Input{Query: "appliance repair", RankedProviders: scored(2), IsServiceQuery: true})
	assert.Equal(t, Compose("appliance repair", scored(2), true), out.LLMResponse)

	out = h.Execute(&Input{Query: "tell me a joke"})
	assert.True(t, strings.HasPrefix(out.LLMResponse, "I'm designed to help you"))
}

func TestInputSchema(t *testing.T) {
	vars, err := json.Marshal(Input{Query: "fix", RankedProviders: scored(1), IsServiceQuery: true})
	require.NoError(t, err)

	res, err := validation.ValidateJSON(InputSchema, vars)
	require.NoError(t, err)
	assert.True(t, res.Valid, res.Error())

	res, err = validation.ValidateJSON(InputSchema, []byte(`{"query": "fix"}`))
	require.NoError(t, err)
	assert.True(t, res.HasErrors("isServiceQuery"))
}
