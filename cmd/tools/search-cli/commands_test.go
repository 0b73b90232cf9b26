package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neptune-workers/internal/httpapi"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()
	names := []string{}
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"search", "score", "legend"})

	search, _, err := cmd.Find([]string{"search"})
	require.NoError(t, err)
	for _, flag := range []string{"json", "delay", "limit", "verbose"} {
		assert.NotNil(t, search.Flags().Lookup(flag), flag)
	}
}

func TestSearchCmd_Text(t *testing.T) {
	out, err := run(t, "search", "--delay", "0", "dishwasher", "repair")
	require.NoError(t, err)

	assert.Contains(t, out, `Based on your query "dishwasher repair"`)
	assert.Contains(t, out, "#1 Golden Gate Appliance Experts")
	assert.Contains(t, out, "Neptune Score: 99.2 (excellent)")
	assert.Contains(t, out, "#3 Budget Appliance Repair")
}

func TestSearchCmd_NotService(t *testing.T) {
	out, err := run(t, "search", "--delay", "0", "tell me a joke")
	require.NoError(t, err)
	assert.Contains(t, out, "doesn't appear to be related to finding local services")
	assert.NotContains(t, out, "Top ")
}

func TestSearchCmd_JSON(t *testing.T) {
	out, err := run(t, "search", "--json", "--delay", "0", "--limit", "2", "plumber")
	require.NoError(t, err)

	var result struct {
		TotalResults int                    `json:"totalResults"`
		Cards        []httpapi.ProviderCard `json:"cards"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.TotalResults)
	require.Len(t, result.Cards, 2)
	assert.Equal(t, 2, result.Cards[1].Rank)
}

func TestSearchCmd_LimitCappedAtThree(t *testing.T) {
	for _, limit := range []string{"4", "100", "-1"} {
		_, err := run(t, "search", "--delay", "0", "--limit", limit, "plumber")
		require.Error(t, err, limit)
		assert.Contains(t, err.Error(), "--limit must be between 1 and 3")
	}
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	_, err := run(t, "search")
	assert.Error(t, err)

	_, err = run(t, "search", "--delay", "0", "   ")
	assert.Error(t, err)
}

func TestScoreCmd(t *testing.T) {
	out, err := run(t, "score", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Golden Gate Appliance Experts")
	assert.Contains(t, out, "Neptune Score   99.2")

	_, err = run(t, "score", "9")
	assert.Error(t, err)

	_, err = run(t, "score", "abc")
	assert.Error(t, err)
}

func TestLegendCmd(t *testing.T) {
	out, err := run(t, "legend")
	require.NoError(t, err)
	assert.Contains(t, out, "Rating & Reviews (55%)")
	assert.Contains(t, out, "Availability (5%)")
	assert.Contains(t, out, "85+: Excellent")
	assert.Contains(t, out, "55+: Good")
}
