package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var searchTaskTypes = []string{
	"classify-service-intent",
	"calculate-neptune-score",
	"rank-providers",
	"compose-search-response",
	"perform-search",
}

func createTestActivity(id string) Activity {
	return Activity{
		ID:                   id,
		DisplayName:          "Test " + id,
		Description:          "test activity",
		Category:             "search",
		Version:              "1.0.0",
		TaskType:             id,
		ImplementationStatus: StatusPlanned,
		InputSchema: map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"query"},
		},
		Timeout: "5s",
	}
}

func TestShippedRegistry(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)

	require.NoError(t, reg.Validate())
	assert.Empty(t, reg.MissingTaskTypes(searchTaskTypes))

	ps, ok := reg.Find("perform-search")
	require.True(t, ok)
	assert.Contains(t, ps.ErrorCodes, "SEARCH_FAILED")

	problems, err := ps.ValidateInput([]byte(`{"query": "fix sink"}`))
	require.NoError(t, err)
	assert.Empty(t, problems)

	problems, err = ps.ValidateInput([]byte(`{"q": "fix sink"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, problems)
}

func TestAddAndSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")

	reg := New()
	require.NoError(t, reg.Add(createTestActivity("rank-providers")))
	assert.Error(t, reg.Add(createTestActivity("rank-providers")))
	require.NoError(t, reg.Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, loaded.Activities, 1)
	assert.Equal(t, "rank-providers", loaded.Activities[0].TaskType)
}

func TestUpdate(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Add(createTestActivity("perform-search")))

	tests := []struct {
		field   string
		value   string
		wantErr bool
	}{
		{"status", StatusCompleted, false},
		{"status", "shipped", true},
		{"retries", "2", false},
		{"retries", "two", true},
		{"timeout", "35s", false},
		{"timeout", "soon", true},
		{"version", "1.1.0", false},
		{"owner", "me", true},
	}
	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			err := reg.Update("perform-search", tt.field, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	a, _ := reg.Find("perform-search")
	assert.Equal(t, StatusCompleted, a.ImplementationStatus)
	assert.Equal(t, 2, a.Retries)
	assert.Equal(t, "35s", a.Timeout)
	assert.Equal(t, "1.1.0", a.Version)

	assert.Error(t, reg.Update("missing", "status", StatusPlanned))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *ActivityRegistry)
	}{
		{"empty", func(r *ActivityRegistry) { r.Activities = nil }},
		{"missing id", func(r *ActivityRegistry) { r.Activities[0].ID = "" }},
		{"duplicate id", func(r *ActivityRegistry) { r.Activities[1].ID = r.Activities[0].ID }},
		{"duplicate task type", func(r *ActivityRegistry) { r.Activities[1].TaskType = r.Activities[0].TaskType }},
		{"missing category", func(r *ActivityRegistry) { r.Activities[0].Category = "" }},
		{"bad status", func(r *ActivityRegistry) { r.Activities[0].ImplementationStatus = "done" }},
		{"bad schema", func(r *ActivityRegistry) {
			r.Activities[0].InputSchema = map[string]interface{}{"type": 12}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New()
			require.NoError(t, reg.Add(createTestActivity("a")))
			require.NoError(t, reg.Add(createTestActivity("b")))
			require.NoError(t, reg.Validate())

			tt.modify(reg)
			assert.Error(t, reg.Validate())
		})
	}
}

func TestMissingTaskTypes(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Add(createTestActivity("rank-providers")))

	missing := reg.MissingTaskTypes(searchTaskTypes)
	assert.Equal(t, []string{
		"calculate-neptune-score",
		"classify-service-intent",
		"compose-search-response",
		"perform-search",
	}, missing)
}
