package analyze

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefaults() Defaults {
	return Defaults{
		DynamicField: "AISummary",
		Prompt:       "Summarize this ticket.",
		Temperature:  0.2,
	}
}

func TestReduceFlag_TruthTable(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`false`, false},
		{`"false"`, false},
		{`"FALSE"`, false},
		{`"False"`, false},
		{`true`, true},
		{`"true"`, true},
		{`"yes"`, true},
		{`"no"`, true},
		{`""`, true},
		{`"0"`, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("value %s", tt.raw), func(t *testing.T) {
			var req Request
			body := fmt.Sprintf(`{"reduce_metadata": %s}`, tt.raw)
			require.NoError(t, json.Unmarshal([]byte(body), &req))

			opts := req.Resolve(testDefaults())
			assert.Equal(t, tt.want, opts.Reduce)
		})
	}
}

func TestReduceFlag_AbsentDefaultsToTrue(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))

	opts := req.Resolve(testDefaults())
	assert.True(t, opts.Reduce)
}

func TestReduceFlag_NullDefaultsToTrue(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"reduce_metadata": null}`), &req))

	opts := req.Resolve(testDefaults())
	assert.True(t, opts.Reduce)
}

func TestReduceFlag_RejectsOtherTypes(t *testing.T) {
	var req Request
	err := json.Unmarshal([]byte(`{"reduce_metadata": 1}`), &req)
	assert.Error(t, err)
}

func TestResolve_Defaults(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))

	opts := req.Resolve(testDefaults())

	assert.Equal(t, "AISummary", opts.DynamicField)
	assert.Equal(t, "Summarize this ticket.", opts.Prompt)
	assert.True(t, opts.Reduce)
	assert.InDelta(t, 0.2, float64(opts.Temperature), 0.001)
}

func TestResolve_Overrides(t *testing.T) {
	var req Request
	body := `{
		"dynamic_field": "AI_Summary",
		"ai_prompt": "Summarize",
		"reduce_metadata": false,
		"ai_temperature": 0.7
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	opts := req.Resolve(testDefaults())

	assert.Equal(t, "AI_Summary", opts.DynamicField)
	assert.Equal(t, "Summarize", opts.Prompt)
	assert.False(t, opts.Reduce)
	assert.InDelta(t, 0.7, float64(opts.Temperature), 0.001)
}

func TestResolve_ZeroTemperatureOverride(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"ai_temperature": 0}`), &req))

	opts := req.Resolve(testDefaults())
	assert.Zero(t, opts.Temperature)
}
