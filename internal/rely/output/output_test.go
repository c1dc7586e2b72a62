package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/build-flow-labs/rely/internal/rely/metric"
	"github.com/build-flow-labs/rely/internal/rely/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult() *service.Result {
	return &service.Result{
		RequestID:    "req-1",
		RepoURL:      "https://github.com/octo/demo",
		Owner:        "octo",
		Name:         "demo",
		OverallScore: 0.8751733703190014,
		Percent:      87,
		Grade:        "B",
		License:      "MIT",
		ScoredAt:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Metrics: []metric.Serialized{
			{
				NormalizedName: "star_count_metric",
				PrettifiedName: "Number of stars",
				Weight:         0.65,
				Value:          metric.IntValue(600),
				Score:          3,
				WeightedScore:  1.95,
			},
			{
				NormalizedName: "has_readme_metric",
				PrettifiedName: "Has README",
				Weight:         0.99,
				Value:          metric.BoolValue(true),
				Score:          3,
				WeightedScore:  2.97,
			},
		},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatTable, Options{}))

	out := buf.String()
	assert.Contains(t, out, "Rely score for https://github.com/octo/demo")
	assert.Contains(t, out, "License: MIT")
	assert.Contains(t, out, "Number of stars")
	assert.Contains(t, out, "600")
	assert.Contains(t, out, "1.95")
	assert.Contains(t, out, "Has README")
	assert.Contains(t, out, "true")
	assert.Contains(t, out, "Overall score is 87% (grade B)")
	assert.NotContains(t, out, "\x1b[")
}

func TestWriteTableColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatTable, Options{Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatJSON, Options{}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "https://github.com/octo/demo", got["repo_url"])
	assert.Equal(t, float64(87), got["overall_score_percent"])
	assert.Equal(t, "B", got["grade"])
	assert.Equal(t, "MIT", got["license"])
	assert.NotContains(t, got, "Summary")

	metrics := got["metrics"].([]any)
	require.Len(t, metrics, 2)
	first := metrics[0].(map[string]any)
	assert.Equal(t, "star_count_metric", first["normalized_name"])
	assert.Equal(t, float64(600), first["metric_value"])
	assert.Equal(t, true, metrics[1].(map[string]any)["metric_value"])
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), "YAML", Options{}))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "octo", got["owner"])
	assert.Equal(t, 87, got["overall_score_percent"])

	metrics := got["metrics"].([]any)
	require.Len(t, metrics, 2)
	assert.Equal(t, 600, metrics[0].(map[string]any)["metric_value"])
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, sampleResult(), "xml", Options{})
	assert.ErrorContains(t, err, "unknown output format")
}
