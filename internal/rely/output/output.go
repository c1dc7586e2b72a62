// Package output renders scoring results as a terminal table, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/build-flow-labs/rely/internal/rely/service"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"
)

// Supported formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Options controls rendering.
type Options struct {
	Color bool
}

// Write renders r to w in the given format.
func Write(w io.Writer, r *service.Result, format string, opts Options) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatTable, "":
		return writeTable(w, r, opts)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func writeJSON(w io.Writer, r *service.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, r *service.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func writeTable(w io.Writer, r *service.Result, opts Options) error {
	fmt.Fprintf(w, "Rely score for %s\n", r.RepoURL)
	if r.License != "" {
		fmt.Fprintf(w, "License: %s\n", r.License)
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value", "Raw score", "Weight", "Weighted score"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, m := range r.Metrics {
		data = append(data, []string{
			m.PrettifiedName,
			m.Value.String(),
			strconv.Itoa(m.Score),
			strconv.FormatFloat(m.Weight, 'f', -1, 64),
			strconv.FormatFloat(m.WeightedScore, 'f', -1, 64),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Overall score is %d%% (grade %s)\n", r.Percent, gradeLabel(r.Grade, opts.Color))
	return err
}

// gradeLabel colours a letter grade: green for A and B, yellow for C and D,
// red otherwise.
func gradeLabel(grade string, enabled bool) string {
	if !enabled {
		return grade
	}
	var c *color.Color
	switch grade {
	case "A", "B":
		c = color.New(color.FgGreen, color.Bold)
	case "C", "D":
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgRed, color.Bold)
	}
	c.EnableColor()
	return c.Sprint(grade)
}
