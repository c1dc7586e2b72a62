package metric

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// Name pairs a metric's registry key with its display label.
type Name struct {
	Normalized string
	Pretty     string
}

// Metric names.
var (
	LastCommit     = Name{"last_commit_metric", "Last commit (in days)"}
	StarCount      = Name{"star_count_metric", "Number of stars"}
	ForkCount      = Name{"fork_count_metric", "Number of forks"}
	WatcherCount   = Name{"watcher_count_metric", "Number of watchers"}
	OpenIssueCount = Name{"open_issue_count_metric", "Number of open issues"}
	HasDescription = Name{"has_description_metric", "Has description"}
	HasLicense     = Name{"has_license_metric", "Has license"}
	HasReadme      = Name{"has_readme_metric", "Has README"}
	IsArchived     = Name{"is_archived_metric", "Is archived"}
	IsDisabled     = Name{"is_disabled_metric", "Is disabled"}
)

func (n Name) String() string { return n.Normalized }

// Weight is a metric's fixed importance, strictly between 0 and 1.
type Weight struct {
	d decimal.Decimal
}

// MustWeight parses a decimal literal such as "0.99". It panics on malformed
// input; range checking happens when the registry is built.
func MustWeight(s string) Weight {
	return Weight{d: decimal.RequireFromString(s)}
}

// Valid reports whether 0 < w < 1.
func (w Weight) Valid() bool {
	return w.d.IsPositive() && w.d.LessThan(decimal.NewFromInt(1))
}

// Decimal returns the exact weight.
func (w Weight) Decimal() decimal.Decimal { return w.d }

// Float64 returns the weight as a float for display and serialization.
func (w Weight) Float64() float64 { return w.d.InexactFloat64() }

func (w Weight) String() string { return w.d.String() }

// Score is a metric's discretized rating.
type Score int

// Scores, ordered. Good is the highest attainable score.
const (
	Poor    Score = 1
	Average Score = 2
	Good    Score = 3
)

// Rank returns the integer rank used in weighted sums.
func (s Score) Rank() int { return int(s) }

func (s Score) String() string {
	switch s {
	case Poor:
		return "POOR"
	case Average:
		return "AVERAGE"
	case Good:
		return "GOOD"
	default:
		return "Score(" + strconv.Itoa(int(s)) + ")"
	}
}

type valueKind uint8

const (
	kindInt valueKind = iota
	kindFloat
	kindBool
)

// Value is the raw fact a metric computes: an integer count, a real number or
// a boolean. Values of different metrics are not comparable.
type Value struct {
	kind valueKind
	i    int64
	f    float64
	b    bool
}

// IntValue wraps an integer count.
func IntValue(n int) Value { return Value{kind: kindInt, i: int64(n)} }

// FloatValue wraps a real number.
func FloatValue(f float64) Value { return Value{kind: kindFloat, f: f} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: kindBool, b: b} }

// Int returns the integer and whether the value holds one.
func (v Value) Int() (int64, bool) { return v.i, v.kind == kindInt }

// Float returns the real number and whether the value holds one.
func (v Value) Float() (float64, bool) { return v.f, v.kind == kindFloat }

// Bool returns the boolean and whether the value holds one.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == kindBool }

// Interface returns the underlying int64, float64 or bool.
func (v Value) Interface() any {
	switch v.kind {
	case kindFloat:
		return v.f
	case kindBool:
		return v.b
	default:
		return v.i
	}
}

func (v Value) String() string {
	switch v.kind {
	case kindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case kindBool:
		return strconv.FormatBool(v.b)
	default:
		return strconv.FormatInt(v.i, 10)
	}
}

// MarshalJSON encodes the value as a bare JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// MarshalYAML encodes the value as a bare YAML scalar.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}
