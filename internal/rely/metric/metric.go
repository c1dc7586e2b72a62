// Package metric defines the metric contract, the registry of metric
// definitions and the built-in repository metrics.
//
// A metric is a pair of pure functions over a repository snapshot: Value
// computes a raw fact and Score maps it onto POOR, AVERAGE or GOOD. Each metric
// carries a fixed weight, and an Instance exposes its weighted score for
// reduction.
package metric

import (
	"sync"

	"github.com/build-flow-labs/rely/internal/rely/repo"
	"github.com/shopspring/decimal"
)

// Metric computes one value and one score from the snapshot it was built with.
// Both methods must be pure: repeated calls return identical results.
type Metric interface {
	Value() Value
	Score() Score
}

// Definition describes a metric type: its identity, weight and constructor.
type Definition struct {
	Name   Name
	Weight Weight
	New    func(*repo.Snapshot) Metric
}

// Instance is a metric bound to a snapshot, with its value and score computed
// at most once.
type Instance struct {
	def   Definition
	value func() Value
	score func() Score
}

// Bind instantiates def against snap.
func Bind(def Definition, snap *repo.Snapshot) *Instance {
	m := def.New(snap)
	return &Instance{
		def:   def,
		value: sync.OnceValue(m.Value),
		score: sync.OnceValue(m.Score),
	}
}

// Definition returns the metric type this instance was built from.
func (in *Instance) Definition() Definition { return in.def }

// Value returns the memoized raw value.
func (in *Instance) Value() Value { return in.value() }

// Score returns the memoized score.
func (in *Instance) Score() Score { return in.score() }

// WeightedScore returns score rank × weight.
func (in *Instance) WeightedScore() decimal.Decimal {
	return decimal.NewFromInt(int64(in.Score().Rank())).Mul(in.def.Weight.Decimal())
}

// Serialized is the externally visible projection of an evaluated metric.
type Serialized struct {
	NormalizedName string  `json:"normalized_name" yaml:"normalized_name"`
	PrettifiedName string  `json:"prettified_name" yaml:"prettified_name"`
	Weight         float64 `json:"metric_weight" yaml:"metric_weight"`
	Value          Value   `json:"metric_value" yaml:"metric_value"`
	Score          int     `json:"metric_score" yaml:"metric_score"`
	WeightedScore  float64 `json:"metric_weighted_score" yaml:"metric_weighted_score"`
}

// Serialize projects the instance for output.
func (in *Instance) Serialize() Serialized {
	return Serialized{
		NormalizedName: in.def.Name.Normalized,
		PrettifiedName: in.def.Name.Pretty,
		Weight:         in.def.Weight.Float64(),
		Value:          in.Value(),
		Score:          in.Score().Rank(),
		WeightedScore:  in.WeightedScore().InexactFloat64(),
	}
}
