package score

import (
	"fmt"

	"github.com/build-flow-labs/rely/internal/rely/metric"
	"github.com/build-flow-labs/rely/internal/rely/repo"
	"github.com/shopspring/decimal"
)

// Reducer computes overall values for a collection of metrics bound to one
// snapshot.
type Reducer struct {
	instances []*metric.Instance
}

// NewReducer instantiates one metric per definition against snap.
func NewReducer(defs []metric.Definition, snap *repo.Snapshot) *Reducer {
	instances := make([]*metric.Instance, 0, len(defs))
	for _, d := range defs {
		instances = append(instances, metric.Bind(d, snap))
	}
	return &Reducer{instances: instances}
}

// Instances returns the bound metrics in definition order.
func (r *Reducer) Instances() []*metric.Instance {
	return r.instances
}

// HighestPossibleScore is the weighted sum a repository scoring GOOD on every
// metric would reach.
func (r *Reducer) HighestPossibleScore() decimal.Decimal {
	good := decimal.NewFromInt(int64(metric.Good.Rank()))
	total := decimal.Zero
	for _, in := range r.instances {
		total = total.Add(good.Mul(in.Definition().Weight.Decimal()))
	}
	return total
}

// WeightedSum is the sum of every metric's weighted score.
func (r *Reducer) WeightedSum() decimal.Decimal {
	total := decimal.Zero
	for _, in := range r.instances {
		total = total.Add(in.WeightedScore())
	}
	return total
}

// OverallScore returns WeightedSum / HighestPossibleScore rounded to
// Precision places. It fails only when there are no metrics.
func (r *Reducer) OverallScore() (decimal.Decimal, error) {
	highest := r.HighestPossibleScore()
	if len(r.instances) == 0 || highest.IsZero() {
		return decimal.Zero, fmt.Errorf("reducing scores: %w", metric.ErrEmptyRegistry)
	}
	return r.WeightedSum().DivRound(highest, Precision), nil
}

// Serialize projects every metric for output, in definition order.
func (r *Reducer) Serialize() []metric.Serialized {
	out := make([]metric.Serialized, 0, len(r.instances))
	for _, in := range r.instances {
		out = append(out, in.Serialize())
	}
	return out
}
