// Package score reduces a set of evaluated metrics to one repository score.
//
// Every metric contributes rank × weight, rank being 1 (POOR), 2 (AVERAGE) or
// 3 (GOOD). The overall score is that weighted sum divided by the highest
// possible weighted sum (every metric GOOD), so it lies in (0, 1] and equals 1
// only when every metric scores GOOD. Arithmetic is done in exact decimals and
// the final division is rounded to Precision places, so results are
// bit-identical across runs and independent of metric order.
package score

import (
	"github.com/build-flow-labs/rely/internal/rely/metric"
	"github.com/build-flow-labs/rely/internal/rely/repo"
	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places the overall score is rounded to.
const Precision int32 = 16

// Summary is the reduced score of one repository.
type Summary struct {
	Overall decimal.Decimal
	Percent int
	Grade   string
	Metrics []metric.Serialized
}

// Evaluate binds every definition to snap and reduces the results.
func Evaluate(defs []metric.Definition, snap *repo.Snapshot) (*Summary, error) {
	r := NewReducer(defs, snap)
	overall, err := r.OverallScore()
	if err != nil {
		return nil, err
	}
	pct := Percent(overall)
	return &Summary{
		Overall: overall,
		Percent: pct,
		Grade:   Grade(pct),
		Metrics: r.Serialize(),
	}, nil
}

// Percent truncates an overall score to a whole percentage.
func Percent(overall decimal.Decimal) int {
	return int(overall.Mul(decimal.NewFromInt(100)).IntPart())
}

// Grade converts a 0-100 percentage to a letter grade.
func Grade(percent int) string {
	switch {
	case percent >= 90:
		return "A"
	case percent >= 80:
		return "B"
	case percent >= 70:
		return "C"
	case percent >= 60:
		return "D"
	case percent >= 50:
		return "E"
	default:
		return "F"
	}
}
