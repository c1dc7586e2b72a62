package metric

import (
	"math"
	"time"

	"github.com/build-flow-labs/rely/internal/rely/repo"
)

const day = 24 * time.Hour

// lastCommit: how recent is the latest push? Fewer days scores better.
//
// Days are whole days elapsed between the push and the snapshot's evaluation
// instant, rounded down. A missing push time is the zero time and scores POOR.
type lastCommit struct{ snap *repo.Snapshot }

func newLastCommit(s *repo.Snapshot) Metric { return lastCommit{s} }

func (m lastCommit) days() int {
	elapsed := m.snap.EvaluatedAt().Sub(m.snap.Metadata().PushedAt)
	return int(math.Floor(float64(elapsed) / float64(day)))
}

func (m lastCommit) Value() Value { return IntValue(m.days()) }

func (m lastCommit) Score() Score {
	d := m.days()
	switch {
	case d < 30:
		return Good
	case d <= 180:
		return Average
	default:
		return Poor
	}
}
