package metric

import "github.com/build-flow-labs/rely/internal/rely/repo"

// starCount: how many stars does the repo have?
type starCount struct{ snap *repo.Snapshot }

func newStarCount(s *repo.Snapshot) Metric { return starCount{s} }

func (m starCount) count() int   { return m.snap.Metadata().StargazersCount }
func (m starCount) Value() Value { return IntValue(m.count()) }
func (m starCount) Score() Score { return band(m.count(), 50, 500) }

// forkCount: how many forks does the repo have?
type forkCount struct{ snap *repo.Snapshot }

func newForkCount(s *repo.Snapshot) Metric { return forkCount{s} }

func (m forkCount) count() int   { return m.snap.Metadata().ForksCount }
func (m forkCount) Value() Value { return IntValue(m.count()) }
func (m forkCount) Score() Score { return band(m.count(), 20, 200) }

// watcherCount: how many watchers does the repo have?
type watcherCount struct{ snap *repo.Snapshot }

func newWatcherCount(s *repo.Snapshot) Metric { return watcherCount{s} }

func (m watcherCount) count() int   { return m.snap.Metadata().WatchersCount }
func (m watcherCount) Value() Value { return IntValue(m.count()) }
func (m watcherCount) Score() Score { return band(m.count(), 20, 200) }

// openIssueCount: how many open issues does the repo have? More open issues
// count as engagement, so a higher count scores better.
type openIssueCount struct{ snap *repo.Snapshot }

func newOpenIssueCount(s *repo.Snapshot) Metric { return openIssueCount{s} }

func (m openIssueCount) count() int   { return m.snap.Metadata().OpenIssuesCount }
func (m openIssueCount) Value() Value { return IntValue(m.count()) }
func (m openIssueCount) Score() Score { return band(m.count(), 5, 20) }
