package repo

import (
	"slices"
	"time"
)

// Entry types reported by the contents API.
const (
	EntryFile = "file"
	EntryDir  = "dir"
)

// Metadata is the subset of repository metadata rely reads. Absent fields
// decode to their zero value.
type Metadata struct {
	Owner           string
	Name            string
	Description     string
	StargazersCount int
	ForksCount      int
	WatchersCount   int
	OpenIssuesCount int
	Archived        bool
	Disabled        bool
	HasLicense      bool
	License         string // SPDX id when known
	PushedAt        time.Time
}

// Entry is one item of the root directory listing.
type Entry struct {
	Path string
	Type string
	Size int
}

// Snapshot is everything a scoring request knows about one repository.
// It is built once per request by Fetch and shared read-only by every metric.
type Snapshot struct {
	id          Identifier
	metadata    Metadata
	contents    []Entry
	evaluatedAt time.Time
}

// NewSnapshot bundles fetched data into a snapshot. evaluatedAt is the instant
// time-relative metrics measure against.
func NewSnapshot(id Identifier, md Metadata, contents []Entry, evaluatedAt time.Time) *Snapshot {
	return &Snapshot{
		id:          id,
		metadata:    md,
		contents:    slices.Clone(contents),
		evaluatedAt: evaluatedAt.UTC(),
	}
}

// Identifier returns the caller-supplied repository identifier.
func (s *Snapshot) Identifier() Identifier { return s.id }

// Metadata returns a copy of the repository metadata.
func (s *Snapshot) Metadata() Metadata { return s.metadata }

// EvaluatedAt returns the evaluation instant.
func (s *Snapshot) EvaluatedAt() time.Time { return s.evaluatedAt }

// EachEntry calls fn for every root entry until fn returns false.
func (s *Snapshot) EachEntry(fn func(Entry) bool) {
	for _, e := range s.contents {
		if !fn(e) {
			return
		}
	}
}
