package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	md          *Metadata
	contents    []Entry
	repoErr     error
	contentsErr error

	repoCalls     int
	contentsCalls int
	contentsFor   *Metadata
}

func (f *fakeFetcher) GetRepository(_ context.Context, owner, name string) (*Metadata, error) {
	f.repoCalls++
	if f.repoErr != nil {
		return nil, f.repoErr
	}
	md := *f.md
	md.Owner, md.Name = owner, name
	return &md, nil
}

func (f *fakeFetcher) GetRootContents(_ context.Context, md *Metadata) ([]Entry, error) {
	f.contentsCalls++
	f.contentsFor = md
	if f.contentsErr != nil {
		return nil, f.contentsErr
	}
	return f.contents, nil
}

var evaluatedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestFetch(t *testing.T) {
	f := &fakeFetcher{
		md:       &Metadata{StargazersCount: 42},
		contents: []Entry{{Path: "README.md", Type: EntryFile, Size: 120}},
	}
	id := Identifier{Owner: "octo", Name: "demo"}

	snap, err := Fetch(context.Background(), f, id, evaluatedAt)
	require.NoError(t, err)

	assert.Equal(t, 1, f.repoCalls)
	assert.Equal(t, 1, f.contentsCalls)
	assert.Equal(t, "octo", f.contentsFor.Owner)
	assert.Equal(t, "demo", f.contentsFor.Name)

	assert.Equal(t, id, snap.Identifier())
	assert.Equal(t, 42, snap.Metadata().StargazersCount)
	assert.Equal(t, evaluatedAt, snap.EvaluatedAt())
	var paths []string
	snap.EachEntry(func(e Entry) bool { paths = append(paths, e.Path); return true })
	assert.Equal(t, []string{"README.md"}, paths)
}

func TestFetchErrors(t *testing.T) {
	boom := errors.New("boom")
	id := Identifier{Owner: "octo", Name: "demo"}

	t.Run("metadata", func(t *testing.T) {
		f := &fakeFetcher{repoErr: boom}
		snap, err := Fetch(context.Background(), f, id, evaluatedAt)
		assert.Nil(t, snap)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, f.contentsCalls)
	})

	t.Run("contents", func(t *testing.T) {
		f := &fakeFetcher{md: &Metadata{}, contentsErr: boom}
		snap, err := Fetch(context.Background(), f, id, evaluatedAt)
		assert.Nil(t, snap)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, f.repoCalls)
	})
}

func TestSnapshotIsolated(t *testing.T) {
	contents := []Entry{{Path: "README.md", Type: EntryFile, Size: 1}}
	snap := NewSnapshot(Identifier{Owner: "o", Name: "n"}, Metadata{}, contents, evaluatedAt)

	contents[0].Path = "changed"

	var seen []string
	snap.EachEntry(func(e Entry) bool { seen = append(seen, e.Path); return false })
	assert.Equal(t, []string{"README.md"}, seen)
}
