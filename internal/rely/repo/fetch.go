package repo

import (
	"context"
	"fmt"
	"time"
)

// Fetcher reads repository data from the forge API.
type Fetcher interface {
	GetRepository(ctx context.Context, owner, name string) (*Metadata, error)
	GetRootContents(ctx context.Context, md *Metadata) ([]Entry, error)
}

// Fetch issues the metadata read followed by the root listing read and bundles
// both into a snapshot. Errors from the fetcher are returned wrapped, never
// swallowed, and no partial snapshot is produced.
func Fetch(ctx context.Context, f Fetcher, id Identifier, evaluatedAt time.Time) (*Snapshot, error) {
	md, err := f.GetRepository(ctx, id.Owner, id.Name)
	if err != nil {
		return nil, fmt.Errorf("fetching repository %s: %w", id, err)
	}
	if md == nil {
		return nil, fmt.Errorf("fetching repository %s: empty response", id)
	}

	contents, err := f.GetRootContents(ctx, md)
	if err != nil {
		return nil, fmt.Errorf("fetching root contents of %s: %w", id, err)
	}

	return NewSnapshot(id, *md, contents, evaluatedAt), nil
}
