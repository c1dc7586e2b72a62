package github

import (
	"context"
	"fmt"

	"github.com/build-flow-labs/rely/internal/rely/repo"
)

// GetRepository fetches repository metadata.
// Reference: https://docs.github.com/en/rest/repos/repos#get-a-repository
func (c *Client) GetRepository(ctx context.Context, owner, name string) (*repo.Metadata, error) {
	r, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, apiError(fmt.Sprintf("GET /repos/%s/%s", owner, name), resp, err)
	}

	md := &repo.Metadata{
		Owner:           r.GetOwner().GetLogin(),
		Name:            r.GetName(),
		Description:     r.GetDescription(),
		StargazersCount: r.GetStargazersCount(),
		ForksCount:      r.GetForksCount(),
		WatchersCount:   r.GetWatchersCount(),
		OpenIssuesCount: r.GetOpenIssuesCount(),
		Archived:        r.GetArchived(),
		Disabled:        r.GetDisabled(),
		HasLicense:      r.License != nil,
		License:         r.GetLicense().GetSPDXID(),
		PushedAt:        r.GetPushedAt().Time,
	}
	// Fall back to the requested identity if the payload omitted it.
	if md.Owner == "" {
		md.Owner = owner
	}
	if md.Name == "" {
		md.Name = name
	}
	return md, nil
}

// GetRootContents lists the repository's root directory.
// Reference: https://docs.github.com/en/rest/repos/contents#get-repository-content
func (c *Client) GetRootContents(ctx context.Context, md *repo.Metadata) ([]repo.Entry, error) {
	_, dir, resp, err := c.gh.Repositories.GetContents(ctx, md.Owner, md.Name, "", nil)
	if err != nil {
		return nil, apiError(fmt.Sprintf("GET /repos/%s/%s/contents", md.Owner, md.Name), resp, err)
	}

	entries := make([]repo.Entry, 0, len(dir))
	for _, item := range dir {
		if item == nil {
			continue
		}
		entries = append(entries, repo.Entry{
			Path: item.GetPath(),
			Type: item.GetType(),
			Size: item.GetSize(),
		})
	}
	return entries, nil
}
