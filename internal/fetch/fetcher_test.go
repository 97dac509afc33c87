package fetch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naag/gh-project-sheet/internal/github"
)

func TestFetchProjectAccumulatesPages(t *testing.T) {
	var cursors []*string
	client := pagedClient(3, &cursors)

	result, err := NewFetcher(client, DefaultMaxPages).FetchProject(context.Background(), "P1", "")

	require.NoError(t, err)
	assert.Equal(t, "P1", result.ProjectID)
	assert.Equal(t, "Alpha", result.ProjectTitle)
	require.Len(t, result.Issues, 3)
	assert.Equal(t, "issue 3", result.Issues[2].Content.Issue.Title)
}

func TestFetchProjectMilestoneFilter(t *testing.T) {
	pullRequest := github.ProjectItem{Content: &github.ItemContent{TypeName: "PullRequest"}}
	client := &github.MockClient{
		FetchItemsPageFunc: func(ctx context.Context, projectID string, after *string) (*github.ItemsPage, error) {
			if after == nil {
				return &github.ItemsPage{
					ProjectTitle: "Alpha",
					Items: []github.ProjectItem{
						github.NewIssueItem("match", "Sprint 356"),
						github.NewIssueItem("longer number", "Sprint 3560"),
						github.NewIssueItem("lower case", "sprint 356"),
						github.NewIssueItem("no milestone", ""),
						pullRequest,
						{},
					},
					PageInfo: github.PageInfo{HasNextPage: true, EndCursor: "c1"},
				}, nil
			}
			return &github.ItemsPage{
				ProjectTitle: "Alpha",
				Items:        []github.ProjectItem{github.NewIssueItem("second page", "Sprint 356")},
			}, nil
		},
	}

	result, err := NewFetcher(client, DefaultMaxPages).FetchProject(context.Background(), "P1", "356")

	require.NoError(t, err)
	require.Len(t, result.Issues, 2)
	assert.Equal(t, "match", result.Issues[0].Content.Issue.Title)
	assert.Equal(t, "second page", result.Issues[1].Content.Issue.Title)
}

func TestFetchProjectWithoutMilestoneKeepsEverything(t *testing.T) {
	client := &github.MockClient{
		FetchItemsPageFunc: func(ctx context.Context, projectID string, after *string) (*github.ItemsPage, error) {
			return &github.ItemsPage{
				ProjectTitle: "Alpha",
				Items: []github.ProjectItem{
					github.NewIssueItem("a", "Sprint 1"),
					github.NewIssueItem("b", ""),
					{},
				},
			}, nil
		},
	}

	result, err := NewFetcher(client, DefaultMaxPages).FetchProject(context.Background(), "P1", "")

	require.NoError(t, err)
	assert.Len(t, result.Issues, 3)
}

func TestFetchProjectEmpty(t *testing.T) {
	client := &github.MockClient{
		FetchItemsPageFunc: func(ctx context.Context, projectID string, after *string) (*github.ItemsPage, error) {
			return &github.ItemsPage{ProjectTitle: "Empty"}, nil
		},
	}

	result, err := NewFetcher(client, DefaultMaxPages).FetchProject(context.Background(), "P9", "")

	require.NoError(t, err)
	assert.Equal(t, "Empty", result.ProjectTitle)
	assert.Empty(t, result.Issues)
}

func TestFetchProjectErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "transport", err: &github.TransportError{StatusCode: 502, Body: "bad gateway"}},
		{name: "api", err: &github.APIError{Errors: []github.GraphQLError{{Message: "Could not resolve"}}}},
		{name: "not found", err: github.ErrProjectNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &github.MockClient{
				FetchItemsPageFunc: func(ctx context.Context, projectID string, after *string) (*github.ItemsPage, error) {
					return nil, tt.err
				},
			}

			result, err := NewFetcher(client, DefaultMaxPages).FetchProject(context.Background(), "P1", "")

			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err))
			assert.Contains(t, err.Error(), "P1")
		})
	}
}

func TestFilterByMilestone(t *testing.T) {
	items := []github.ProjectItem{
		github.NewIssueItem("a", "Sprint 7"),
		github.NewIssueItem("b", "Sprint 7 "),
		github.NewIssueItem("c", "Sprint 7"),
	}

	kept := FilterByMilestone(items, "7")

	require.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].Content.Issue.Title)
	assert.Equal(t, "c", kept[1].Content.Issue.Title)
}
