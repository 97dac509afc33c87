package fetch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/naag/gh-project-sheet/internal/github"
)

// ProjectResult holds the issues fetched for one project
type ProjectResult struct {
	ProjectID    string
	ProjectTitle string
	Issues       []github.ProjectItem
}

// Fetcher collects every item of a project, optionally filtered by sprint
type Fetcher struct {
	src      PageSource
	maxPages int
}

// NewFetcher creates a fetcher reading pages from src. maxPages bounds the
// number of pages read per project.
func NewFetcher(src PageSource, maxPages int) *Fetcher {
	return &Fetcher{src: src, maxPages: maxPages}
}

// FetchProject returns all items of the project. When milestone is not empty
// only issues in the milestone "Sprint <milestone>" are kept.
func (f *Fetcher) FetchProject(ctx context.Context, projectID, milestone string) (*ProjectResult, error) {
	result := &ProjectResult{ProjectID: projectID}

	for page, err := range Pages(ctx, f.src, projectID, f.maxPages) {
		if err != nil {
			return nil, fmt.Errorf("failed to fetch project %s: %w", projectID, err)
		}

		if page.ProjectTitle != "" {
			result.ProjectTitle = page.ProjectTitle
		}

		items := page.Items
		if milestone != "" {
			items = FilterByMilestone(items, milestone)
			slog.Debug("filtered page by milestone",
				"project", projectID,
				"milestone", MilestoneTitle(milestone),
				"items", len(page.Items),
				"kept", len(items),
			)
		}
		result.Issues = append(result.Issues, items...)
	}

	return result, nil
}

// MilestoneTitle returns the milestone title matched for a sprint number
func MilestoneTitle(milestone string) string {
	return "Sprint " + milestone
}

// FilterByMilestone keeps the items whose issue milestone title is exactly
// "Sprint <milestone>". Items without content or milestone are dropped.
func FilterByMilestone(items []github.ProjectItem, milestone string) []github.ProjectItem {
	title := MilestoneTitle(milestone)
	kept := make([]github.ProjectItem, 0, len(items))
	for _, item := range items {
		if item.Content == nil || item.Content.Issue.Milestone == nil {
			continue
		}
		if item.Content.Issue.Milestone.Title == title {
			kept = append(kept, item)
		}
	}
	return kept
}
