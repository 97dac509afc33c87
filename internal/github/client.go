package github

import (
	"context"
)

// Client defines the interface for reading project items from GitHub
type Client interface {
	// FetchItemsPage retrieves one page of items of the ProjectV2 with the given node ID,
	// starting after the given cursor (nil for the first page)
	FetchItemsPage(ctx context.Context, projectID string, after *string) (*ItemsPage, error)

	// GetProjectID retrieves the globally unique node ID for a project
	GetProjectID(ctx context.Context, projectInfo *ProjectInfo) (string, error)
}
