package github

import (
	"context"
)

// MockClient implements the Client interface for testing
type MockClient struct {
	FetchItemsPageFunc func(ctx context.Context, projectID string, after *string) (*ItemsPage, error)
	GetProjectIDFunc   func(ctx context.Context, projectInfo *ProjectInfo) (string, error)
}

// FetchItemsPage implements the Client interface
func (c *MockClient) FetchItemsPage(ctx context.Context, projectID string, after *string) (*ItemsPage, error) {
	if c.FetchItemsPageFunc != nil {
		return c.FetchItemsPageFunc(ctx, projectID, after)
	}
	return &ItemsPage{}, nil
}

// GetProjectID implements the Client interface
func (c *MockClient) GetProjectID(ctx context.Context, projectInfo *ProjectInfo) (string, error) {
	if c.GetProjectIDFunc != nil {
		return c.GetProjectIDFunc(ctx, projectInfo)
	}
	return "", nil
}

// NewIssueItem builds a project item holding an issue, for tests
func NewIssueItem(title string, milestone string) ProjectItem {
	content := &ItemContent{TypeName: "Issue"}
	content.Issue.Title = title
	if milestone != "" {
		content.Issue.Milestone = &Milestone{Title: milestone}
	}
	return ProjectItem{Content: content}
}

// NewSingleSelect builds a single select value, for tests
func NewSingleSelect(name string) *SingleSelectValue {
	v := &SingleSelectValue{}
	v.SingleSelect.Name = name
	return v
}

// NewNumber builds a number value, for tests
func NewNumber(n float64) *NumberValue {
	v := &NumberValue{}
	v.NumberField.Number = &n
	return v
}

// NewDate builds a date value, for tests
func NewDate(date string) *DateValue {
	v := &DateValue{}
	v.DateField.Date = date
	return v
}

// NewText builds a text value, for tests
func NewText(text string) *TextValue {
	v := &TextValue{}
	v.TextField.Text = text
	return v
}
