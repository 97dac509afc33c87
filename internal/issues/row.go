package issues

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/naag/gh-project-sheet/internal/fetch"
	"github.com/naag/gh-project-sheet/internal/github"
)

// Row is one sheet row
type Row []string

// Header is the fixed first row of the sheet
var Header = Row{
	"Team", "Title", "Assignees", "Status", "Labels", "Milestone", "Quarter", "Started At",
	"Forecast", "Size back", "Size front", "Size QA", "Type", "Priority", "Version",
	"Impediment", "Tracked by", "Parent issue", "Sub-issues progress",
}

var (
	// ErrNoContent is returned for items whose content is not visible
	ErrNoContent = errors.New("item has no content")
	// ErrNotAnIssue is returned for draft issues and pull requests
	ErrNotAnIssue = errors.New("item is not an issue")
)

// RecordError reports an item that could not be turned into a row
type RecordError struct {
	Title string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("failed to process issue %q: %v", e.Title, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// RowResult is either a row or the reason the item failed
type RowResult struct {
	Row Row
	Err error
}

// Failed reports whether the item could not be processed
func (r RowResult) Failed() bool {
	return r.Err != nil
}

// Rows returns the rows of a batch; failed items become empty rows
func Rows(results []RowResult) []Row {
	rows := make([]Row, len(results))
	for i, result := range results {
		if result.Failed() {
			rows[i] = Row{}
			continue
		}
		rows[i] = result.Row
	}
	return rows
}

// Normalize turns a project item into a row for the given team (project
// title). It never panics: failures are logged and returned as a RecordError.
func Normalize(item github.ProjectItem, team string) (result RowResult) {
	title := ""
	if item.Content != nil {
		title = item.Content.Issue.Title
	}

	defer func() {
		if r := recover(); r != nil {
			result = failed(title, fmt.Errorf("panic: %v", r))
		}
	}()

	if item.Content == nil {
		return failed(title, ErrNoContent)
	}
	if item.Content.TypeName != "Issue" {
		return failed(title, fmt.Errorf("%w: %s", ErrNotAnIssue, item.Content.TypeName))
	}

	issue := &item.Content.Issue
	fields := ExtractCustomFields(issue)

	milestone := ""
	if issue.Milestone != nil {
		milestone = issue.Milestone.Title
	}

	row := Row{
		team,
		issue.Title,
		joinAssignees(issue.Assignees.Nodes),
		fields.Status,
		joinLabels(issue.Labels.Nodes),
		milestone,
		fields.Quarter,
		fields.StartedAt,
		fields.Forecast,
		fields.SizeBack,
		fields.SizeFront,
		fields.SizeQA,
		fields.Type,
		fields.Priority,
		fields.Version,
		fields.Impediment,
		fields.TrackedBy,
		fields.ParentIssue,
		fields.SubIssuesProgress,
	}

	slog.Debug("processed issue", "issue", issue.Title, "team", team)
	return RowResult{Row: row}
}

// NormalizeAll normalizes every issue of every project, in project order then
// issue order. The project title is used as the team.
func NormalizeAll(projects []*fetch.ProjectResult) []RowResult {
	var results []RowResult
	for _, project := range projects {
		for _, item := range project.Issues {
			results = append(results, Normalize(item, project.ProjectTitle))
		}
	}
	return results
}

func failed(title string, err error) RowResult {
	recordErr := &RecordError{Title: title, Err: err}
	slog.Warn("skipping issue", "issue", title, "error", err)
	return RowResult{Row: Row{}, Err: recordErr}
}

func joinAssignees(actors []github.Actor) string {
	logins := make([]string, len(actors))
	for i, actor := range actors {
		logins[i] = actor.Login
	}
	return strings.Join(logins, ", ")
}

func joinLabels(labels []github.Label) string {
	names := make([]string, len(labels))
	for i, label := range labels {
		names[i] = label.Name
	}
	return strings.Join(names, ", ")
}
