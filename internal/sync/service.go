// Package sync imports the issues of several projects into one sheet.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/naag/gh-project-sheet/internal/fetch"
	"github.com/naag/gh-project-sheet/internal/github"
	"github.com/naag/gh-project-sheet/internal/sheet"
)

// OutcomeKind tells whether a run imported anything
type OutcomeKind int

const (
	// OutcomeNoIssues means no project had a matching issue
	OutcomeNoIssues OutcomeKind = iota
	// OutcomeImported means at least one issue was imported
	OutcomeImported
)

// Outcome is the result of a run
type Outcome struct {
	Kind     OutcomeKind
	Total    int
	Projects []*fetch.ProjectResult
	Report   sheet.Report
}

// Message returns the text shown to the user when the run is done
func (o *Outcome) Message() string {
	if o.Kind == OutcomeImported {
		return fmt.Sprintf("Issues imported successfully! Total issues: %d", o.Total)
	}
	return "No issues found."
}

// Service fetches projects and merges their issues into a sheet
type Service struct {
	client   github.Client
	fetcher  *fetch.Fetcher
	merger   *sheet.Merger
	domain   string
	maxPages int
}

// Option configures a Service
type Option func(*Service)

// WithMaxPages bounds the pages read per project
func WithMaxPages(n int) Option {
	return func(s *Service) {
		s.maxPages = n
	}
}

// WithDomain sets the GitHub host project URLs are expected on
func WithDomain(domain string) Option {
	return func(s *Service) {
		s.domain = domain
	}
}

// NewService creates a new sync service
func NewService(client github.Client, merger *sheet.Merger, opts ...Option) *Service {
	s := &Service{
		client:   client,
		merger:   merger,
		domain:   "github.com",
		maxPages: fetch.DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.fetcher = fetch.NewFetcher(client, s.maxPages)
	return s
}

// ParseProjectIDs splits a comma separated list of project references.
// Entries are trimmed and empty entries dropped.
func ParseProjectIDs(list string) []string {
	var ids []string
	for _, id := range strings.Split(list, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// ResolveProjectID returns the node ID for a project reference. Node IDs are
// returned as is, project URLs are looked up.
func (s *Service) ResolveProjectID(ctx context.Context, ref string) (string, error) {
	if !github.IsProjectURL(ref) {
		return ref, nil
	}

	info, err := github.ParseProjectURL(ref, s.domain)
	if err != nil {
		return "", fmt.Errorf("invalid project URL %s: %w", ref, err)
	}
	id, err := s.client.GetProjectID(ctx, info)
	if err != nil {
		return "", fmt.Errorf("failed to get project ID for %s: %w", ref, err)
	}
	slog.Debug("resolved project", "url", ref, "id", id)
	return id, nil
}

// Collect fetches every project in order. Projects without matching issues
// are kept in the result. The first failing project aborts the run.
func (s *Service) Collect(ctx context.Context, refs []string, milestone string) ([]*fetch.ProjectResult, int, error) {
	results := make([]*fetch.ProjectResult, 0, len(refs))
	total := 0

	for _, ref := range refs {
		id, err := s.ResolveProjectID(ctx, ref)
		if err != nil {
			return nil, 0, err
		}

		slog.Info("fetching project", "project", id, "milestone", milestone)
		result, err := s.fetcher.FetchProject(ctx, id, milestone)
		if err != nil {
			return nil, 0, err
		}
		slog.Info("fetched project",
			"project", id,
			"title", result.ProjectTitle,
			"issues", len(result.Issues),
		)

		results = append(results, result)
		total += len(result.Issues)
	}

	return results, total, nil
}

// Run collects the projects and merges their issues into the sheet. The
// merge also runs when no issue was found.
func (s *Service) Run(ctx context.Context, refs []string, milestone string) (*Outcome, error) {
	projects, total, err := s.Collect(ctx, refs, milestone)
	if err != nil {
		return nil, err
	}

	report, err := s.merger.Merge(ctx, projects)
	if err != nil {
		return nil, fmt.Errorf("failed to merge issues: %w", err)
	}

	outcome := &Outcome{
		Kind:     OutcomeNoIssues,
		Total:    total,
		Projects: projects,
		Report:   report,
	}
	if total > 0 {
		outcome.Kind = OutcomeImported
	}
	return outcome, nil
}
