// Package issues flattens project items into sheet rows.
package issues

import (
	"log/slog"
	"strconv"

	"github.com/naag/gh-project-sheet/internal/github"
)

// Custom field names read from an issue's project item
const (
	FieldStatus            = "Status"
	FieldSubIssuesProgress = "Sub-issues progress"
	FieldSizeBack          = "Size back"
	FieldSizeFront         = "Size front"
	FieldSizeQA            = "Size QA"
	FieldStartedAt         = "Started At"
	FieldForecast          = "Forecast"
	FieldPriority          = "Priority"
	FieldVersion           = "Version"
	FieldQuarter           = "Quarter"
	FieldType              = "Type"
	FieldImpediment        = "Impediment"
	FieldTrackedBy         = "Tracked by"
	FieldParentIssue       = "Parent issue"
)

// CustomFieldSet holds the custom field values of an issue. Every field is
// "" when the issue has no value for it.
type CustomFieldSet struct {
	Status            string
	SubIssuesProgress string
	SizeBack          string
	SizeFront         string
	SizeQA            string
	StartedAt         string
	Forecast          string
	Priority          string
	Version           string
	Quarter           string
	Type              string
	Impediment        string
	TrackedBy         string
	ParentIssue       string
}

// fieldRule maps a field name to where its value is read from and stored.
type fieldRule struct {
	name    string
	extract func(v *github.ItemFieldValues) string
	target  func(s *CustomFieldSet) *string
}

var fieldRules = []fieldRule{
	{FieldStatus, func(v *github.ItemFieldValues) string { return v.Status.Name() }, func(s *CustomFieldSet) *string { return &s.Status }},
	{FieldSubIssuesProgress, func(v *github.ItemFieldValues) string { return formatNumber(v.SubIssuesProgress) }, func(s *CustomFieldSet) *string { return &s.SubIssuesProgress }},
	{FieldSizeBack, func(v *github.ItemFieldValues) string { return formatNumber(v.SizeBack) }, func(s *CustomFieldSet) *string { return &s.SizeBack }},
	{FieldSizeFront, func(v *github.ItemFieldValues) string { return formatNumber(v.SizeFront) }, func(s *CustomFieldSet) *string { return &s.SizeFront }},
	{FieldSizeQA, func(v *github.ItemFieldValues) string { return formatNumber(v.SizeQA) }, func(s *CustomFieldSet) *string { return &s.SizeQA }},
	{FieldStartedAt, func(v *github.ItemFieldValues) string { return v.StartedAt.Date() }, func(s *CustomFieldSet) *string { return &s.StartedAt }},
	{FieldForecast, func(v *github.ItemFieldValues) string { return v.Forecast.Date() }, func(s *CustomFieldSet) *string { return &s.Forecast }},
	{FieldPriority, func(v *github.ItemFieldValues) string { return v.Priority.Name() }, func(s *CustomFieldSet) *string { return &s.Priority }},
	{FieldVersion, func(v *github.ItemFieldValues) string { return v.Version.Name() }, func(s *CustomFieldSet) *string { return &s.Version }},
	{FieldQuarter, func(v *github.ItemFieldValues) string { return v.Quarter.Name() }, func(s *CustomFieldSet) *string { return &s.Quarter }},
	{FieldType, func(v *github.ItemFieldValues) string { return v.Type.Name() }, func(s *CustomFieldSet) *string { return &s.Type }},
	{FieldImpediment, func(v *github.ItemFieldValues) string { return v.Impediment.Name() }, func(s *CustomFieldSet) *string { return &s.Impediment }},
	{FieldTrackedBy, func(v *github.ItemFieldValues) string { return v.TrackedBy.Name() }, func(s *CustomFieldSet) *string { return &s.TrackedBy }},
	{FieldParentIssue, func(v *github.ItemFieldValues) string { return v.ParentIssue.Text() }, func(s *CustomFieldSet) *string { return &s.ParentIssue }},
}

// FieldNames returns the custom field names in extraction order
func FieldNames() []string {
	names := make([]string, len(fieldRules))
	for i, rule := range fieldRules {
		names[i] = rule.name
	}
	return names
}

// Get returns the value of the named field. ok is false for unknown names.
func (s *CustomFieldSet) Get(name string) (value string, ok bool) {
	for _, rule := range fieldRules {
		if rule.name == name {
			return *rule.target(s), true
		}
	}
	return "", false
}

// ExtractCustomFields reads the custom fields of an issue from its first
// project item. Further project items are ignored.
func ExtractCustomFields(issue *github.Issue) CustomFieldSet {
	var set CustomFieldSet
	if len(issue.ProjectItems.Nodes) == 0 {
		slog.Debug("no custom fields found", "issue", issue.Title)
		return set
	}

	values := &issue.ProjectItems.Nodes[0]
	for _, rule := range fieldRules {
		*rule.target(&set) = rule.extract(values)
	}
	return set
}

func formatNumber(v *github.NumberValue) string {
	n, ok := v.Number()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
