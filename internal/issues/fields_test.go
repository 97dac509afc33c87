package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naag/gh-project-sheet/internal/github"
)

func fullFieldValues() github.ItemFieldValues {
	return github.ItemFieldValues{
		Status:            github.NewSingleSelect("Doing"),
		SubIssuesProgress: github.NewNumber(66.5),
		SizeBack:          github.NewNumber(3),
		SizeFront:         github.NewNumber(5),
		SizeQA:            github.NewNumber(1),
		StartedAt:         github.NewDate("2024-05-01"),
		Forecast:          github.NewDate("2024-05-20"),
		Priority:          github.NewSingleSelect("High"),
		Version:           github.NewSingleSelect("v2"),
		Quarter:           github.NewSingleSelect("Q2"),
		Type:              github.NewSingleSelect("Feature"),
		Impediment:        github.NewSingleSelect("None"),
		TrackedBy:         github.NewSingleSelect("Ops"),
		ParentIssue:       github.NewText("acme/web#1"),
	}
}

func TestExtractCustomFieldsNoProjectItems(t *testing.T) {
	issue := &github.Issue{Title: "orphan"}

	fields := ExtractCustomFields(issue)

	assert.Equal(t, CustomFieldSet{}, fields)
	for _, name := range FieldNames() {
		value, ok := fields.Get(name)
		assert.True(t, ok, name)
		assert.Equal(t, "", value, name)
	}
}

func TestExtractCustomFieldsAllSet(t *testing.T) {
	issue := &github.Issue{Title: "full"}
	issue.ProjectItems.Nodes = []github.ItemFieldValues{fullFieldValues()}

	fields := ExtractCustomFields(issue)

	assert.Equal(t, CustomFieldSet{
		Status:            "Doing",
		SubIssuesProgress: "66.5",
		SizeBack:          "3",
		SizeFront:         "5",
		SizeQA:            "1",
		StartedAt:         "2024-05-01",
		Forecast:          "2024-05-20",
		Priority:          "High",
		Version:           "v2",
		Quarter:           "Q2",
		Type:              "Feature",
		Impediment:        "None",
		TrackedBy:         "Ops",
		ParentIssue:       "acme/web#1",
	}, fields)
}

func TestExtractCustomFieldsMissingOneValue(t *testing.T) {
	values := fullFieldValues()
	values.Priority = nil
	issue := &github.Issue{Title: "partial"}
	issue.ProjectItems.Nodes = []github.ItemFieldValues{values}

	fields := ExtractCustomFields(issue)

	assert.Equal(t, "", fields.Priority)
	assert.Equal(t, "Doing", fields.Status)
	assert.Equal(t, "v2", fields.Version)
	assert.Equal(t, "acme/web#1", fields.ParentIssue)
}

func TestExtractCustomFieldsReadsFirstProjectItemOnly(t *testing.T) {
	other := github.ItemFieldValues{Status: github.NewSingleSelect("Done")}
	issue := &github.Issue{Title: "linked twice"}
	issue.ProjectItems.Nodes = []github.ItemFieldValues{fullFieldValues(), other}

	fields := ExtractCustomFields(issue)

	assert.Equal(t, "Doing", fields.Status)
}

func TestExtractCustomFieldsZeroNumber(t *testing.T) {
	issue := &github.Issue{Title: "zero"}
	issue.ProjectItems.Nodes = []github.ItemFieldValues{{SubIssuesProgress: github.NewNumber(0)}}

	fields := ExtractCustomFields(issue)

	assert.Equal(t, "0", fields.SubIssuesProgress)
}

func TestFieldNames(t *testing.T) {
	names := FieldNames()
	require.Len(t, names, 14)
	assert.ElementsMatch(t, []string{
		"Status", "Sub-issues progress", "Size back", "Size front", "Size QA", "Started At",
		"Forecast", "Priority", "Version", "Quarter", "Type", "Impediment", "Tracked by", "Parent issue",
	}, names)

	var fields CustomFieldSet
	_, ok := fields.Get("Estimate")
	assert.False(t, ok)
}
