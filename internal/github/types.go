package github

// ItemsPageSize is the number of project items requested per page
const ItemsPageSize = 100

// ProjectInfo contains the parsed information from a GitHub project URL
type ProjectInfo struct {
	OwnerType     OwnerType
	OwnerLogin    string
	ProjectNumber int
}

// OwnerType represents the type of project owner (user or organization)
type OwnerType int

const (
	// OwnerTypeUser represents a user-owned project
	OwnerTypeUser OwnerType = iota
	// OwnerTypeOrg represents an organization-owned project
	OwnerTypeOrg
)

// PageInfo is the cursor state returned with every page of items
type PageInfo struct {
	HasNextPage bool
	EndCursor   string
}

// ItemsPage is one page of items of a project
type ItemsPage struct {
	ProjectTitle string
	Items        []ProjectItem
	PageInfo     PageInfo
}

// GraphQL query types for GitHub's API
type (
	// ProjectItem represents an item of a ProjectV2. Content is nil when the
	// item is redacted or not visible to the token.
	ProjectItem struct {
		Content *ItemContent
	}

	// ItemContent is the content union of a project item. Only issues carry data.
	ItemContent struct {
		TypeName string `graphql:"__typename"`
		Issue    Issue  `graphql:"... on Issue"`
	}

	// Issue holds the issue attributes exported to the sheet
	Issue struct {
		Title     string
		Number    int
		URL       string
		Milestone *Milestone
		Assignees struct {
			Nodes []Actor
		} `graphql:"assignees(first: 10)"`
		Labels struct {
			Nodes []Label
		} `graphql:"labels(first: 10)"`
		ProjectItems struct {
			Nodes []ItemFieldValues
		} `graphql:"projectItems(first: 100, includeArchived: false)"`
	}

	// Milestone of an issue
	Milestone struct {
		Title string
	}

	// Actor is an assignee
	Actor struct {
		Login string
	}

	// Label attached to an issue
	Label struct {
		Name string
	}

	// ItemFieldValues are the custom field values of one project item the
	// issue belongs to, looked up by field name.
	ItemFieldValues struct {
		Project struct {
			ID string
		}
		Status            *SingleSelectValue `graphql:"status: fieldValueByName(name: \"Status\")"`
		SubIssuesProgress *NumberValue       `graphql:"subIssuesProgress: fieldValueByName(name: \"Sub-issues progress\")"`
		SizeBack          *NumberValue       `graphql:"sizeBack: fieldValueByName(name: \"Size back\")"`
		SizeFront         *NumberValue       `graphql:"sizeFront: fieldValueByName(name: \"Size front\")"`
		SizeQA            *NumberValue       `graphql:"sizeQA: fieldValueByName(name: \"Size QA\")"`
		Type              *SingleSelectValue `graphql:"type: fieldValueByName(name: \"Type\")"`
		StartedAt         *DateValue         `graphql:"startedAt: fieldValueByName(name: \"Started At\")"`
		Forecast          *DateValue         `graphql:"forecast: fieldValueByName(name: \"Forecast\")"`
		Priority          *SingleSelectValue `graphql:"priority: fieldValueByName(name: \"Priority\")"`
		Version           *SingleSelectValue `graphql:"version: fieldValueByName(name: \"Version\")"`
		Quarter           *SingleSelectValue `graphql:"quarter: fieldValueByName(name: \"Quarter\")"`
		Impediment        *SingleSelectValue `graphql:"impediment: fieldValueByName(name: \"Impediment\")"`
		TrackedBy         *SingleSelectValue `graphql:"trackedBy: fieldValueByName(name: \"Tracked by\")"`
		ParentIssue       *TextValue         `graphql:"parentIssue: fieldValueByName(name: \"Parent issue\")"`
	}

	// SingleSelectValue is a single select field value
	SingleSelectValue struct {
		SingleSelect struct {
			Name string
		} `graphql:"... on ProjectV2ItemFieldSingleSelectValue"`
	}

	// NumberValue is a number field value
	NumberValue struct {
		NumberField struct {
			Number *float64
		} `graphql:"... on ProjectV2ItemFieldNumberValue"`
	}

	// DateValue is a date field value (YYYY-MM-DD)
	DateValue struct {
		DateField struct {
			Date string
		} `graphql:"... on ProjectV2ItemFieldDateValue"`
	}

	// TextValue is a text field value
	TextValue struct {
		TextField struct {
			Text string
		} `graphql:"... on ProjectV2ItemFieldTextValue"`
	}
)

// Name returns the selected option name, or "" when v is nil
func (v *SingleSelectValue) Name() string {
	if v == nil {
		return ""
	}
	return v.SingleSelect.Name
}

// Number returns the numeric value and whether one is set
func (v *NumberValue) Number() (float64, bool) {
	if v == nil || v.NumberField.Number == nil {
		return 0, false
	}
	return *v.NumberField.Number, true
}

// Date returns the date string, or "" when v is nil
func (v *DateValue) Date() string {
	if v == nil {
		return ""
	}
	return v.DateField.Date
}

// Text returns the text value, or "" when v is nil
func (v *TextValue) Text() string {
	if v == nil {
		return ""
	}
	return v.TextField.Text
}
