package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// ClientOptions configures the HTTP clients talking to GitHub
type ClientOptions struct {
	Token string
	// Domain is github.com or a GitHub Enterprise host
	Domain string
	// Endpoint overrides the GraphQL endpoint derived from Domain
	Endpoint string
	Timeout  time.Duration
	// Debug receives request/response dumps when set
	Debug io.Writer
}

// GraphQLClient implements the Client interface using GitHub's GraphQL API
type GraphQLClient struct {
	client *githubv4.Client
}

// GraphQLEndpoint returns the GraphQL endpoint for a GitHub domain
func GraphQLEndpoint(domain string) string {
	if domain == "" || domain == "github.com" {
		return "https://api.github.com/graphql"
	}
	return fmt.Sprintf("https://%s/api/graphql", domain)
}

// NewHTTPClient creates an HTTP client authenticating with the bearer token
func NewHTTPClient(ctx context.Context, opts ClientOptions) *http.Client {
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: opts.Token},
	)
	httpClient := oauth2.NewClient(ctx, src)
	httpClient.Timeout = opts.Timeout

	if opts.Debug != nil {
		httpClient.Transport = &debugTransport{
			transport: httpClient.Transport,
			out:       opts.Debug,
		}
	}
	return httpClient
}

// NewGraphQLClient creates a new GitHub GraphQL client
func NewGraphQLClient(opts ClientOptions) (*GraphQLClient, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("github token not set")
	}

	httpClient := NewHTTPClient(context.Background(), opts)
	httpClient.Transport = &checkTransport{transport: httpClient.Transport}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = GraphQLEndpoint(opts.Domain)
	}

	client := githubv4.NewEnterpriseClient(endpoint, httpClient)
	return &GraphQLClient{client: client}, nil
}

// FetchItemsPage implements the Client interface
func (c *GraphQLClient) FetchItemsPage(ctx context.Context, projectID string, after *string) (*ItemsPage, error) {
	var query struct {
		Node struct {
			TypeName  string `graphql:"__typename"`
			ProjectV2 struct {
				Title string
				Items struct {
					Nodes    []ProjectItem
					PageInfo struct {
						HasNextPage bool
						EndCursor   *githubv4.String
					}
				} `graphql:"items(first: $first, after: $after)"`
			} `graphql:"... on ProjectV2"`
		} `graphql:"node(id: $id)"`
	}

	variables := map[string]interface{}{
		"id":    githubv4.ID(projectID),
		"first": githubv4.Int(ItemsPageSize),
		"after": (*githubv4.String)(nil),
	}
	if after != nil {
		variables["after"] = githubv4.NewString(githubv4.String(*after))
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, fmt.Errorf("failed to query project items: %w", err)
	}

	if query.Node.TypeName != "ProjectV2" {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}

	project := query.Node.ProjectV2
	page := &ItemsPage{
		ProjectTitle: project.Title,
		Items:        project.Items.Nodes,
		PageInfo: PageInfo{
			HasNextPage: project.Items.PageInfo.HasNextPage,
		},
	}
	if project.Items.PageInfo.EndCursor != nil {
		page.PageInfo.EndCursor = string(*project.Items.PageInfo.EndCursor)
	}

	slog.Debug("fetched items page",
		"project", projectID,
		"title", page.ProjectTitle,
		"items", len(page.Items),
		"has_next_page", page.PageInfo.HasNextPage,
	)
	return page, nil
}

// GetProjectID implements the Client interface
func (c *GraphQLClient) GetProjectID(ctx context.Context, projectInfo *ProjectInfo) (string, error) {
	var (
		id  string
		err error
	)

	switch projectInfo.OwnerType {
	case OwnerTypeUser:
		id, err = c.getUserProjectID(ctx, projectInfo.OwnerLogin, projectInfo.ProjectNumber)
	case OwnerTypeOrg:
		id, err = c.getOrgProjectID(ctx, projectInfo.OwnerLogin, projectInfo.ProjectNumber)
	default:
		return "", fmt.Errorf("invalid owner type")
	}
	if err != nil {
		return "", err
	}

	if id == "" {
		return "", fmt.Errorf("%w: %s/%d", ErrProjectNotFound, projectInfo.OwnerLogin, projectInfo.ProjectNumber)
	}
	return id, nil
}

func (c *GraphQLClient) getOrgProjectID(ctx context.Context, orgName string, projectNumber int) (string, error) {
	var query struct {
		Organization struct {
			ProjectV2 struct {
				ID string
			} `graphql:"projectV2(number: $projectNumber)"`
		} `graphql:"organization(login: $login)"`
	}

	variables := map[string]interface{}{
		"login":         githubv4.String(orgName),
		"projectNumber": githubv4.Int(projectNumber),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return "", fmt.Errorf("failed to query organization project: %w", err)
	}

	return query.Organization.ProjectV2.ID, nil
}

func (c *GraphQLClient) getUserProjectID(ctx context.Context, username string, projectNumber int) (string, error) {
	var query struct {
		User struct {
			ProjectV2 struct {
				ID string
			} `graphql:"projectV2(number: $projectNumber)"`
		} `graphql:"user(login: $login)"`
	}

	variables := map[string]interface{}{
		"login":         githubv4.String(username),
		"projectNumber": githubv4.Int(projectNumber),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return "", fmt.Errorf("failed to query user project: %w", err)
	}

	return query.User.ProjectV2.ID, nil
}
