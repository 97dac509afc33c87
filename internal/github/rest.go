package github

import (
	"context"
	"fmt"
	"net/http"

	gogithub "github.com/google/go-github/v41/github"
)

// RESTEndpoint returns the REST API base URL for a GitHub domain
func RESTEndpoint(domain string) string {
	if domain == "" || domain == "github.com" {
		return "https://api.github.com/"
	}
	return fmt.Sprintf("https://%s/api/v3/", domain)
}

// VerifyToken checks the token carried by httpClient against the REST API
// and returns the login of the authenticated user.
func VerifyToken(ctx context.Context, httpClient *http.Client, baseURL string) (string, error) {
	client, err := gogithub.NewEnterpriseClient(baseURL, baseURL, httpClient)
	if err != nil {
		return "", fmt.Errorf("invalid github api url: %w", err)
	}

	user, resp, err := client.Users.Get(ctx, "")
	if err != nil {
		if resp != nil {
			return "", fmt.Errorf("error testing github token (status %d): %w", resp.StatusCode, err)
		}
		return "", fmt.Errorf("error testing github token: %w", err)
	}

	return user.GetLogin(), nil
}
