package github

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// IsProjectURL reports whether ref looks like a project URL rather than a node ID
func IsProjectURL(ref string) bool {
	return strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://")
}

// ParseProjectURL takes a GitHub project URL and returns the parsed ProjectInfo.
// Enterprise hosts are accepted when they match domain.
func ParseProjectURL(projectURL string, domain string) (*ProjectInfo, error) {
	u, err := url.Parse(projectURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	if domain == "" {
		domain = "github.com"
	}
	if u.Host != domain {
		return nil, fmt.Errorf("not a GitHub URL")
	}

	// Split path into components
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid project URL format")
	}

	// Check if it's an org or user project
	var ownerType OwnerType
	switch parts[0] {
	case "orgs":
		ownerType = OwnerTypeOrg
	case "users":
		ownerType = OwnerTypeUser
	default:
		return nil, fmt.Errorf("invalid owner type in URL: %s", parts[0])
	}

	// Parse project number, views like /projects/5/views/2 are allowed
	if parts[2] != "projects" {
		return nil, fmt.Errorf("invalid URL format: expected 'projects' as third component")
	}

	projectNum, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, fmt.Errorf("invalid project number: %w", err)
	}

	return &ProjectInfo{
		OwnerType:     ownerType,
		OwnerLogin:    parts[1],
		ProjectNumber: projectNum,
	}, nil
}
