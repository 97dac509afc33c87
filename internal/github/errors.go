package github

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProjectNotFound is returned when a node ID does not resolve to a ProjectV2
var ErrProjectNotFound = errors.New("project not found")

// TransportError is returned when the API answers with a non-200 status
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("graphql request failed: %d %s", e.StatusCode, e.Body)
}

// GraphQLError is one entry of the "errors" array of a GraphQL response
type GraphQLError struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// APIError is returned when a response carries a GraphQL errors payload,
// regardless of the HTTP status
type APIError struct {
	Errors []GraphQLError
}

func (e *APIError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, gqlErr := range e.Errors {
		msgs[i] = gqlErr.Message
	}
	return "graphql API returned errors: " + strings.Join(msgs, "; ")
}
