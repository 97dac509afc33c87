package github

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// checkTransport turns non-200 responses into *TransportError and responses
// carrying a GraphQL errors array into *APIError before the GraphQL client
// decodes them.
type checkTransport struct {
	transport http.RoundTripper
}

func (c *checkTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := c.transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var envelope struct {
		Errors []GraphQLError `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		return nil, &APIError{Errors: envelope.Errors}
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
