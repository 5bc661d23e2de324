package wikijs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hpungsan/linkboard/internal/errors"
)

// DefaultTimeout bounds a single GraphQL request. There is no retry; one
// attempt per operation.
const DefaultTimeout = 30 * time.Second

// Client is a thin GraphQL-over-HTTPS client for a wiki.js instance.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// NewClient creates a client for the given GraphQL endpoint with a bearer
// token. The token is trusted as-is; session management happens elsewhere.
func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: DefaultTimeout},
	}
}

// NewClientWithTimeout creates a client with an explicit request timeout.
func NewClientWithTimeout(endpoint, token string, timeout time.Duration) *Client {
	c := NewClient(endpoint, token)
	c.http.Timeout = timeout
	return c
}

// graphqlRequest is the standard GraphQL POST body.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlError is a single entry of a GraphQL error list.
type graphqlError struct {
	Message string `json:"message"`
}

// Do executes a query or mutation and decodes the "data" object into out.
// Transport-level failures (non-2xx, malformed body) and application-level
// failures (GraphQL error list) are both surfaced as BoardErrors.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return errors.NewInternal(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.NewInternal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewTransport(fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewTransport(fmt.Sprintf("HTTP %d from %s", resp.StatusCode, c.endpoint))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.NewTransport(fmt.Sprintf("malformed response body: %v", err))
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		return errors.NewRemote(messages)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return errors.NewTransport(fmt.Sprintf("malformed data payload: %v", err))
		}
	}
	return nil
}
