package phoenix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultHost is the base URL of a local Phoenix instance.
const DefaultHost = "http://localhost:6006"

// Options configure a Client.
type Options struct {
	// HTTPClient issues the requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Client talks to a Phoenix server's /graphql endpoint.
type Client struct {
	host       string
	httpClient *http.Client
}

// New creates a Client for the Phoenix server at host. An empty host falls
// back to DefaultHost.
func New(host string, optFns ...func(o *Options)) *Client {
	opts := Options{
		HTTPClient: http.DefaultClient,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if host == "" {
		host = DefaultHost
	}

	return &Client{
		host:       strings.TrimSuffix(host, "/"),
		httpClient: opts.HTTPClient,
	}
}

// Host returns the base URL this client targets.
func (c *Client) Host() string { return c.host }

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// do posts one GraphQL operation and decodes the data payload into out.
// Non-200 replies become *StatusError, a populated errors array becomes
// *GraphQLError carrying the first message.
func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/graphql", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post graphql request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read graphql response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode graphql response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		return &GraphQLError{Message: envelope.Errors[0].Message}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode graphql data: %w", err)
		}
	}

	return nil
}
