package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production Microsoft Graph endpoint.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// messageFields is the projection requested for every conversation query.
const messageFields = "subject,body,uniqueBody,sender,createdDateTime,internetMessageHeaders,hasAttachments"

// StatusError reports a non-success HTTP status from the Graph API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("graph request failed with status %d: %s", e.StatusCode, e.Body)
}

// Client is a thin HTTP client for the Microsoft Graph mail API.
// It issues one filtered, field-projected, attachment-expanded query per
// conversation fetch and leaves retry policy to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Graph client for the given base URL. An empty base
// URL selects the production endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListConversationMessages lists up to top messages whose conversationId
// equals the given id, in the order the provider returns them. Bodies are
// requested in text form via content negotiation, and attachments come
// expanded inline.
func (c *Client) ListConversationMessages(ctx context.Context, accessToken, conversationID string, top int) ([]RawMessage, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("conversation id is required")
	}
	if top <= 0 {
		top = 10
	}

	params := url.Values{}
	// OData string literals escape embedded quotes by doubling them.
	params.Set("$filter", fmt.Sprintf("conversationId eq '%s'", strings.ReplaceAll(conversationID, "'", "''")))
	params.Set("$select", messageFields)
	params.Set("$top", strconv.Itoa(top))
	params.Set("$expand", "attachments")

	requestURL := c.baseURL + "/me/messages?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", `outlook.body-content-type="text"`)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       readBodySnippet(resp.Body),
		}
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return list.Value, nil
}

// readBodySnippet reads up to 512 bytes of an error response body for
// diagnostics.
func readBodySnippet(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
