package vanta

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/model"
	"github.com/tidwall/gjson"
)

const (
	// DefaultBaseURL is the production Vanta API endpoint
	DefaultBaseURL = "https://api.vanta.com"

	tokenPath  = "/oauth/token"
	peoplePath = "/v1/people"

	// tokenScope is the read-only scope required for the people endpoint
	tokenScope = "vanta-api.all:read"

	tokenTimeout = 30 * time.Second
	fetchTimeout = 60 * time.Second
)

// Client is a Vanta API client. One client serves all workspaces; tokens are
// issued per workspace and passed back in for each fetch.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for testing
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a new Vanta API client
func New(opts ...Option) *Client {
	client := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// IssueToken exchanges the workspace credentials for a bearer token via the
// client-credentials grant. The token is scoped to the workspace and must not
// be reused across workspaces.
func (c *Client) IssueToken(ctx context.Context, ws model.Workspace) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, tokenTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{
		"client_id":     ws.ClientID,
		"client_secret": ws.ClientSecret,
		"scope":         tokenScope,
		"grant_type":    "client_credentials",
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode token request", goerr.V("workspace", ws.Name))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, bytes.NewReader(payload))
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token request", goerr.V("workspace", ws.Name))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(ErrAuthFailed, "token request failed",
			goerr.V("workspace", ws.Name), goerr.V("cause", err.Error()))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", goerr.Wrap(ErrAuthFailed, "failed to read token response",
			goerr.V("workspace", ws.Name), goerr.V("cause", err.Error()))
	}

	if resp.StatusCode != http.StatusOK {
		return "", goerr.Wrap(ErrAuthFailed, "token request rejected",
			goerr.V("workspace", ws.Name),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	token := gjson.GetBytes(body, "access_token").String()
	if token == "" {
		return "", goerr.Wrap(ErrAuthFailed, "token response has no access_token",
			goerr.V("workspace", ws.Name), goerr.V("body", string(body)))
	}
	return token, nil
}

// ListPeople walks the people endpoint page by page and yields every record
// in server order. The sequence is finite and not restartable. A non-success
// response at any page yields an error wrapping ErrFetchFailed; records
// already yielded from earlier pages stand.
func (c *Client) ListPeople(ctx context.Context, token string, pageSize int, extra url.Values) iter.Seq2[Person, error] {
	return func(yield func(Person, error) bool) {
		cursor := ""

		for {
			doc, err := c.fetchPage(ctx, token, pageSize, cursor, extra)
			if err != nil {
				yield(Person{}, err)
				return
			}

			pg, ok := matchEnvelope(doc)
			if !ok || len(pg.records) == 0 {
				// Unknown shape or exhausted data is end-of-iteration, not an error
				return
			}

			for _, rec := range pg.records {
				if !yield(Person{raw: rec}, nil) {
					return
				}
			}

			next, ok := nextCursor(doc, pg.pageInfo)
			if !ok {
				return
			}
			cursor = next
		}
	}
}

// fetchPage issues one GET against the people endpoint and parses the body
// into a JSON tree.
func (c *Client) fetchPage(ctx context.Context, token string, pageSize int, cursor string, extra url.Values) (gjson.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	query := url.Values{}
	for key, values := range extra {
		for _, value := range values {
			// Repeatable filter keys must be encoded as repeated parameters
			query.Add(key, value)
		}
	}
	query.Set("pageSize", strconv.Itoa(pageSize))
	if cursor != "" {
		query.Set("pageCursor", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+peoplePath+"?"+query.Encode(), nil)
	if err != nil {
		return gjson.Result{}, goerr.Wrap(err, "failed to build people request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, goerr.Wrap(ErrFetchFailed, "people request failed", goerr.V("cause", err.Error()))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, goerr.Wrap(ErrFetchFailed, "failed to read people response", goerr.V("cause", err.Error()))
	}

	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, goerr.Wrap(ErrFetchFailed, "people request rejected",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, goerr.Wrap(ErrFetchFailed, "people response is not valid JSON")
	}
	return gjson.ParseBytes(body), nil
}
