package orgapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client talks to the organization admin REST API. All collection endpoints
// share the same envelope (data array + links.next cursor), so a single
// pagination loop serves the whole hierarchy.
type Client struct {
	BaseURL string
	OrgID   string

	token      string
	httpClient *http.Client
	pageDelay  time.Duration
	debug      bool
}

func NewClient(baseURL, orgID, token string, delaySeconds float64, debug bool) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		OrgID:      orgID,
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		pageDelay:  time.Duration(delaySeconds * float64(time.Second)),
		debug:      debug,
	}
}

// FetchError describes the request that ended a page loop early. Status is
// zero when the failure happened below HTTP (dial, timeout, bad body).
type FetchError struct {
	URL    string
	Page   int
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s (page %d): status %d", e.URL, e.Page, e.Status)
	}
	return fmt.Sprintf("fetch %s (page %d): %v", e.URL, e.Page, e.Err)
}

// FetchResult is the outcome of draining one collection endpoint. Items holds
// whatever pages were accumulated before the loop ended; Err is nil only when
// every page was fetched. Callers that need to tell "no children" apart from
// "children could not be fetched" check Err rather than len(Items).
type FetchResult struct {
	Items []json.RawMessage
	Pages int
	Err   *FetchError
}

// FetchAll drains a paginated collection endpoint, following links.next until
// the API stops returning one. A failed page stops the loop and keeps what was
// accumulated so far - the failure is recorded in the result, never raised.
// Between consecutive pages the client waits out the configured delay as a
// rate-limiting courtesy to the upstream API.
func (c *Client) FetchAll(ctx context.Context, url string) FetchResult {
	var res FetchResult

	var limiter *rate.Limiter
	if c.pageDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(c.pageDelay), 1)
	}

	for url != "" {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				res.Err = &FetchError{URL: url, Page: res.Pages + 1, Err: err}
				return res
			}
		}

		body, status, err := c.get(ctx, url)
		if err != nil || status < 200 || status > 299 {
			res.Err = &FetchError{URL: url, Page: res.Pages + 1, Status: status, Err: err}
			if c.debug {
				slog.Debug("page fetch failed", "url", url, "status", status, "err", err)
			}
			return res
		}

		var pg page
		if err := json.Unmarshal(body, &pg); err != nil {
			res.Err = &FetchError{URL: url, Page: res.Pages + 1, Err: fmt.Errorf("decode body: %w", err)}
			return res
		}

		res.Items = append(res.Items, pg.Data...)
		res.Pages++

		if c.debug {
			slog.Debug("page fetched", "url", url, "page", res.Pages, "items", len(pg.Data), "body", string(body))
		}

		url = nextPageURL(url, pg.Links.Next)
	}

	return res
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// nextPageURL resolves the links.next value against the URL that produced it.
// An absolute URL is used verbatim (the API hands back self-contained page
// links, so the original query parameters are dropped). A relative value is a
// continuation fragment: a leading "?" replaces the query string, anything
// else is an opaque cursor token.
func nextPageURL(current, next string) string {
	if next == "" {
		return ""
	}
	// full scheme check: a bare "http" prefix would swallow opaque cursor
	// tokens that happen to start with those letters
	if strings.HasPrefix(next, "http://") || strings.HasPrefix(next, "https://") {
		return next
	}
	base := current
	if i := strings.Index(current, "?"); i >= 0 {
		base = current[:i]
	}
	if strings.HasPrefix(next, "?") {
		return base + next
	}
	return base + "?cursor=" + next
}

func (c *Client) orgURL(suffix string) string {
	return c.BaseURL + "/orgs/" + c.OrgID + suffix
}

// Directories lists the organization's directories, the roots of the walk.
func (c *Client) Directories(ctx context.Context) ([]Directory, *FetchError) {
	return decodeItems[Directory](c.FetchAll(ctx, c.orgURL("/directories")))
}

// Groups lists the groups owned by one directory.
func (c *Client) Groups(ctx context.Context, dirID string) ([]Group, *FetchError) {
	return decodeItems[Group](c.FetchAll(ctx, c.orgURL("/directories/"+dirID+"/groups")))
}

// Users lists a directory's users with full detail.
func (c *Client) Users(ctx context.Context, dirID string) ([]User, *FetchError) {
	return decodeItems[User](c.FetchAll(ctx, c.orgURL("/directories/"+dirID+"/users")))
}

// GroupRoleAssignments lists the roles assigned to one group.
func (c *Client) GroupRoleAssignments(ctx context.Context, dirID, grpID string) ([]RoleAssignment, *FetchError) {
	return decodeItems[RoleAssignment](c.FetchAll(ctx, c.orgURL("/directories/"+dirID+"/groups/"+grpID+"/role-assignments")))
}

// GroupUsers lists a group's member stubs. These may carry fewer fields than
// the directory user listing; the walker merges them against Users output.
func (c *Client) GroupUsers(ctx context.Context, dirID, grpID string) ([]User, *FetchError) {
	return decodeItems[User](c.FetchAll(ctx, c.orgURL("/directories/"+dirID+"/groups/"+grpID+"/users")))
}

// decodeItems unmarshals accumulated raw items into their endpoint type.
// Items that fail to decode are skipped, consistent with the degrade-and-carry-on
// fetch policy.
func decodeItems[T any](res FetchResult) ([]T, *FetchError) {
	items := make([]T, 0, len(res.Items))
	for _, raw := range res.Items {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			slog.Warn("skipping malformed item", "err", err)
			continue
		}
		items = append(items, item)
	}
	return items, res.Err
}
