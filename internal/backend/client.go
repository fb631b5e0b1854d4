// Package backend is a minimal client for the match REST backend that owns
// match records and their event lists.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/pable/go-rugby-metrics/internal/loader"
)

// DefaultURL is where the backend listens in a local setup.
const DefaultURL = "http://localhost:5001"

// ErrNotFound is returned when the backend answers 404.
var ErrNotFound = errors.New("not found")

// Client is a minimal match backend client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the backend at baseURL. A zero timeout
// means 30 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// MatchRef is one entry of the /api/matches listing.
type MatchRef struct {
	ID          string
	Team        string
	Opponent    string
	Date        string
	Competition string
}

// get performs a GET against the backend and returns the body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("GET %s: %w", path, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", path, err)
	}
	return body, nil
}

// ListMatches returns the matches the backend knows about.
func (c *Client) ListMatches(ctx context.Context) ([]MatchRef, error) {
	body, err := c.get(ctx, "/api/matches")
	if err != nil {
		return nil, err
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		root = root.Get("matches")
	}
	var out []MatchRef
	for _, m := range root.Array() {
		out = append(out, MatchRef{
			ID:          m.Get("id").String(),
			Team:        m.Get("team").String(),
			Opponent:    m.Get("opponent").String(),
			Date:        m.Get("date").String(),
			Competition: m.Get("competition").String(),
		})
	}
	return out, nil
}

// Events returns the raw events body of a match.
func (c *Client) Events(ctx context.Context, matchID string) ([]byte, error) {
	return c.get(ctx, "/api/matches/"+url.PathEscape(matchID)+"/events")
}

// Info returns the raw match info body of a match.
func (c *Client) Info(ctx context.Context, matchID string) ([]byte, error) {
	return c.get(ctx, "/api/matches/"+url.PathEscape(matchID)+"/info")
}

// FetchMatch downloads a match's events and info and decodes them into a
// payload. A missing info endpoint is tolerated; a missing events endpoint is
// not.
func (c *Client) FetchMatch(ctx context.Context, matchID string) (*loader.Payload, error) {
	events, err := c.Events(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("fetch events for match %s: %w", matchID, err)
	}
	info, err := c.Info(ctx, matchID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("fetch info for match %s: %w", matchID, err)
	}
	p, err := loader.FromParts(events, info)
	if err != nil {
		return nil, fmt.Errorf("decode match %s: %w", matchID, err)
	}
	if p.Info.MatchID == "" {
		p.Info.MatchID = matchID
	}
	return p, nil
}

// Source returns the provenance string stored with imported matches.
func (c *Client) Source(matchID string) string {
	return "backend:" + c.baseURL + "/api/matches/" + matchID
}
