// Package guide is the client for the geo-lineup guide-data API.
package guide

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chanops/stationctl/internal/station"
)

// Lineup is one lineup descriptor returned for a market.
type Lineup struct {
	LineupID  string `json:"lineupId"`
	Name      string `json:"name,omitempty"`
	Transport string `json:"transport,omitempty"`
	Location  string `json:"location,omitempty"`
}

// Client queries the guide-data provider. All calls are synchronous
// and blocking; a timeout is handled by callers the same way as a
// malformed response.
type Client struct {
	baseURL string
	http    *http.Client
	enrich  *http.Client
}

// New creates a Client for the given base URL.
func New(baseURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 20 * time.Second},
		// Enrichment lookups are best-effort; keep them on a short
		// leash so a slow provider cannot stall the whole run.
		enrich: &http.Client{Timeout: 8 * time.Second},
	}
}

// Lineups discovers the lineups serving a market.
func (c *Client) Lineups(country, postalCode string) ([]Lineup, error) {
	var lineups []Lineup
	if err := c.getJSON(c.http, c.url("lineups", country, postalCode), &lineups); err != nil {
		return nil, fmt.Errorf("discovering lineups for %s/%s: %w", country, postalCode, err)
	}
	return lineups, nil
}

// Stations fetches the station list for a lineup.
func (c *Client) Stations(lineupID string) ([]station.Record, error) {
	var recs []station.Record
	if err := c.getJSON(c.http, c.url("stations", lineupID), &recs); err != nil {
		return nil, fmt.Errorf("fetching stations for lineup %s: %w", lineupID, err)
	}
	return recs, nil
}

// ByCallSign looks up stations by call sign for enrichment. The
// provider returns a candidate list; the caller picks the match.
func (c *Client) ByCallSign(callSign string) ([]station.Record, error) {
	var recs []station.Record
	if err := c.getJSON(c.enrich, c.url("stations", callSign), &recs); err != nil {
		return nil, fmt.Errorf("looking up call sign %s: %w", callSign, err)
	}
	return recs, nil
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *Client) getJSON(hc *http.Client, url string, out any) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// url builds an API URL from path segments.
func (c *Client) url(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return c.baseURL + "/" + strings.Join(escaped, "/")
}

// checkStatus returns a typed error for non-2xx responses.
func checkStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("guide API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
