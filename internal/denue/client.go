// Package denue fetches business records from the INEGI DENUE registry
// and normalizes them into clinic rows ready for import or CSV export.
package denue

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

// BaseURL is the BuscarAreaAct endpoint of the DENUE API.
const BaseURL = "https://www.inegi.org.mx/app/api/denue/v1/consulta/BuscarAreaAct"

const (
	DefaultMaxRetries = 3
	DefaultBackoff    = 250 * time.Millisecond
	DefaultPageSize   = 200
	DefaultPageDelay  = 200 * time.Millisecond
)

// Record is one raw DENUE record. Field names are source-defined
// (Nombre, Calle, Latitud, ...); records are never persisted as-is.
type Record map[string]interface{}

// SearchParams identifies one page of a BuscarAreaAct query.
type SearchParams struct {
	Entidad   string
	Municipio string
	Clase     string
	RegIni    int
	RegFin    int
	Token     string
}

// BuildSearchURL position-encodes the query into the fixed DENUE path
// template. All variable segments are percent-encoded.
func BuildSearchURL(p SearchParams) string {
	return buildSearchURL(BaseURL, p)
}

func buildSearchURL(base string, p SearchParams) string {
	segments := []string{
		base,
		url.PathEscape(p.Entidad),
		url.PathEscape(p.Municipio),
		"0", "0", "0", "0", "0", "0",
		url.PathEscape(p.Clase),
		"0",
		strconv.Itoa(p.RegIni),
		strconv.Itoa(p.RegFin),
		"0",
		url.PathEscape(p.Token),
	}
	return strings.Join(segments, "/")
}

// Client fetches DENUE pages with bounded retry and exponential backoff.
// Sleep is injectable so tests run without real timers.
type Client struct {
	HTTPClient *http.Client
	MaxRetries int
	Backoff    time.Duration
	Sleep      func(time.Duration)

	// baseURLOverride redirects requests in tests.
	baseURLOverride string
}

// NewClient returns a client with production defaults.
func NewClient() *Client {
	return &Client{
		HTTPClient: http.DefaultClient,
		MaxRetries: DefaultMaxRetries,
		Backoff:    DefaultBackoff,
		Sleep:      time.Sleep,
	}
}

func (c *Client) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
	} else {
		time.Sleep(d)
	}
}

func isTransientStatus(status int) bool {
	return status >= 500
}

// FetchPage fetches one page of records. Transport failures and 5xx
// responses are retried up to MaxRetries times with backoff doubling per
// attempt; other non-OK statuses and non-array payloads fail immediately.
func (c *Client) FetchPage(ctx context.Context, p SearchParams) ([]Record, error) {
	base := BaseURL
	if c.baseURLOverride != "" {
		base = c.baseURLOverride
	}
	reqURL := buildSearchURL(base, p)

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		lastAttempt := attempt == c.MaxRetries

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("building DENUE request for %s: %w", reqURL, err)
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			if !lastAttempt {
				c.sleep(c.Backoff << attempt)
				continue
			}
			return nil, fmt.Errorf("DENUE request error: %w", err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			if isTransientStatus(resp.StatusCode) && !lastAttempt {
				c.sleep(c.Backoff << attempt)
				continue
			}
			return nil, fmt.Errorf("DENUE request failed (%d) for %s", resp.StatusCode, reqURL)
		}
		if readErr != nil {
			if !lastAttempt {
				c.sleep(c.Backoff << attempt)
				continue
			}
			return nil, fmt.Errorf("reading DENUE response for %s: %w", reqURL, readErr)
		}

		var payload interface{}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("unexpected DENUE response payload for %s", reqURL)
		}
		items, ok := payload.([]interface{})
		if !ok {
			return nil, fmt.Errorf("unexpected DENUE response payload for %s", reqURL)
		}

		records := make([]Record, 0, len(items))
		for _, item := range items {
			if m, ok := item.(map[string]interface{}); ok {
				records = append(records, Record(m))
			}
		}
		return records, nil
	}

	return nil, nil
}

// FetchAllParams configures a full paginated crawl of one
// (entidad, municipio, clase) combination.
type FetchAllParams struct {
	Entidad   string
	Municipio string
	Clase     string
	Token     string
	PageSize  int
	PageDelay time.Duration
}

// FetchAll advances the record window by PageSize until an empty page,
// sleeping between pages to respect the registry's rate limits.
func (c *Client) FetchAll(ctx context.Context, p FetchAllParams) ([]Record, error) {
	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	delay := p.PageDelay

	var records []Record
	regIni := 1

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := c.FetchPage(ctx, SearchParams{
			Entidad:   p.Entidad,
			Municipio: p.Municipio,
			Clase:     p.Clase,
			RegIni:    regIni,
			RegFin:    regIni + pageSize - 1,
			Token:     p.Token,
		})
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		records = append(records, page...)
		regIni += pageSize

		if delay > 0 {
			c.sleep(delay)
		}
	}

	return records, nil
}
