// Package airtable is a thin client for the Airtable REST API and the event
// store built on it.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIURL is the public Airtable REST endpoint.
const DefaultAPIURL = "https://api.airtable.com/v0"

const maxPageSize = 100

// Record is a single Airtable row.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("airtable: %d %s: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("airtable: %d %s", e.StatusCode, e.Type)
}

// IsNotFound reports whether err is an Airtable 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to one Airtable base.
type Client struct {
	apiURL string
	baseID string
	apiKey string
	http   *http.Client
}

// NewClient creates a Client for baseID. An empty apiURL uses DefaultAPIURL.
func NewClient(apiURL, baseID, apiKey string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL: strings.TrimRight(apiURL, "/"),
		baseID: baseID,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// ListOptions narrows ListRecords.
type ListOptions struct {
	View     string
	Formula  string
	PageSize int
	Fields   []string
}

// GetRecord fetches one record by id.
func (c *Client) GetRecord(ctx context.Context, table, id string) (Record, error) {
	var rec Record
	err := c.do(ctx, http.MethodGet, c.recordURL(table, id), nil, &rec)
	return rec, err
}

// ListRecords fetches every record matching opts, following pagination
// offsets until the last page.
func (c *Client) ListRecords(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	q := url.Values{}
	if opts.View != "" {
		q.Set("view", opts.View)
	}
	if opts.Formula != "" {
		q.Set("filterByFormula", opts.Formula)
	}
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	q.Set("pageSize", fmt.Sprint(pageSize))
	for _, f := range opts.Fields {
		q.Add("fields[]", f)
	}

	var records []Record
	for {
		var page struct {
			Records []Record `json:"records"`
			Offset  string   `json:"offset"`
		}
		if err := c.do(ctx, http.MethodGet, c.tableURL(table)+"?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}
		records = append(records, page.Records...)
		if page.Offset == "" {
			return records, nil
		}
		q.Set("offset", page.Offset)
	}
}

// UpdateRecord patches the given fields of one record and returns the
// record as stored.
func (c *Client) UpdateRecord(ctx context.Context, table, id string, fields map[string]any) (Record, error) {
	body := map[string]any{
		"fields":   fields,
		"typecast": true,
	}
	var rec Record
	err := c.do(ctx, http.MethodPatch, c.recordURL(table, id), body, &rec)
	return rec, err
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.apiURL, url.PathEscape(c.baseID), url.PathEscape(table))
}

func (c *Client) recordURL(table, id string) string {
	return c.tableURL(table) + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("airtable %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseAPIError handles both error shapes Airtable sends:
// {"error":"NOT_FOUND"} and {"error":{"type":"...","message":"..."}}.
func parseAPIError(status int, raw []byte) error {
	apiErr := &APIError{StatusCode: status, Type: http.StatusText(status)}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Error) == 0 {
		return apiErr
	}

	var typ string
	if err := json.Unmarshal(envelope.Error, &typ); err == nil {
		apiErr.Type = typ
		return apiErr
	}

	var detail struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &detail); err == nil {
		if detail.Type != "" {
			apiErr.Type = detail.Type
		}
		apiErr.Message = detail.Message
	}
	return apiErr
}
