package hh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the public HeadHunter API endpoint.
	DefaultBaseURL = "https://api.hh.ru"

	requestTimeout = 20 * time.Second
)

// StatusError reports a non-2xx response from the HH API.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.Status)
}

// Client talks to the HeadHunter API. All requests carry the identifying
// User-Agent and a fixed timeout; no retries are performed here.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates an HH API client. An empty baseURL falls back to the
// public endpoint.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("get %s: %w", path, &StatusError{Status: resp.StatusCode})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	return nil
}

// Areas fetches the full region tree (countries at the top level).
func (c *Client) Areas(ctx context.Context) ([]Area, error) {
	var tree []Area
	if err := c.get(ctx, "/areas", nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// VacancyParams are the query parameters of a /vacancies search page.
type VacancyParams struct {
	Text    string
	AreaID  string
	PerPage int
	Page    int
	OrderBy string
}

// Vacancies fetches one page of search results.
func (c *Client) Vacancies(ctx context.Context, p VacancyParams) (*VacanciesPage, error) {
	params := url.Values{}
	params.Set("text", p.Text)
	params.Set("area", p.AreaID)
	params.Set("per_page", strconv.Itoa(p.PerPage))
	params.Set("page", strconv.Itoa(p.Page))
	if p.OrderBy != "" {
		params.Set("order_by", p.OrderBy)
	}

	var page VacanciesPage
	if err := c.get(ctx, "/vacancies", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Employer fetches an employer profile by ID.
func (c *Client) Employer(ctx context.Context, id string) (*EmployerProfile, error) {
	var profile EmployerProfile
	if err := c.get(ctx, "/employers/"+id, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
