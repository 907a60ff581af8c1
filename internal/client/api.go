package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// PageData is the listing payload returned by GET /api/galeria.
type PageData struct {
	Success     bool     `json:"success"`
	Images      []string `json:"images"`
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
	TotalImages int      `json:"totalImages"`
	Error       string   `json:"error,omitempty"`
	Warning     string   `json:"warning,omitempty"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error: %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP error: %d: %s", e.StatusCode, e.Message)
}

var (
	// ErrServer is wrapped when a 2xx body reports success=false.
	ErrServer = errors.New("server reported failure")
	// ErrContentType is wrapped when a 2xx response is not JSON.
	ErrContentType = errors.New("unexpected content type")
)

// API fetches gallery pages from a listing service.
type API struct {
	http *HTTPClient
}

func NewAPI(c *HTTPClient) *API {
	return &API{http: c}
}

// FetchPage requests one page. Transport failures, non-2xx statuses and
// success=false bodies are all returned as errors.
func (a *API) FetchPage(ctx context.Context, page, perPage int) (*PageData, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	resp, err := a.http.Get(ctx, "/api/galeria?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var data PageData
	if !resp.IsSuccess() {
		// Error bodies are best effort; the status code is what matters.
		_ = resp.UnmarshalJSON(&data)
		msg := data.Error
		if msg == "" {
			msg = data.Warning
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	if ct := resp.ContentType(); ct != "application/json" {
		return nil, fmt.Errorf("%w: %q", ErrContentType, ct)
	}
	if err := resp.UnmarshalJSON(&data); err != nil {
		return nil, fmt.Errorf("decode gallery page: %w", err)
	}
	if !data.Success {
		msg := data.Error
		if msg == "" {
			msg = "unknown server error"
		}
		return nil, fmt.Errorf("%w: %s", ErrServer, msg)
	}
	return &data, nil
}
