package gallery

import (
	"strconv"
	"strings"

	domain "marianails/internal/domain/gallery"
)

// ListRequest represents a paginated gallery request. Zero values mean "not given".
type ListRequest struct {
	Page    int `json:"page,omitempty"`
	PerPage int `json:"per_page,omitempty"`
}

// ParseListRequest builds a request from raw query values. Absent or
// non-numeric values are left unset; numeric values below 1 are clamped to 1.
// Like the browser's parseInt, leading digits are honoured ("12abc" -> 12).
func ParseListRequest(page, perPage string) ListRequest {
	var req ListRequest
	if n, ok := atoiLenient(page); ok {
		req.Page = max(n, 1)
	}
	if n, ok := atoiLenient(perPage); ok {
		req.PerPage = max(n, 1)
	}
	return req
}

// Normalize applies defaults and the optional per-page cap (0 = no cap).
func (req *ListRequest) Normalize(defaultPerPage, maxPerPage int) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PerPage <= 0 {
		req.PerPage = defaultPerPage
	}
	if req.PerPage <= 0 {
		req.PerPage = 30
	}
	if maxPerPage > 0 && req.PerPage > maxPerPage {
		req.PerPage = maxPerPage
	}
}

// PageResult is the success payload of a listing.
type PageResult struct {
	Success bool `json:"success"`
	domain.Page
}

// atoiLenient parses an optional sign followed by at least one digit,
// ignoring leading whitespace and anything after the digits.
func atoiLenient(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// out of range for int
		if s[0] == '-' {
			return 1, true
		}
		return int(^uint(0) >> 1), true
	}
	return n, true
}
