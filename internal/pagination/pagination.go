package pagination

import (
	"net/url"
	"strconv"
)

// Params are page-number pagination inputs. Page is 1-based; Limit is
// the page size requested via the "limit" query parameter.
type Params struct {
	Page  int
	Limit int
}

// FromQuery parses page/limit query values, falling back to page 1 and
// the configured default page size on absent or malformed input.
func FromQuery(pageStr, limitStr string, defaultLimit int) Params {
	p := Params{Page: 1, Limit: defaultLimit}
	if n, err := strconv.Atoi(pageStr); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
		p.Limit = n
	}
	return p
}

// Offset converts the 1-based page into a row offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the list response envelope: total count, links to the
// adjacent pages (null at the edges) and the page items.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewPage builds the envelope for one page of results. requestURL is
// the incoming request URL; adjacent-page links preserve its query
// string with only the page number swapped.
func NewPage(requestURL *url.URL, p Params, count int64, results interface{}) Page {
	page := Page{Count: count, Results: results}
	if int64(p.Page*p.Limit) < count {
		page.Next = pageURL(requestURL, p.Page+1)
	}
	if p.Page > 1 {
		page.Previous = pageURL(requestURL, p.Page-1)
	}
	return page
}

func pageURL(base *url.URL, page int) *string {
	u := *base
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
