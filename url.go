package gogrid

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// gapPage marks an ellipsis position in a page range.
const gapPage = -1

// Link is a single entry of the page navigation.
type Link struct {
	// Page is the 1-indexed page number. Zero for gaps.
	Page int
	// URL is the link target. Empty for gaps.
	URL string
	// Active is true for the current page.
	Active bool
	// Gap is true for an ellipsis between page windows.
	Gap bool
}

// BuildURL merges override over existing (override wins on key collision),
// serializes the result as a query string and appends it to baseURL, followed
// by "#fragment" if fragment is not empty.
//
// Keys are serialized in sorted order. Empty parameter maps produce the bare
// baseURL without "?".
//
// Example:
//
//	BuildURL("/items", map[string]string{"foo": "1"}, map[string]string{"page": "2"}, "top")
//	// "/items?foo=1&page=2#top"
func BuildURL(baseURL string, existing, override map[string]string, fragment string) string {
	return buildURL(baseURL, toValues(existing), override, fragment)
}

func buildURL(baseURL string, existing url.Values, override map[string]string, fragment string) string {
	params := lo.Assign(cloneValues(existing), toValues(override))

	var sb strings.Builder
	sb.WriteString(baseURL)

	if encoded := params.Encode(); encoded != "" {
		sb.WriteString(lo.Ternary(strings.Contains(baseURL, "?"), "&", "?"))
		sb.WriteString(encoded)
	}

	if fragment != "" {
		sb.WriteString("#")
		sb.WriteString(fragment)
	}

	return sb.String()
}

// URL returns the link to the given page, preserving the request query.
func (s *PaginationState) URL(page int) string {
	return buildURL(s.baseURL, s.query, map[string]string{
		s.pageParam: strconv.Itoa(page),
	}, s.fragment)
}

// NextPageURL returns the link to the next page or "" on the last page.
func (s *PaginationState) NextPageURL() string {
	if !s.HasMorePages() {
		return ""
	}

	return s.URL(s.currentPage + 1)
}

// PreviousPageURL returns the link to the previous page or "" on the first
// page.
func (s *PaginationState) PreviousPageURL() string {
	if s.OnFirstPage() {
		return ""
	}

	return s.URL(s.currentPage - 1)
}

// PerPageURL returns the link switching the page size. The page is reset to
// the first one because the current offset is meaningless for another size.
func (s *PaginationState) PerPageURL(perPage int) string {
	return buildURL(s.baseURL, s.query, map[string]string{
		s.perPageParam: strconv.Itoa(perPage),
		s.pageParam:    strconv.Itoa(DefaultPage),
	}, s.fragment)
}

// Links returns the page navigation: the first and the last page, a window of
// pages around the current one and gaps in between.
//
// IMPORTANT:
// Depends on the total count, call SetTotalCount first.
func (s *PaginationState) Links() []Link {
	return lo.Map(pageRange(s.currentPage, s.TotalPages(), s.linkWindow), func(page int, _ int) Link {
		if page == gapPage {
			return Link{Gap: true}
		}

		return Link{
			Page:   page,
			URL:    s.URL(page),
			Active: page == s.currentPage,
		}
	})
}

// pageRange returns page numbers to display, gapPage marks an ellipsis.
//
// Example: current=10, total=20, window=2 gives
//
//	[1, gap, 8, 9, 10, 11, 12, gap, 20]
func pageRange(current, total, window int) []int {
	// Small ranges are shown in full: a gap would hide at most one page.
	if total <= 2*window+5 {
		return lo.RangeFrom(1, total)
	}

	start := max(current-window, 2)
	end := min(current+window, total-1)

	pages := []int{1}
	if start > 2 {
		pages = append(pages, gapPage)
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	if end < total-1 {
		pages = append(pages, gapPage)
	}

	return append(pages, total)
}

func toValues(m map[string]string) url.Values {
	values := make(url.Values, len(m))
	for k, v := range m {
		values.Set(k, v)
	}

	return values
}

func cloneValues(values url.Values) url.Values {
	ret := make(url.Values, len(values))
	for k, v := range values {
		ret[k] = append([]string(nil), v...)
	}

	return ret
}
