package gogrid

import (
	"net/url"
	"slices"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// PaginationState holds the page/page-size state of a single grid request and
// derives the dataset window (offset/limit) and navigation links from it.
//
// A PaginationState is built per request from the configuration defaults,
// then overridden by request values. Invalid overrides are silently replaced
// by the last valid value. It is never shared between requests.
type PaginationState struct {
	currentPage    int
	perPage        int
	defaultPerPage int
	maxPerPage     int
	perPageChoices []int
	totalCount     int64

	fragment     string
	baseURL      string
	query        url.Values
	pageParam    string
	perPageParam string
	linkWindow   int
}

// NewPaginationState creates a PaginationState populated with configuration
// defaults. The configuration is normalized first.
func NewPaginationState(cfg Config) *PaginationState {
	cfg = cfg.Normalize()

	return &PaginationState{
		currentPage:    cfg.DefaultPage,
		perPage:        cfg.DefaultPerPage,
		defaultPerPage: cfg.DefaultPerPage,
		maxPerPage:     cfg.MaxPerPage,
		perPageChoices: slices.Clone(cfg.PerPageChoices),
		fragment:       cfg.Fragment,
		pageParam:      cfg.PageParam,
		perPageParam:   cfg.PerPageParam,
		linkWindow:     cfg.LinkWindow,
	}
}

// WithPage overrides the current page. The value is re-validated, an invalid
// page keeps the current one.
func (s *PaginationState) WithPage(page any) *PaginationState {
	if s == nil {
		s = NewPaginationState(DefaultConfig())
	}

	s.currentPage = ResolvePage(page, s.currentPage)

	return s
}

// WithPerPage overrides the page size. An invalid value falls back to the
// configured default, see ResolvePerPage.
func (s *PaginationState) WithPerPage(perPage any) *PaginationState {
	if s == nil {
		s = NewPaginationState(DefaultConfig())
	}

	s.perPage = s.ResolvePerPage(perPage)

	return s
}

// WithPerPageChoices replaces the page sizes presented to the user. Invalid
// and duplicate values are dropped, order is preserved. The choices are not
// enforced on WithPerPage.
func (s *PaginationState) WithPerPageChoices(choices ...int) *PaginationState {
	if s == nil {
		s = NewPaginationState(DefaultConfig())
	}

	s.perPageChoices = lo.Uniq(lo.Filter(choices, func(choice int, _ int) bool {
		return IsValidPageNumber(choice)
	}))

	return s
}

// WithFragment sets the fragment appended to generated links ("#fragment").
// Empty value disables it.
func (s *PaginationState) WithFragment(fragment string) *PaginationState {
	if s == nil {
		s = NewPaginationState(DefaultConfig())
	}

	s.fragment = fragment

	return s
}

// WithBaseURL sets the path generated links are built against.
func (s *PaginationState) WithBaseURL(baseURL string) *PaginationState {
	if s == nil {
		s = NewPaginationState(DefaultConfig())
	}

	s.baseURL = baseURL

	return s
}

// WithQuery sets the query parameters preserved in generated links. The
// values are copied.
func (s *PaginationState) WithQuery(query url.Values) *PaginationState {
	if s == nil {
		s = NewPaginationState(DefaultConfig())
	}

	s.query = cloneValues(query)

	return s
}

// SetTotalCount records the number of rows matching the query before slicing.
// Negative values are stored as 0.
func (s *PaginationState) SetTotalCount(n int64) {
	s.totalCount = max(n, 0)
}

// ResolvePerPage returns requested if it is a valid page size, otherwise the
// configured default.
func (s *PaginationState) ResolvePerPage(requested any) int {
	return ResolvePerPageMax(requested, s.defaultPerPage, s.maxPerPage)
}

// CurrentPage returns the 1-indexed current page.
func (s *PaginationState) CurrentPage() int {
	return s.currentPage
}

// PerPage returns the effective page size.
func (s *PaginationState) PerPage() int {
	return s.perPage
}

// DefaultPerPage returns the configured page size.
func (s *PaginationState) DefaultPerPage() int {
	return s.defaultPerPage
}

// PerPageChoices returns the page sizes presented to the user.
func (s *PaginationState) PerPageChoices() []int {
	return slices.Clone(s.perPageChoices)
}

// TotalCount returns the number of rows matching the query before slicing.
func (s *PaginationState) TotalCount() int64 {
	return s.totalCount
}

func (s *PaginationState) Fragment() string {
	return s.fragment
}

func (s *PaginationState) BaseURL() string {
	return s.baseURL
}

// Offset returns perPage * (currentPage - 1).
func (s *PaginationState) Offset() int {
	offset, _ := ComputeOffsetLimit(s.currentPage, s.perPage)
	return offset
}

// Limit returns perPage.
func (s *PaginationState) Limit() int {
	_, limit := ComputeOffsetLimit(s.currentPage, s.perPage)
	return limit
}

// TotalPages returns the number of pages for the total count. An empty
// dataset still has one (empty) page.
func (s *PaginationState) TotalPages() int {
	perPage := int64(s.perPage)
	pages := s.totalCount / perPage
	if s.totalCount%perPage != 0 {
		pages++
	}

	return int(max(pages, 1))
}

// HasMorePages returns true if a page after the current one exists.
func (s *PaginationState) HasMorePages() bool {
	return s.currentPage < s.TotalPages()
}

// OnFirstPage returns true if the current page is the first one.
func (s *PaginationState) OnFirstPage() bool {
	return s.currentPage <= 1
}

// FirstItem returns the 1-based position of the first row on the current
// page, or 0 if the page is empty.
func (s *PaginationState) FirstItem() int64 {
	offset := int64(s.Offset())
	if offset >= s.totalCount {
		return 0
	}

	return offset + 1
}

// LastItem returns the 1-based position of the last row on the current page,
// or 0 if the page is empty.
func (s *PaginationState) LastItem() int64 {
	first := s.FirstItem()
	if first == 0 {
		return 0
	}

	return first - 1 + min(int64(s.Limit()), s.totalCount-first+1)
}

// Paginate applies the dataset window of the current page to a gorm query.
func (s *PaginationState) Paginate(db *gorm.DB) *gorm.DB {
	offset, limit := ComputeOffsetLimit(s.currentPage, s.perPage)

	return db.Offset(offset).Limit(limit)
}
