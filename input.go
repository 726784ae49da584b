package gogrid

import (
	"net/http"
	"net/url"
	"strings"
)

// Input is the request state a grid reads: raw page, page size, sort and
// ajax parameters plus everything needed to rebuild links. Missing values
// are empty strings and mean "use default".
type Input struct {
	// Path is the request path, links are built against it.
	Path string
	// Query is the full request query.
	Query url.Values

	Page    string
	PerPage string
	Sort    string
	Ajax    string

	ajaxParam string
}

// ReadInput reads grid parameters from the request query using the
// parameter names of cfg.
func ReadInput(r *http.Request, cfg Config) Input {
	return NewInput(r.URL.Path, r.URL.Query(), cfg)
}

// NewInput builds Input from a path and a parsed query.
func NewInput(path string, query url.Values, cfg Config) Input {
	cfg = cfg.Normalize()
	query = cloneValues(query)

	return Input{
		Path:      path,
		Query:     query,
		Page:      query.Get(cfg.PageParam),
		PerPage:   query.Get(cfg.PerPageParam),
		Sort:      query.Get(cfg.SortParam),
		Ajax:      query.Get(cfg.AjaxParam),
		ajaxParam: cfg.AjaxParam,
	}
}

// IsAjax returns true if the ajax parameter is set to a truthy value.
// "", "0" and "false" are falsy.
func (in Input) IsAjax() bool {
	switch strings.ToLower(strings.TrimSpace(in.Ajax)) {
	case "", "0", "false":
		return false
	default:
		return true
	}
}

// LinkQuery returns the query preserved in generated links. The ajax
// parameter is dropped: links always lead to the HTML representation.
func (in Input) LinkQuery() url.Values {
	ret := cloneValues(in.Query)
	if in.ajaxParam != "" {
		ret.Del(in.ajaxParam)
	}

	return ret
}
