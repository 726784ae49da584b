package gogrid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"
)

var (
	ErrQueryNotSet    = errors.New("grid query is not set")
	ErrRendererNotSet = errors.New("grid renderer is not set")
	ErrViewsNotSet    = errors.New("grid view engine is not set")
)

// Variant is a concrete grid: it knows its dataset, its columns and its
// array representation. Optional stages are enabled by implementing
// FilterStage, SortStage and RendererStage.
type Variant[T any] interface {
	// Query returns the dataset of the grid.
	Query(ctx context.Context, in Input) (Query[T], error)
	// Columns returns the grid columns.
	Columns() Columns[T]
	// ToArray returns the serializable representation of the page items.
	ToArray(items []T) any
}

// FilterStage narrows the dataset according to the request before it is
// counted.
type FilterStage[T any] interface {
	Filter(ctx context.Context, q Query[T], in Input) (Query[T], error)
}

// SortStage provides the ordering used when the request does not carry a
// valid one.
type SortStage interface {
	DefaultSort() Orderings
}

// RendererStage picks the renderer for the request. A nil result falls back
// to the renderer set with WithRenderer.
type RendererStage[T any] interface {
	Renderer(in Input) Renderer[T]
}

// Grid is the paginated, renderable view over the dataset of a Variant.
//
// A Grid is request-scoped: build it per request, Prepare it (explicitly or
// implicitly via HTML/ToArray/Respond) and drop it. It must not be shared
// between goroutines.
//
// Prepare runs the stages in order:
//  1. query: Variant.Query;
//  2. filters: FilterStage.Filter, if implemented;
//  3. pagination: count, resolve page size and page, select, order, window, fetch;
//  4. renderer: RendererStage.Renderer, if implemented.
type Grid[T any] struct {
	variant  Variant[T]
	cfg      Config
	input    Input
	renderer Renderer[T]
	views    ViewEngine
	logger   zerolog.Logger

	pagination *PaginationState
	sort       Orderings
	items      []T
	display    any
	prepared   bool
}

// NewGrid creates a grid with the default configuration and an empty input.
func NewGrid[T any](variant Variant[T]) *Grid[T] {
	cfg := DefaultConfig()

	return &Grid[T]{
		variant: variant,
		cfg:     cfg,
		input:   NewInput("", nil, cfg),
		logger:  zerolog.Nop(),
	}
}

// WithConfig replaces the configuration. The input is re-read with the new
// parameter names.
func (g *Grid[T]) WithConfig(cfg Config) *Grid[T] {
	g.cfg = cfg.Normalize()
	g.input = NewInput(g.input.Path, g.input.Query, g.cfg)
	g.prepared = false

	return g
}

// WithInput sets the request input.
func (g *Grid[T]) WithInput(in Input) *Grid[T] {
	g.input = in
	g.prepared = false

	return g
}

// WithRequest reads the input from r using the configured parameter names.
func (g *Grid[T]) WithRequest(r *http.Request) *Grid[T] {
	return g.WithInput(ReadInput(r, g.cfg))
}

func (g *Grid[T]) WithRenderer(renderer Renderer[T]) *Grid[T] {
	g.renderer = renderer

	return g
}

func (g *Grid[T]) WithViews(views ViewEngine) *Grid[T] {
	g.views = views

	return g
}

func (g *Grid[T]) WithLogger(logger zerolog.Logger) *Grid[T] {
	g.logger = logger

	return g
}

// Prepare runs the preparation pass. Running it again on unchanged input
// gives the same result. A failed pass leaves the grid unprepared: Items,
// Pagination and Sort are empty.
func (g *Grid[T]) Prepare(ctx context.Context) error {
	g.prepared = false
	g.pagination = nil
	g.sort = nil
	g.items = nil
	g.display = nil

	q, err := g.prepareQuery(ctx)
	if err != nil {
		return g.fail(err)
	}

	q, err = g.prepareFilters(ctx, q)
	if err != nil {
		return g.fail(err)
	}

	if err = g.preparePagination(ctx, q); err != nil {
		return g.fail(err)
	}

	g.prepareRenderer()
	g.prepared = true

	return nil
}

func (g *Grid[T]) prepareQuery(ctx context.Context) (Query[T], error) {
	if g.variant == nil {
		return nil, fmt.Errorf("cannot prepare grid: %w", ErrQueryNotSet)
	}

	q, err := g.variant.Query(ctx, g.input)
	if err != nil {
		return nil, fmt.Errorf("cannot prepare grid query: %w", err)
	}
	if q == nil {
		return nil, fmt.Errorf("cannot prepare grid: %w", ErrQueryNotSet)
	}

	return q, nil
}

func (g *Grid[T]) prepareFilters(ctx context.Context, q Query[T]) (Query[T], error) {
	filterStage, ok := g.variant.(FilterStage[T])
	if !ok {
		return q, nil
	}

	filtered, err := filterStage.Filter(ctx, q, g.input)
	if err != nil {
		return nil, fmt.Errorf("cannot apply grid filters: %w", err)
	}
	if filtered == nil {
		return nil, fmt.Errorf("cannot apply grid filters: %w", ErrQueryNotSet)
	}

	return filtered, nil
}

func (g *Grid[T]) preparePagination(ctx context.Context, q Query[T]) error {
	state := NewPaginationState(g.cfg).
		WithBaseURL(g.input.Path).
		WithQuery(g.input.LinkQuery())

	total, err := q.Count(ctx)
	if err != nil {
		return fmt.Errorf("cannot paginate grid: %w", err)
	}
	state.SetTotalCount(total)

	state.WithPerPage(g.input.PerPage)
	if g.input.PerPage != "" && state.PerPage() != ResolvePerPage(g.input.PerPage, 0) {
		g.logger.Debug().Str("per_page", g.input.PerPage).Int("fallback", state.PerPage()).Msg("invalid per page, using default")
	}

	state.WithPage(g.input.Page)
	if g.input.Page != "" && !IsValidPageNumber(g.input.Page) {
		g.logger.Debug().Str("page", g.input.Page).Int("fallback", state.CurrentPage()).Msg("invalid page, using default")
	}

	sort := g.resolveSort()
	offset, limit := ComputeOffsetLimit(state.CurrentPage(), state.PerPage())

	items, err := q.
		Select(g.Columns().Fields()...).
		Order(sort).
		Window(offset, limit).
		Get(ctx)
	if err != nil {
		return fmt.Errorf("cannot paginate grid: %w", err)
	}

	g.pagination = state
	g.sort = sort
	g.items = items

	g.logger.Debug().
		Int("page", state.CurrentPage()).
		Int("per_page", state.PerPage()).
		Int("offset", offset).
		Int("limit", limit).
		Int64("total", total).
		Int("items", len(items)).
		Str("sort", sort.ToSQL()).
		Msg("grid prepared")

	return nil
}

func (g *Grid[T]) resolveSort() Orderings {
	defaultSort := Orderings(nil)
	if sortStage, ok := g.variant.(SortStage); ok {
		defaultSort = sortStage.DefaultSort()
	}

	if g.input.Sort == "" {
		return defaultSort
	}

	sort, err := ParseSortParam(g.input.Sort, g.Columns().SortMapping())
	if err != nil || len(sort) == 0 {
		g.logger.Debug().Err(err).Str("sort", g.input.Sort).Msg("invalid sort, using default")
		return defaultSort
	}

	return sort
}

func (g *Grid[T]) prepareRenderer() {
	rendererStage, ok := g.variant.(RendererStage[T])
	if !ok {
		return
	}

	if renderer := rendererStage.Renderer(g.input); renderer != nil {
		g.renderer = renderer
	}
}

func (g *Grid[T]) ensurePrepared(ctx context.Context) error {
	if g.prepared {
		return nil
	}

	return g.Prepare(ctx)
}

func (g *Grid[T]) fail(err error) error {
	g.logger.Error().Err(err).Str("path", g.input.Path).Msg("grid request failed")

	return err
}

// Items returns the records of the current page.
func (g *Grid[T]) Items() []T {
	return g.items
}

// Pagination returns the pagination state, nil before Prepare.
func (g *Grid[T]) Pagination() *PaginationState {
	return g.pagination
}

// Columns returns the variant columns.
func (g *Grid[T]) Columns() Columns[T] {
	if g.variant == nil {
		return nil
	}

	return g.variant.Columns()
}

// Sort returns the applied orderings.
func (g *Grid[T]) Sort() Orderings {
	return g.sort
}

func (g *Grid[T]) Input() Input {
	return g.input
}

func (g *Grid[T]) Config() Config {
	return g.cfg
}

// Display returns the display model produced by the renderer during HTML.
func (g *Grid[T]) Display() any {
	return g.display
}

// IsAjax returns true if the request asks for the JSON representation.
func (g *Grid[T]) IsAjax() bool {
	return g.input.IsAjax()
}

// SortURL returns the link sorting the grid by col. The direction is
// reversed if the grid is already sorted by col, the page is reset.
// Returns "" for unsortable columns or before Prepare.
func (g *Grid[T]) SortURL(col Column[T]) string {
	if g.pagination == nil || !col.IsSortable() {
		return ""
	}

	direction := DirectionASC
	if orderBy, ok := g.sort.Find(col.FieldName()); ok {
		direction = orderBy.Direction.Reverse()
	}

	return buildURL(g.pagination.baseURL, g.pagination.query, map[string]string{
		g.cfg.SortParam: FormatSortParam(col.Name, direction),
		g.cfg.PageParam: "1",
	}, g.pagination.fragment)
}

// HTML prepares the grid if needed, renders the display model and the
// configured view.
func (g *Grid[T]) HTML(ctx context.Context) (template.HTML, error) {
	if err := g.ensurePrepared(ctx); err != nil {
		return "", err
	}

	if g.renderer == nil {
		return "", g.fail(fmt.Errorf("cannot render grid: %w", ErrRendererNotSet))
	}
	if g.views == nil {
		return "", g.fail(fmt.Errorf("cannot render grid: %w", ErrViewsNotSet))
	}

	display, err := g.renderer.Render(ctx, g)
	if err != nil {
		return "", g.fail(fmt.Errorf("cannot render grid: %w", err))
	}
	g.display = display

	var buf bytes.Buffer
	if err = g.views.Render(&buf, g.cfg.View, g); err != nil {
		return "", g.fail(fmt.Errorf("cannot render grid: %w", err))
	}

	return template.HTML(buf.String()), nil
}

// ToArray prepares the grid if needed and returns the variant array
// representation of the current page.
func (g *Grid[T]) ToArray(ctx context.Context) (any, error) {
	if err := g.ensurePrepared(ctx); err != nil {
		return nil, err
	}

	return g.variant.ToArray(g.items), nil
}

// ToJSON serializes ToArray. A non-empty indent produces indented output.
func (g *Grid[T]) ToJSON(ctx context.Context, indent string) ([]byte, error) {
	array, err := g.ToArray(ctx)
	if err != nil {
		return nil, err
	}

	var data []byte
	if indent == "" {
		data, err = json.Marshal(array)
	} else {
		data, err = json.MarshalIndent(array, "", indent)
	}
	if err != nil {
		return nil, g.fail(fmt.Errorf("cannot serialize grid: %w", err))
	}

	return data, nil
}

// AJAXResponse writes ToJSON as the response body. The body is the bare
// array, without envelope.
func (g *Grid[T]) AJAXResponse(ctx context.Context, w http.ResponseWriter) error {
	data, err := g.ToJSON(ctx, "")
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(data)

	return err
}

// Respond writes the AJAX response if the request asks for it, the HTML
// representation otherwise.
func (g *Grid[T]) Respond(ctx context.Context, w http.ResponseWriter) error {
	if g.IsAjax() {
		return g.AJAXResponse(ctx, w)
	}

	html, err := g.HTML(ctx)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write([]byte(html))

	return err
}
