// Package gogrid provides paginated, sortable data grids over GORM queries
// and in-memory slices.
//
// Overview
//
// A grid is described by a Variant: it supplies the dataset (Query), the
// columns and the array representation of a page. Optional behaviour is
// plugged in by implementing FilterStage, SortStage or RendererStage.
//
// For every request the Grid reads the raw page, page size, sort and ajax
// parameters (Input), counts the dataset, resolves the page with silent
// fallback to defaults and fetches the current window.
//
// Key concepts
//   - PaginationState: current page, page size, total count and the links
//     derived from them. Invalid input never fails, it falls back.
//   - Query: the dataset contract. GormQuery wraps *gorm.DB, SliceQuery
//     wraps a slice.
//   - Orderings: multi-column ordering parsed from "alias direction" params.
//   - Renderer and ViewEngine: the display model and the HTML views. The
//     default views are embedded html/template files.
//
// Usage:
//
//	views, _ := gogrid.NewTemplateViews()
//	http.Handle("/users", gogrid.Handler[User]{
//		Variant:  func(*http.Request) gogrid.Variant[User] { return UsersGrid{db: db} },
//		Config:   gogrid.DefaultConfig(),
//		Renderer: gogrid.TableRenderer[User]{},
//		Views:    views,
//	})
package gogrid
