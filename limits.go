package gogrid

import (
	"math"
	"strconv"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 25
	// NoMaxPerPage disables the upper bound for per-page values.
	NoMaxPerPage = 0
)

// DefaultPerPageChoices returns the page sizes offered to the user when the
// configuration does not specify its own.
func DefaultPerPageChoices() []int {
	return []int{10, 25, 50, 100}
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// IsValidPageNumber returns true if value can be converted to an integer
// without losing anything and that integer is >= 1.
//
// Accepted inputs are Go integers, whole floats, canonical decimal strings
// ("7", not "07", " 7" or "+7") and pointers to those. Everything else,
// including nil, is invalid.
func IsValidPageNumber(value any) bool {
	_, ok := toPageNumber(value)
	return ok
}

// ResolvePage returns the requested page if it is a valid page number,
// otherwise fallback.
func ResolvePage(requested any, fallback int) int {
	page, ok := toPageNumber(requested)
	if !ok {
		return fallback
	}

	return page
}

// ResolvePerPage returns the requested page size if it is valid, otherwise
// fallback. The value is never clamped.
func ResolvePerPage(requested any, fallback int) int {
	return ResolvePerPageMax(requested, fallback, NoMaxPerPage)
}

// ResolvePerPageMax is ResolvePerPage with an upper bound. A value above
// maxPerPage is treated as invalid and replaced by fallback. NoMaxPerPage
// disables the bound.
func ResolvePerPageMax(requested any, fallback int, maxPerPage int) int {
	perPage, ok := toPageNumber(requested)
	if !ok || (maxPerPage > NoMaxPerPage && perPage > maxPerPage) {
		return fallback
	}

	return perPage
}

// ComputeOffsetLimit returns the dataset window for the page:
//
//	offset = perPage * (currentPage - 1)
//	limit  = perPage
//
// An offset that does not fit into int saturates at math.MaxInt: such a page
// is past the end of any dataset.
//
// IMPORTANT:
// Both arguments must be >= 1, validate them with IsValidPageNumber first.
func ComputeOffsetLimit(currentPage, perPage int) (offset int, limit int) {
	if perPage > 0 && currentPage-1 > math.MaxInt/perPage {
		return math.MaxInt, perPage
	}

	return perPage * (currentPage - 1), perPage
}

func toPageNumber(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return integerPageNumber(v)
	case int8:
		return integerPageNumber(v)
	case int16:
		return integerPageNumber(v)
	case int32:
		return integerPageNumber(v)
	case int64:
		return integerPageNumber(v)
	case uint:
		return integerPageNumber(v)
	case uint8:
		return integerPageNumber(v)
	case uint16:
		return integerPageNumber(v)
	case uint32:
		return integerPageNumber(v)
	case uint64:
		return integerPageNumber(v)
	case float32:
		return floatPageNumber(float64(v))
	case float64:
		return floatPageNumber(v)
	case string:
		return stringPageNumber(v)
	case *int:
		if v == nil {
			return 0, false
		}
		return integerPageNumber(*v)
	case *string:
		if v == nil {
			return 0, false
		}
		return stringPageNumber(*v)
	default:
		return 0, false
	}
}

func integerPageNumber[N integer](n N) (int, bool) {
	if n < 1 || uint64(n) > math.MaxInt {
		return 0, false
	}

	return int(n), true
}

func floatPageNumber(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < 1 || f > 1<<53 {
		return 0, false
	}

	return int(f), true
}

func stringPageNumber(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s {
		return 0, false
	}

	return integerPageNumber(n)
}
