package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 15
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SearchInput carries untrusted pagination, sort and filter values, e.g. as
// decoded from a query string or a JSON body.
type SearchInput[F any] struct {
	Page    any
	PerPage any
	Sort    any
	SortDir any
	Filter  *F
}

// SearchParams is the normalized query descriptor every searchable repository
// accepts. SortDir is nil iff Sort is nil; Filter is nil when no filter applies.
type SearchParams[F any] struct {
	Page    int
	PerPage int
	Sort    *string
	SortDir *SortDirection
	Filter  *F
}

// EmptyChecker is implemented by filters that can collapse to "no filter".
type EmptyChecker interface {
	IsEmpty() bool
}

// NewSearchParams never fails: malformed values fall back to their defaults.
func NewSearchParams[F any](in SearchInput[F]) SearchParams[F] {
	p := SearchParams[F]{
		Page:    positiveInt(in.Page, DefaultPage),
		PerPage: positiveInt(in.PerPage, DefaultPerPage),
		Sort:    normalizeSort(in.Sort),
		Filter:  normalizeFilter(in.Filter),
	}

	if p.Sort != nil {
		p.SortDir = normalizeSortDir(in.SortDir)
	}

	return p
}

// Normalize re-applies the construction rules to a descriptor built by hand.
func (p SearchParams[F]) Normalize() SearchParams[F] {
	in := SearchInput[F]{
		Page:    p.Page,
		PerPage: p.PerPage,
		Filter:  p.Filter,
	}

	if p.Sort != nil {
		in.Sort = *p.Sort
	}
	if p.SortDir != nil {
		in.SortDir = string(*p.SortDir)
	}

	return NewSearchParams(in)
}

func (p SearchParams[F]) Limit() int {
	return p.PerPage
}

// Offset saturates at math.MaxInt for pages too far out to address.
func (p SearchParams[F]) Offset() int {
	if p.Page <= 1 || p.PerPage <= 0 {
		return 0
	}

	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}

	return (p.Page - 1) * p.PerPage
}

// SortField returns the requested sort field, or "" when unsorted.
func (p SearchParams[F]) SortField() string {
	if p.Sort == nil {
		return ""
	}

	return *p.Sort
}

func (p SearchParams[F]) Direction() SortDirection {
	if p.SortDir == nil {
		return SortAsc
	}

	return *p.SortDir
}

func positiveInt(v any, def int) int {
	n, ok := parseInteger(v)
	if !ok || n <= 0 {
		return def
	}

	return n
}

// parseInteger reads v as an integer. Booleans, fractional numbers, blank or
// non-numeric strings and composite values do not count.
func parseInteger(v any) (int, bool) {
	switch n := deref(v).(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return intFromUint(uint64(n))
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return intFromUint(uint64(n))
	case uint64:
		return intFromUint(n)
	case float32:
		return intFromFloat(float64(n))
	case float64:
		return intFromFloat(n)
	case json.Number:
		return intFromString(n.String())
	case string:
		return intFromString(n)
	default:
		return 0, false
	}
}

func intFromUint(n uint64) (int, bool) {
	if n > math.MaxInt {
		return 0, false
	}

	return int(n), true
}

func intFromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}

	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}

	return int(f), true
}

func intFromString(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return intFromFloat(f)
}

func normalizeSort(v any) *string {
	switch s := deref(v).(type) {
	case nil:
		return nil
	case string:
		if s == "" {
			return nil
		}
		return &s
	default:
		str := fmt.Sprint(s)
		return &str
	}
}

func normalizeSortDir(v any) *SortDirection {
	dir := SortAsc

	if v := deref(v); v != nil {
		if strings.EqualFold(fmt.Sprint(v), string(SortDesc)) {
			dir = SortDesc
		}
	}

	return &dir
}

func normalizeFilter[F any](f *F) *F {
	if f == nil {
		return nil
	}

	switch v := any(*f).(type) {
	case string:
		if v == "" {
			return nil
		}
	case EmptyChecker:
		if v.IsEmpty() {
			return nil
		}
	}

	return f
}

// deref unwraps the pointer types raw inputs commonly arrive as.
func deref(v any) any {
	switch p := v.(type) {
	case *string:
		if p == nil {
			return nil
		}
		return *p
	case *int:
		if p == nil {
			return nil
		}
		return *p
	case *SortDirection:
		if p == nil {
			return nil
		}
		return string(*p)
	case SortDirection:
		return string(p)
	default:
		return v
	}
}
