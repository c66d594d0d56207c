package domain

// SearchResult is one page of a search together with its pagination metadata.
// Total counts every match before pagination.
type SearchResult[E any] struct {
	Items       []E
	Total       int
	CurrentPage int
	PerPage     int
	LastPage    int
}

func NewSearchResult[E any](items []E, total, currentPage, perPage int) SearchResult[E] {
	if items == nil {
		items = []E{}
	}

	return SearchResult[E]{
		Items:       items,
		Total:       total,
		CurrentPage: currentPage,
		PerPage:     perPage,
		LastPage:    lastPage(total, perPage),
	}
}

func lastPage(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}

	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}

	return pages
}

// MapSearchResult converts the items of r and keeps its metadata.
func MapSearchResult[E, O any](r SearchResult[E], fn func(E) O) SearchResult[O] {
	items := make([]O, len(r.Items))
	for i, item := range r.Items {
		items[i] = fn(item)
	}

	return SearchResult[O]{
		Items:       items,
		Total:       r.Total,
		CurrentPage: r.CurrentPage,
		PerPage:     r.PerPage,
		LastPage:    r.LastPage,
	}
}
