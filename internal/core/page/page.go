// Package page shapes list results into page descriptors.
package page

// Page is one window of an ordered result set.
type Page[T any] struct {
	Items   []T
	Total   int
	Skip    int
	Limit   int
	HasMore bool
}

// New builds a Page. HasMore is true when items beyond this window exist
// according to total.
func New[T any](items []T, total, skip, limit int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:   items,
		Total:   total,
		Skip:    skip,
		Limit:   limit,
		HasMore: skip+len(items) < total,
	}
}

// Map converts the items of p, keeping the descriptor.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return Page[U]{Items: out, Total: p.Total, Skip: p.Skip, Limit: p.Limit, HasMore: p.HasMore}
}
