package layout

// Batch is the run of items assigned to one page. Items[i] goes into
// slot i of the page's Grid.
type Batch[T any] struct {
	Index int
	Items []T
}

// Paginate splits items into contiguous batches of at most capacity,
// preserving order. Only the last batch may be short, and none is empty.
// An empty input yields no batches. A capacity below one fails with a
// *DegenerateLayoutError since no finite pagination exists.
func Paginate[T any](items []T, capacity int) ([]Batch[T], error) {
	if capacity < 1 {
		return nil, &DegenerateLayoutError{Capacity: capacity}
	}
	pages := (len(items) + capacity - 1) / capacity
	batches := make([]Batch[T], 0, pages)
	for start := 0; start < len(items); start += capacity {
		end := min(start+capacity, len(items))
		batches = append(batches, Batch[T]{
			Index: len(batches),
			Items: items[start:end:end],
		})
	}
	return batches, nil
}

// PageCount is ceil(n / capacity), or zero for a degenerate capacity.
func PageCount(n, capacity int) int {
	if capacity < 1 || n <= 0 {
		return 0
	}
	return (n + capacity - 1) / capacity
}
