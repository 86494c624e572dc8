// Package batch splits large IN-list arguments into store-sized chunks.
// The remote store rejects overly large "match any of these" predicates, so
// every bulk read goes through here.
package batch

// DefaultChunkSize is the empirically safe IN-list size per round trip.
const DefaultChunkSize = 50

// InChunks runs fn over consecutive slices of at most size items and
// concatenates the results. A failing chunk aborts the whole call.
func InChunks[T, R any](items []T, size int, fn func([]T) ([]R, error)) ([]R, error) {
	if size <= 0 {
		size = DefaultChunkSize
	}

	var out []R
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}

		part, err := fn(items[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, part...)
	}

	return out, nil
}
