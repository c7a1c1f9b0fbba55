package repo

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// page applies offset/limit windowing to an already-filtered slice.
func page[T any](items []T, offset, limit *int) []T {
	if offset != nil && *offset > len(items) {
		return []T{}
	}

	start := 0
	if offset != nil {
		start = clamp(*offset, 0, len(items))
	}

	end := len(items)
	if limit != nil && *limit > 0 {
		end = clamp(start+*limit, start, len(items))
	}

	return items[start:end]
}
