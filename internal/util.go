package internal

// Backtrack follows predecessor links from current back to start and appends
// every visited index except start to dst, nearest to current first.
//
// The walk is bounded by len(predecessor) steps. ok is false when the bound is
// hit or a link leaves the table, which means the predecessor table is
// inconsistent.
func Backtrack(dst []int, predecessor []int, current, start int) (path []int, ok bool) {
	for steps := 0; current != start; steps++ {
		if steps >= len(predecessor) || current < 0 || current >= len(predecessor) {
			return dst, false
		}
		dst = append(dst, current)
		current = predecessor[current]
	}
	return dst, true
}
