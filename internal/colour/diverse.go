package colour

// VaryingColors selects the n most mutually distinct colours from a
// palette by greedy farthest-point selection: starting from the first
// colour, it repeatedly adds the candidate whose minimum CIEDE2000
// distance to the current selection is largest. Ties keep the earliest
// candidate in input order, so the result is deterministic for a fixed
// input order. Inputs no longer than n are returned unchanged.
func VaryingColors(colors []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(colors) <= n {
		out := make([]string, len(colors))
		copy(out, colors)
		return out
	}

	selected := []string{colors[0]}
	remaining := make([]string, len(colors)-1)
	copy(remaining, colors[1:])

	for len(selected) < n && len(remaining) > 0 {
		bestIdx := -1
		bestScore := -1.0
		for i, candidate := range remaining {
			score, ok := minDistanceTo(candidate, selected)
			if !ok {
				continue
			}
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			// Nothing left that parses; stop rather than loop.
			break
		}
		selected = append(selected, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return selected
}

// minDistanceTo returns the candidate's distance to its nearest
// neighbour within the selection. ok is false when the candidate (or
// every selected colour) fails to parse.
func minDistanceTo(candidate string, selected []string) (float64, bool) {
	min := -1.0
	for _, s := range selected {
		d, err := Distance(candidate, s)
		if err != nil {
			continue
		}
		if min < 0 || d < min {
			min = d
		}
	}
	if min < 0 {
		return 0, false
	}
	return min, true
}
