package similarity

// EditDistance returns the Levenshtein distance between a and b, counted in runes
// with unit cost for insertions, deletions and substitutions.
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	table := make([][]int, len(ra)+1)
	for i := range table {
		table[i] = make([]int, len(rb)+1)
		table[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		table[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			table[i][j] = min(
				table[i-1][j]+1,
				table[i][j-1]+1,
				table[i-1][j-1]+cost,
			)
		}
	}

	return table[len(ra)][len(rb)]
}

// Within reports whether a and b are at most maxEdits apart.
func Within(a, b string, maxEdits int) bool {
	return EditDistance(a, b) <= maxEdits
}
