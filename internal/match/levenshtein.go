package match

// Distance is the Levenshtein distance between a and b, counted in runes:
// the fewest single-rune insertions, deletions or substitutions turning one
// into the other.
func Distance(a, b string) int {
	long, short := []rune(a), []rune(b)
	if len(long) < len(short) {
		long, short = short, long
	}

	// row[j] holds the distance between the prefixes long[:i] and short[:j].
	row := make([]int, len(short)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(long); i++ {
		diag := row[0]
		row[0] = i

		for j := 1; j <= len(short); j++ {
			up := row[j]

			cost := 1
			if long[i-1] == short[j-1] {
				cost = 0
			}
			row[j] = min(up+1, row[j-1]+1, diag+cost)

			diag = up
		}
	}

	return row[len(short)]
}

// Similarity maps Distance onto [0, 1]: 1 for equal strings, 0 when no rune
// lines up.
func Similarity(a, b string) float64 {
	n := max(len([]rune(a)), len([]rune(b)))
	if n == 0 {
		return 1
	}

	return 1 - float64(Distance(a, b))/float64(n)
}
