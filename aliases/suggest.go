package aliases

type suggestion struct {
	alias    string
	distance int
	order    int
}

// maxDistance is how many edits a misspelling of token may be away from an
// alias to be suggested.
func maxDistance(token string) int {
	switch n := len([]rune(token)); {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	}
	return 3
}

// Suggest returns up to n aliases within a few edits of token, closest
// first. Each entry contributes at most its closest alias.
func (t *Table) Suggest(token string, n int) []string {
	folded := fold(token)
	if folded == "" {
		return nil
	}
	limit := maxDistance(folded)
	rank := newRanking(n, func(a, b suggestion) bool {
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		return a.order < b.order
	})
	for idx, entry := range t.entries {
		best := suggestion{distance: limit + 1}
		for _, alias := range entry.Aliases {
			if d := distance(folded, fold(alias)); d < best.distance {
				best = suggestion{alias: alias, distance: d, order: idx}
			}
		}
		if best.distance <= limit {
			rank.offer(best)
		}
	}
	result := []string{}
	for _, s := range rank.sorted() {
		result = append(result, s.alias)
	}
	return result
}

// Suggest is Table.Suggest for the table of ns.
func (t *Tables) Suggest(ns Namespace, token string, n int) []string {
	table := t.tables[ns]
	if table == nil {
		return nil
	}
	return table.Suggest(token, n)
}

// distance is the Levenshtein distance between a and b, counted in runes.
func distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
