package match

import (
	"sort"
)

// Candidate is a known member name scored against a requested one.
type Candidate struct {
	Name string

	// Score is the Similarity (0-1), the better of the plain and the
	// accessor-free comparison.
	Score float64

	// Folded is Name as it was compared.
	Folded string
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Rank scores every name against target.
// Returns candidates sorted by score (descending); duplicates are kept once.
func Rank(target string, names []string) CandidateList {
	var candidates CandidateList

	folded, bare := Fold(target), FoldAccessor(target)

	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		norm := Fold(name)
		score := max(Similarity(norm, folded), Similarity(FoldAccessor(name), bare))

		candidates = append(candidates, Candidate{Name: name, Score: score, Folded: norm})
	}

	// Sort by score (descending), then by name for determinism
	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to n names scoring at least DefaultMinScore against target.
func Suggest(target string, names []string, n int) []string {
	return Rank(target, names).AboveThreshold(DefaultMinScore).Top(n).Names()
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	// Higher score comes first
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}
	// Tie-breaker: alphabetical by name
	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}
	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}
	return &c[0]
}

// AboveThreshold returns candidates with score above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}
	return result
}

// Names returns the candidate names in rank order.
func (c CandidateList) Names() []string {
	if len(c) == 0 {
		return nil
	}

	names := make([]string, len(c))
	for i, cand := range c {
		names[i] = cand.Name
	}
	return names
}

// DefaultMinScore is the minimum score for a name to be suggested.
const DefaultMinScore = 0.5
