package exprutil

import "github.com/antzucaro/matchr"

// Suggestion is a ranked candidate for a misspelled annotation token (in
// this module, the adjacency keywords ALL_DIFFER/ONE_DIFFER),
// trimmed from foundry/similarity's Suggest pipeline down to the one metric
// that matters for short, fixed-vocabulary keywords: Jaro-Winkler, which
// rewards a shared prefix the way a truncated or fat-fingered keyword does.
type Suggestion struct {
	Value string
	Score float64
}

// SuggestToken ranks candidates by Jaro-Winkler similarity to input and
// returns the ones scoring at or above minScore, highest first. It backs
// the suggestion diag.AnnotationSyntaxError carries when the adjacency
// annotation's keyword is a near miss of ALL_DIFFER or ONE_DIFFER.
//
// minScore of 0 selects the package default of 0.7 — higher than
// foundry/similarity's 0.6 general-purpose default, since the annotation
// vocabulary is small and a looser threshold would suggest unrelated
// keywords as often as the intended one.
func SuggestToken(input string, candidates []string, minScore float64) []Suggestion {
	if minScore == 0 {
		minScore = 0.7
	}
	if len(candidates) == 0 {
		return nil
	}

	scored := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		score := matchr.JaroWinkler(input, c, false)
		if score >= minScore {
			scored = append(scored, Suggestion{Value: c, Score: score})
		}
	}

	for i := 1; i < len(scored); i++ {
		key := scored[i]
		j := i - 1
		for j >= 0 && suggestionLess(scored[j], key) {
			scored[j+1] = scored[j]
			j--
		}
		scored[j+1] = key
	}
	return scored
}

// suggestionLess reports whether a should sort after b: lower score first,
// then alphabetically, matching foundry/similarity's tie-break order.
func suggestionLess(a, b Suggestion) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Value > b.Value
}
