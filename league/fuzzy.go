package league

import (
	"errors"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/mww/fantasy_assistant/model"
)

var errNoPlayerNames = errors.New("no player names to match against")

// jaroWinkler is stateless after construction and safe to share.
var jaroWinkler = metrics.NewJaroWinkler()

// resolvePlayer maps free-text input to the single best-matching player in
// the universe. It always picks something, so the caller gets a best guess
// even for badly misspelled input. Ties go to the earlier name in
// candidate order, which keeps resolution deterministic.
func (l *League) resolvePlayer(query string) (playerID, canonicalName string, err error) {
	if len(l.playerNames) == 0 {
		return "", "", errNoPlayerNames
	}

	best := -1.0
	for _, name := range l.playerNames {
		if score := nameSimilarity(query, name); score > best {
			best = score
			canonicalName = name
		}
	}
	return l.nameToPlayer[canonicalName], canonicalName, nil
}

// nameSimilarity scores a query against a candidate name in [0, 1]. It is
// the max of three Jaro-Winkler views: the full normalized strings, the
// token-sorted strings (tolerates "Jefferson Justin"), and the best
// pairing of individual tokens (tolerates a bare surname like "Kelce").
// The discounts keep an exact full-string match ahead of partial ones.
// Generational suffixes are stripped first so "Deebo Samuel" lines up
// with "Deebo Samuel Sr.".
func nameSimilarity(query, candidate string) float64 {
	q := nameTokens(model.TrimNameSuffix(query))
	c := nameTokens(model.TrimNameSuffix(candidate))
	if len(q) == 0 || len(c) == 0 {
		return 0
	}

	score := strutil.Similarity(strings.Join(q, " "), strings.Join(c, " "), jaroWinkler)

	if s := 0.95 * strutil.Similarity(joinSorted(q), joinSorted(c), jaroWinkler); s > score {
		score = s
	}

	if s := 0.90 * bestTokenScore(q, c); s > score {
		score = s
	}

	return score
}

// bestTokenScore pairs each query token with its closest candidate token
// and averages the results.
func bestTokenScore(query, candidate []string) float64 {
	total := 0.0
	for _, qt := range query {
		best := 0.0
		for _, ct := range candidate {
			if s := strutil.Similarity(qt, ct, jaroWinkler); s > best {
				best = s
			}
		}
		total += best
	}
	return total / float64(len(query))
}

// nameTokens lowercases the input, strips everything that is not a letter
// or digit, and splits it into words.
func nameTokens(s string) []string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, s)
	return strings.Fields(clean)
}

func joinSorted(tokens []string) string {
	s := make([]string, len(tokens))
	copy(s, tokens)
	sort.Strings(s)
	return strings.Join(s, " ")
}
