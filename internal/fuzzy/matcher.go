package fuzzy

import (
	"sort"
	"strings"
	"unicode/utf8"

	subseq "github.com/sahilm/fuzzy"
)

// Scoring constants. A full-field exact match outranks a substring hit,
// which outranks token-level similarity.
const (
	substringFieldScore = 0.95
	substringTokenScore = 0.9
	// subsequenceScore is the floor for a token whose characters all occur
	// in order inside a candidate token. Catches dropped-letter typos that
	// bigram overlap underrates.
	subsequenceScore = 0.75
)

// Config holds the matcher tuning knobs.
type Config struct {
	// MinScore is the lowest score, in [0,1], still reported as a match.
	// The default tolerates roughly 30% dissimilarity.
	MinScore float64
	// MinMatchLength suppresses noise matches on queries or tokens shorter
	// than this many characters.
	MinMatchLength int
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{MinScore: 0.7, MinMatchLength: 2}
}

// Match points at an indexed record by position, with its relevance score.
type Match struct {
	Index int
	Score float64
}

// Matcher ranks records of an Index against free-text queries.
type Matcher struct {
	index *Index
	cfg   Config
}

// NewMatcher creates a matcher over a built or parsed index.
func NewMatcher(index *Index, cfg Config) *Matcher {
	if cfg.MinScore <= 0 {
		cfg.MinScore = DefaultConfig().MinScore
	}
	if cfg.MinMatchLength <= 0 {
		cfg.MinMatchLength = DefaultConfig().MinMatchLength
	}
	return &Matcher{index: index, cfg: cfg}
}

// Search returns the records matching query, best first, capped at limit.
// A limit <= 0 means no cap. Ties keep index insertion order, so of two
// equally scored records the first indexed wins.
func (m *Matcher) Search(query string, limit int) []Match {
	q := Normalize(query)
	if utf8.RuneCountInString(q) < m.cfg.MinMatchLength {
		return nil
	}

	qTokens := usableTokens(strings.Fields(q), m.cfg.MinMatchLength)

	matches := make([]Match, 0, 16)
	for i, entry := range m.index.Records {
		score := 0.0
		for _, key := range m.index.Keys {
			if s := m.fieldScore(q, qTokens, entry[key]); s > score {
				score = s
			}
		}
		if score >= m.cfg.MinScore {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// fieldScore rates one field against the whole query. A match anywhere in
// the field scores the same as a prefix match.
func (m *Matcher) fieldScore(q string, qTokens []string, f Field) float64 {
	if f.Text == "" {
		return 0
	}
	if f.Text == q {
		return 1
	}
	if strings.Contains(f.Text, q) {
		return substringFieldScore
	}
	if len(qTokens) == 0 {
		return 0
	}

	total := 0.0
	for _, qt := range qTokens {
		best := 0.0
		for _, ft := range f.Tokens {
			if s := m.tokenScore(qt, ft); s > best {
				best = s
			}
		}
		total += best
	}
	return total / float64(len(qTokens))
}

// tokenScore rates a single query token against a single field token.
func (m *Matcher) tokenScore(qt, ft string) float64 {
	if qt == ft {
		return 1
	}
	if strings.Contains(ft, qt) {
		return substringTokenScore
	}

	score := diceCoefficient(qt, ft)
	if score < subsequenceScore && len(subseq.Find(qt, []string{ft})) > 0 {
		score = subsequenceScore
	}
	return score
}

// usableTokens drops tokens below the minimum matched run length.
func usableTokens(tokens []string, minLen int) []string {
	out := tokens[:0]
	for _, t := range tokens {
		if utf8.RuneCountInString(t) >= minLen {
			out = append(out, t)
		}
	}
	return out
}
