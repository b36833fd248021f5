package sentiment

import (
	"math"
	"strings"
	"unicode"
)

// Scorer turns a headline into a bounded sentiment value in [-1, 1]. The
// scoring engine treats it as a black box; anything from a lexicon to a
// remote model can sit behind it.
type Scorer interface {
	Score(text string) float64
}

// Neutral scores everything 0. Useful in tests and when no lexicon applies.
type Neutral struct{}

func (Neutral) Score(string) float64 { return 0 }

// LexiconScorer is a small valence-lexicon scorer: token valences are summed
// and squashed into [-1, 1]. It is a stand-in for a proper sentiment model,
// good enough to tag demo headlines.
type LexiconScorer struct {
	lexicon map[string]float64
}

// squash controls how quickly the summed valence saturates toward ±1.
const squash = 15.0

func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{lexicon: map[string]float64{
		"beat":       1.9,
		"beats":      1.9,
		"record":     1.5,
		"strong":     1.6,
		"growth":     1.4,
		"upgrade":    1.8,
		"upgraded":   1.8,
		"surge":      1.7,
		"surges":     1.7,
		"rally":      1.5,
		"profit":     1.3,
		"gain":       1.2,
		"gains":      1.2,
		"expansion":  1.1,
		"dividend":   0.8,
		"buyback":    0.9,
		"miss":       -1.7,
		"misses":     -1.7,
		"weak":       -1.5,
		"downgrade":  -1.8,
		"downgraded": -1.8,
		"plunge":     -1.9,
		"plunges":    -1.9,
		"drop":       -1.2,
		"drops":      -1.2,
		"loss":       -1.4,
		"losses":     -1.4,
		"lawsuit":    -1.3,
		"recall":     -1.4,
		"fraud":      -2.2,
		"probe":      -1.2,
		"layoffs":    -1.6,
		"bankruptcy": -2.5,
		"cut":        -1.0,
		"cuts":       -1.0,
		"warning":    -1.3,
	}}
}

// Score sums the valence of known tokens and normalizes the total so it stays
// inside [-1, 1] no matter how many loaded words a headline stacks up.
func (s *LexiconScorer) Score(text string) float64 {
	var total float64
	for _, tok := range tokenize(text) {
		if v, ok := s.lexicon[tok]; ok {
			total += v
		}
	}
	if total == 0 {
		return 0
	}
	return total / math.Sqrt(total*total+squash)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
