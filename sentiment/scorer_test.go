package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexiconScorerPolarity(t *testing.T) {
	s := NewLexiconScorer()

	assert.Greater(t, s.Score("Company beats estimates on record growth"), 0.0)
	assert.Less(t, s.Score("Shares plunge after fraud probe and layoffs"), 0.0)
	assert.Zero(t, s.Score("Quarterly report scheduled for Thursday"))
	assert.Zero(t, s.Score(""))
}

func TestLexiconScorerBounds(t *testing.T) {
	s := NewLexiconScorer()

	pos := s.Score("beat beat beat surge surge record record rally rally upgrade")
	neg := s.Score("fraud bankruptcy plunge plunge downgrade layoffs loss loss miss")

	assert.LessOrEqual(t, pos, 1.0)
	assert.Greater(t, pos, 0.9)
	assert.GreaterOrEqual(t, neg, -1.0)
	assert.Less(t, neg, -0.9)
}

func TestLexiconScorerCaseAndPunctuation(t *testing.T) {
	s := NewLexiconScorer()
	assert.Equal(t, s.Score("STRONG growth!"), s.Score("strong growth"))
}

func TestNeutral(t *testing.T) {
	assert.Zero(t, Neutral{}.Score("record beat surge"))
}
