// Package sentiment scores chat text with a compact weighted lexicon.
package sentiment

import (
	"math"
	"strings"
	"unicode"
)

// Classification thresholds on the compound score.
const (
	negativeThreshold = -0.05
	positiveThreshold = 0.05
)

// normalizationAlpha smooths the summed word weights into [-1, 1].
const normalizationAlpha = 15.0

// negationDampener flips and damps a hit preceded by a negator.
const negationDampener = -0.74

// Analyzer scores individual messages and summarizes windows of them.
// A zero-configured Analyzer uses the built-in lexicon and stress
// keyword list.
type Analyzer struct {
	lexicon  map[string]float64
	negators map[string]bool
	stress   []string
}

// New builds an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		lexicon:  defaultLexicon,
		negators: defaultNegators,
		stress:   defaultStressKeywords,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Score returns a compound sentiment in [-1, 1] for one message.
// Unknown words contribute nothing; an empty message scores 0.
func (a *Analyzer) Score(text string) float64 {
	words := tokenize(text)
	var sum float64
	for i, w := range words {
		weight, ok := a.lexicon[w]
		if !ok {
			continue
		}
		if i > 0 && a.negators[words[i-1]] {
			weight *= negationDampener
		}
		sum += weight
	}
	if sum == 0 {
		return 0
	}
	return sum / math.Sqrt(sum*sum+normalizationAlpha)
}

// Negative reports whether a compound score reads as negative.
func (a *Analyzer) Negative(score float64) bool { return score <= negativeThreshold }

// Positive reports whether a compound score reads as positive.
func (a *Analyzer) Positive(score float64) bool { return score >= positiveThreshold }

// HasStressSignal reports whether the message contains any configured
// stress keyword or phrase, case-insensitively.
func (a *Analyzer) HasStressSignal(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range a.stress {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Summary aggregates per-message sentiment over a window.
type Summary struct {
	Count         int
	Mean          float64
	Volatility    float64 // population standard deviation of scores
	NegativeRatio float64
	PositiveRatio float64
	StressRatio   float64
}

// Summarize scores every message and aggregates. An empty input
// yields a zero Summary.
func (a *Analyzer) Summarize(texts []string) Summary {
	n := len(texts)
	if n == 0 {
		return Summary{}
	}

	scores := make([]float64, n)
	var sum float64
	var negatives, positives, stressed int
	for i, text := range texts {
		s := a.Score(text)
		scores[i] = s
		sum += s
		if a.Negative(s) {
			negatives++
		}
		if a.Positive(s) {
			positives++
		}
		if a.HasStressSignal(text) {
			stressed++
		}
	}

	mean := sum / float64(n)
	var variance float64
	for _, s := range scores {
		d := s - mean
		variance += d * d
	}
	variance /= float64(n)

	return Summary{
		Count:         n,
		Mean:          mean,
		Volatility:    math.Sqrt(variance),
		NegativeRatio: float64(negatives) / float64(n),
		PositiveRatio: float64(positives) / float64(n),
		StressRatio:   float64(stressed) / float64(n),
	}
}

// tokenize lowercases and splits on anything that is not a letter,
// digit or apostrophe, so contractions like "can't" survive.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
