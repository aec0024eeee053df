// Package sentiment scores chat text with a compact weighted lexicon.
package sentiment

import "strings"

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithStressKeywords replaces the built-in stress keyword list.
// Keywords are matched case-insensitively as substrings, so multiword
// phrases like "burned out" are allowed.
func WithStressKeywords(keywords []string) Option {
	return func(a *Analyzer) {
		if len(keywords) == 0 {
			return
		}
		lowered := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				lowered = append(lowered, kw)
			}
		}
		if len(lowered) > 0 {
			a.stress = lowered
		}
	}
}

// WithLexicon replaces the built-in valence lexicon.
func WithLexicon(lexicon map[string]float64) Option {
	return func(a *Analyzer) {
		if len(lexicon) > 0 {
			a.lexicon = lexicon
		}
	}
}
