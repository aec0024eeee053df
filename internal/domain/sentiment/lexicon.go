package sentiment

// defaultLexicon maps words to valence weights. Positive weights lean
// toward satisfaction, negative toward frustration. The list is small
// on purpose; chat language in incident channels is repetitive.
var defaultLexicon = map[string]float64{
	"great":     1.8,
	"awesome":   2.0,
	"excellent": 1.9,
	"perfect":   1.9,
	"good":      1.2,
	"nice":      1.2,
	"love":      1.8,
	"happy":     1.6,
	"glad":      1.4,
	"thanks":    1.5,
	"thank":     1.5,
	"win":       1.5,
	"works":     1.1,
	"working":   1.0,
	"solid":     1.3,
	"shipped":   1.4,
	"fixed":     1.2,
	"resolved":  1.2,
	"clean":     1.1,
	"smooth":    1.3,

	"terrible":   -2.0,
	"awful":      -2.0,
	"worst":      -2.0,
	"hate":       -1.9,
	"wtf":        -1.9,
	"sucks":      -1.8,
	"angry":      -1.7,
	"outage":     -1.7,
	"broken":     -1.6,
	"failed":     -1.6,
	"failing":    -1.6,
	"fail":       -1.5,
	"ugh":        -1.5,
	"mess":       -1.4,
	"pain":       -1.4,
	"blocked":    -1.4,
	"bad":        -1.3,
	"down":       -1.2,
	"bug":        -1.1,
	"sorry":      -1.0,
	"frustrated": -1.7,
	"exhausted":  -1.8,
	"stressed":   -1.7,
	"tired":      -1.3,
}

// defaultNegators flip the following lexicon hit.
var defaultNegators = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"isn't":   true,
	"wasn't":  true,
	"don't":   true,
	"doesn't": true,
	"didn't":  true,
	"can't":   true,
	"won't":   true,
}

// defaultStressKeywords flag overload language regardless of valence.
var defaultStressKeywords = []string{
	"overwhelmed",
	"exhausted",
	"burned out",
	"burnt out",
	"swamped",
	"drowning",
	"stressed",
	"urgent",
	"asap",
	"emergency",
	"crisis",
	"help",
	"stuck",
	"frustrated",
	"tired",
	"deadline",
	"overloaded",
	"pressure",
}
