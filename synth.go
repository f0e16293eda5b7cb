package brlex

import "strings"

// spellingPair links a mutated capitalized word onset and its lemma onset to
// the other mutated onset of the same lemma.
type spellingPair struct {
	word, lemma, other string
}

var spellingPairs = []spellingPair{
	{"G", "K", "C’h"},
	{"C’h", "K", "G"},
	{"D", "T", "Z"},
	{"Z", "T", "D"},
	{"B", "P", "F"},
	{"F", "P", "B"},
	{"V", "B", "P"},
	{"P", "B", "V"},
	{"Z", "D", "T"},
}

// Synthesize returns the extra spelling generated for a mutated proper noun,
// if any. The returned record shares the lemma and tag of rec.
func Synthesize(rec OutputRecord) (OutputRecord, bool) {
	if rec.Tag.Category() != CatProperNoun || rec.Tag.Mutation() == "" {
		return OutputRecord{}, false
	}
	if !IsCapitalized(rec.Word) {
		return OutputRecord{}, false
	}
	for _, p := range spellingPairs {
		if !hasFoldedPrefix(rec.Word, p.word) || !strings.HasPrefix(rec.Lemma, p.lemma) {
			continue
		}
		return OutputRecord{
			Word:  p.other + rec.Lemma[len(p.lemma):],
			Lemma: rec.Lemma,
			Tag:   rec.Tag,
		}, true
	}
	return OutputRecord{}, false
}
