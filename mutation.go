package brlex

import (
	"sort"
	"strings"
)

const mutationPrefix = "M:"

// MutationClass is the kind of initial consonant mutation.
type MutationClass int

const (
	MutNone MutationClass = iota
	MutLenition
	MutSpirant
	MutHardening
	MutMixed
)

func (c MutationClass) String() string {
	switch c {
	case MutLenition:
		return "lenition"
	case MutSpirant:
		return "spirant"
	case MutHardening:
		return "hardening"
	case MutMixed:
		return "mixed"
	default:
		return "none"
	}
}

// ruleOrder is the canonical order of rule identifiers in an annotation.
var ruleOrder = []string{"1", "1a", "2", "3", "4"}

// ruleClasses maps a rule identifier to its mutation class.
var ruleClasses = map[string]MutationClass{
	"1":  MutLenition,
	"1a": MutLenition,
	"2":  MutSpirant,
	"3":  MutHardening,
	"4":  MutMixed,
}

type onsetPair struct {
	lemma, word string
}

// mutationTable maps (lemma onset, word onset) to the rule identifiers the
// alternation satisfies.
var mutationTable = map[onsetPair][]string{
	// lenition
	{"k", "g"}:   {"1", "1a"},
	{"t", "d"}:   {"1", "1a"},
	{"p", "b"}:   {"1", "1a"},
	{"kw", "gw"}: {"1", "1a"},
	{"g", "c'h"}: {"1", "4"},
	{"gw", "w"}:  {"1", "4"},
	{"b", "v"}:   {"1", "4"},
	{"m", "v"}:   {"1", "4"},
	{"d", "z"}:   {"1"},
	// spirantization
	{"k", "c'h"}:  {"2"},
	{"kw", "c'h"}: {"2"},
	{"t", "z"}:    {"2"},
	{"p", "f"}:    {"2"},
	// hardening
	{"b", "p"}:   {"3"},
	{"g", "k"}:   {"3"},
	{"gw", "kw"}: {"3"},
	{"d", "t"}:   {"3", "4"},
}

// alternation describes a lemma onset whose mutated forms are not
// predictable from its initial class alone.
type alternation struct {
	onset      string
	alternates []alternate
}

type alternate struct {
	onset string
	rules []string
}

// alternatingOnsets are compared before the table lookup; their alternates
// may start with a vowel.
var alternatingOnsets = []alternation{
	{
		onset: "gou",
		alternates: []alternate{
			{"c'hou", []string{"4"}},
			{"kou", []string{"3"}},
			{"ou", []string{"1", "4"}},
		},
	},
}

// Mutation is the result of comparing a word onset with its lemma onset.
type Mutation struct {
	Class MutationClass
	Rules []string
}

// Annotation renders the mutation as a tag field, e.g. "M:1:1a:".
// It is empty when no mutation applies.
func (m Mutation) Annotation() string {
	if len(m.Rules) == 0 {
		return ""
	}
	return mutationPrefix + strings.Join(m.Rules, ":") + ":"
}

// Anomaly is an onset pair with no mutation rule.
type Anomaly struct {
	Lemma      string
	Word       string
	LemmaClass string
	WordClass  string
	Tag        string
}

func (a *Anomaly) String() string {
	return "no mutation rule for " + quoteClass(a.LemmaClass) + " -> " + quoteClass(a.WordClass)
}

func quoteClass(c string) string {
	if c == "" {
		return "<none>"
	}
	return c
}

// newMutation builds a Mutation from rule ids, sorted in canonical order.
func newMutation(rules []string) Mutation {
	if len(rules) == 0 {
		return Mutation{}
	}
	ids := canonicalRules(rules)
	return Mutation{Class: ruleClasses[ids[0]], Rules: ids}
}

func canonicalRules(rules []string) []string {
	rank := func(id string) int {
		for i, r := range ruleOrder {
			if r == id {
				return i
			}
		}
		return len(ruleOrder)
	}
	ids := append([]string(nil), rules...)
	sort.SliceStable(ids, func(i, j int) bool {
		return rank(ids[i]) < rank(ids[j])
	})
	return ids
}

// MutationRules returns the rule ids for an onset pair and whether the pair
// is in the table.
func MutationRules(lemmaClass, wordClass string) ([]string, bool) {
	rules, ok := mutationTable[onsetPair{lemmaClass, wordClass}]
	if !ok {
		return nil, false
	}
	return canonicalRules(rules), true
}

// DetectMutation decides whether word is a mutated form of lemma. A non-nil
// Anomaly means the onsets differ but no rule explains the difference.
func DetectMutation(lemma, word string) (Mutation, *Anomaly) {
	if m, ok := detectAlternation(lemma, word); ok {
		return m, nil
	}

	lc, wc := InitialClass(lemma), InitialClass(word)
	if lc == "" || wc == "" || lc == wc {
		return Mutation{}, nil
	}
	// gou- spellings of gw- lemmas are orthographic variants.
	if lc == "gw" && wc == "g" {
		return Mutation{}, nil
	}
	if rules, ok := MutationRules(lc, wc); ok {
		return newMutation(rules), nil
	}
	return Mutation{}, &Anomaly{Lemma: lemma, Word: word, LemmaClass: lc, WordClass: wc}
}

// detectAlternation handles lemmas with an alternating onset. ok is false
// when the lemma has no such onset or the word matches none of its forms.
func detectAlternation(lemma, word string) (Mutation, bool) {
	fl, fw := Fold(lemma), Fold(word)
	for _, a := range alternatingOnsets {
		if !strings.HasPrefix(fl, a.onset) {
			continue
		}
		if strings.HasPrefix(fw, a.onset) {
			return Mutation{}, true
		}
		for _, alt := range a.alternates {
			if strings.HasPrefix(fw, alt.onset) {
				return newMutation(alt.rules), true
			}
		}
	}
	return Mutation{}, false
}

// Classify appends the mutation annotation of word relative to lemma to tag.
// On an anomaly the tag is returned unchanged together with the anomaly.
func Classify(lemma, word string, tag Tag) (Tag, *Anomaly) {
	m, an := DetectMutation(lemma, word)
	if an != nil {
		an.Tag = tag.String()
		return tag, an
	}
	if m.Class == MutNone {
		return tag, nil
	}
	return tag.Append(m.Annotation()), nil
}
