package brlex

import "strings"

// tagRule maps an analyzer tag (or tag prefix) to a simplified tag.
type tagRule struct {
	raw string
	tag string
}

var (
	// exactTags maps a normalized analyzer tag to its simplified tag.
	exactTags map[string]string
	// prefixTags is checked in order after exactTags, for tag families the
	// analyzer extends with detail we do not keep.
	prefixTags []tagRule
)

// placeholderLemmas are lemmas the analyzer uses when the word is its own lemma.
var placeholderLemmas = map[string]bool{
	"prpers": true,
	"prpos":  true,
}

var genders = []struct{ raw, tag string }{
	{"m", "m"},
	{"f", "f"},
	{"mf", "e"},
}

var numbers = []struct{ raw, tag string }{
	{"sg", "s"},
	{"pl", "p"},
	{"sp", "sp"},
	{"du", "d"},
}

var persons = []struct{ raw, tag string }{
	{"p1", "1"},
	{"p2", "2"},
	{"p3", "3"},
}

var verbKinds = []string{"vblex", "vbser", "vbhaver", "vbmod"}

var tenses = []struct{ raw, tag string }{
	{"pri", "pres"},
	{"pii", "impa"},
	{"past", "pass"},
	{"fti", "futu"},
	{"cni", "conf"},
	{"cip", "conj"},
	{"imp", "impe"},
}

var properNounKinds = []string{"top", "cog", "org", "hyd", "ant", "al"}

func init() {
	exact, prefix := buildTagRules()
	exactTags = make(map[string]string, len(exact))
	for _, r := range exact {
		exactTags[r.raw] = r.tag
	}
	prefixTags = prefix
}

// buildTagRules returns the exact-match and prefix rules of the simplifier.
func buildTagRules() (exact, prefix []tagRule) {
	add := func(raw, tag string) {
		exact = append(exact, tagRule{raw, tag})
	}

	// Nouns.
	for _, g := range genders {
		for _, n := range numbers {
			add("<n><"+g.raw+"><"+n.raw+">", "N "+g.tag+" "+n.tag)
		}
	}

	// Proper nouns: with and without an explicit gender.
	for _, k := range properNounKinds {
		for _, n := range numbers {
			add("<np><"+k+"><"+n.raw+">", "Z e "+n.tag+" "+k)
			for _, g := range genders {
				add("<np><"+k+"><"+g.raw+"><"+n.raw+">", "Z "+g.tag+" "+n.tag+" "+k)
			}
		}
	}

	// Adjectives.
	add("<adj>", "J")
	add("<adj><comp>", "J cmp")
	add("<adj><sup>", "J sup")
	add("<adj><excl>", "J exc")
	add("<adj><ord>", "J ord")
	add("<adj><itg>", "J itg")

	// Verbs.
	for _, k := range verbKinds {
		v := "<" + k + ">"
		add(v+"<inf>", "V inf")
		add(v+"<pp>", "V ppass")
		for _, t := range tenses {
			add(v+"<"+t.raw+"><impers>", "V "+t.tag+" impers")
			for _, p := range persons {
				for _, n := range numbers[:2] {
					add(v+"<"+t.raw+"><"+p.raw+"><"+n.raw+">", "V "+t.tag+" "+p.tag+" "+n.tag)
				}
			}
		}
	}

	// Person-inflected families: subject pronouns, possessives and
	// conjugated prepositions are exact; object pronouns are prefixes.
	for _, p := range persons {
		for _, g := range genders {
			for _, n := range numbers[:2] {
				pgn := "<" + p.raw + "><" + g.raw + "><" + n.raw + ">"
				fields := p.tag + " " + n.tag
				if g.raw != "mf" {
					fields = p.tag + " " + g.tag + " " + n.tag
				}
				add("<prn><subj>"+pgn, "R suj "+fields)
				add("<det><pos>"+pgn, "D pos "+fields)
				add("<pr>"+pgn, "P "+fields)
				prefix = append(prefix, tagRule{"<prn><obj>" + pgn, "R obj " + fields})
			}
		}
	}

	// Other pronouns.
	for _, g := range genders {
		for _, n := range numbers {
			add("<prn><dem><"+g.raw+"><"+n.raw+">", "R dem "+g.tag+" "+n.tag)
			add("<prn><ind><"+g.raw+"><"+n.raw+">", "R ind "+g.tag+" "+n.tag)
		}
	}
	add("<prn><itg>", "R itg")
	add("<prn><ind>", "R ind")
	add("<prn><rel>", "R rel")

	// Determiners.
	add("<det><def><sp>", "D def")
	add("<det><ind><sp>", "D ind")
	add("<det><dem><sp>", "D dem")
	add("<det><qnt><sp>", "D qnt")
	add("<det><itg><sp>", "D itg")

	// Numerals.
	for _, g := range genders {
		for _, n := range numbers {
			add("<num><"+g.raw+"><"+n.raw+">", "K "+g.tag+" "+n.tag)
		}
	}

	// Invariable words.
	add("<pr>", "P")
	add("<adv>", "A")
	add("<preadv>", "A")
	add("<adv><itg>", "A itg")
	add("<adv><neg>", "A neg")
	add("<cnjcoo>", "C coor")
	add("<cnjadv>", "C adv")
	add("<ij>", "I")
	add("<vpart>", "L")
	add("<vpart><neg>", "L neg")
	add("<vpart><obj>", "L obj")

	prefix = append(prefix, tagRule{"<cnjsub>", "C sub"})
	return exact, prefix
}

// NormalizeRawTag applies the cosmetic rewrites done before table lookup:
// the adjective agreement suffix and the verb variant marker are dropped.
func NormalizeRawTag(raw string) string {
	if strings.HasPrefix(raw, "<adj>") {
		raw = strings.TrimSuffix(raw, "<mf><sp>")
	}
	if isVerbTag(raw) {
		raw = strings.TrimSuffix(raw, "<alt>")
	}
	return raw
}

func isVerbTag(raw string) bool {
	for _, k := range verbKinds {
		if strings.HasPrefix(raw, "<"+k+">") {
			return true
		}
	}
	return false
}

// Simplify translates an analyzer tag into a simplified tag.
// The boolean is false when no rule matches.
func Simplify(raw string) (Tag, bool) {
	raw = NormalizeRawTag(raw)
	if t, ok := exactTags[raw]; ok {
		return ParseTag(t), true
	}
	for _, r := range prefixTags {
		if strings.HasPrefix(raw, r.raw) {
			return ParseTag(r.tag), true
		}
	}
	return nil, false
}

// ResolveLemma replaces a placeholder lemma by the word itself.
func ResolveLemma(word, lemma string) string {
	if placeholderLemmas[lemma] {
		return word
	}
	return lemma
}
