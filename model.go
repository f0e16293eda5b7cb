package brlex

import "strings"

// Category is the first field of a simplified tag.
type Category string

const (
	CatNoun         Category = "N"
	CatProperNoun   Category = "Z"
	CatAdjective    Category = "J"
	CatVerb         Category = "V"
	CatPronoun      Category = "R"
	CatDeterminer   Category = "D"
	CatNumeral      Category = "K"
	CatPreposition  Category = "P"
	CatAdverb       Category = "A"
	CatConjunction  Category = "C"
	CatInterjection Category = "I"
	CatParticle     Category = "L"
)

// categories is the closed set of category markers a simplified tag may start with.
var categories = map[Category]bool{
	CatNoun: true, CatProperNoun: true, CatAdjective: true, CatVerb: true,
	CatPronoun: true, CatDeterminer: true, CatNumeral: true, CatPreposition: true,
	CatAdverb: true, CatConjunction: true, CatInterjection: true, CatParticle: true,
}

// IsCategory reports whether c belongs to the closed category set.
func IsCategory(c Category) bool {
	return categories[c]
}

// InputEntry is one analyzer record.
type InputEntry struct {
	Word   string
	Lemma  string
	RawTag string
	// Line is the source line, kept for diagnostics.
	Line string
}

// OutputRecord is one line of the compiled lexicon.
type OutputRecord struct {
	Word  string
	Lemma string
	Tag   Tag
}

// String formats the record as a lexicon line (without newline).
func (r OutputRecord) String() string {
	return r.Word + "\t" + r.Lemma + "\t" + r.Tag.String()
}

// Tag is a simplified tag: an ordered list of short fields.
// Values are never modified in place; every method returns a copy.
type Tag []string

// ParseTag splits a space-separated simplified tag.
func ParseTag(s string) Tag {
	return Tag(strings.Fields(s))
}

// String joins the fields with spaces.
func (t Tag) String() string {
	return strings.Join(t, " ")
}

// Category returns the category marker, or "" for an empty tag.
func (t Tag) Category() Category {
	if len(t) == 0 {
		return ""
	}
	return Category(t[0])
}

// Field returns field i, or "" when out of range.
func (t Tag) Field(i int) string {
	if i < 0 || i >= len(t) {
		return ""
	}
	return t[i]
}

// Append returns a copy of t with fields added at the end.
func (t Tag) Append(fields ...string) Tag {
	out := make(Tag, 0, len(t)+len(fields))
	out = append(out, t...)
	return append(out, fields...)
}

// hasGender reports whether field 1 of t is a gender marker.
func (t Tag) hasGender() bool {
	c := t.Category()
	return (c == CatNoun || c == CatProperNoun || c == CatNumeral) && len(t) > 1
}

// Gender returns the gender field of a noun, proper noun or numeral tag.
func (t Tag) Gender() string {
	if !t.hasGender() {
		return ""
	}
	return t[1]
}

// Number returns the number field of a noun, proper noun or numeral tag.
func (t Tag) Number() string {
	if !t.hasGender() {
		return ""
	}
	return t.Field(2)
}

// WithGender returns a copy of t with its gender field replaced.
// Tags without a gender field are returned unchanged.
func (t Tag) WithGender(g string) Tag {
	if !t.hasGender() {
		return t
	}
	out := t.Append()
	out[1] = g
	return out
}

// Mutation returns the mutation annotation field ("M:...:") if present.
func (t Tag) Mutation() string {
	for _, f := range t {
		if strings.HasPrefix(f, mutationPrefix) {
			return f
		}
	}
	return ""
}

// DiagnosticKind classifies a diagnostic line.
type DiagnosticKind string

const (
	DiagUnrecognized     DiagnosticKind = "unrecognized"
	DiagMutationAnomaly  DiagnosticKind = "mutation-anomaly"
	DiagPluralMismatch   DiagnosticKind = "plural-mismatch"
	DiagOverrideConflict DiagnosticKind = "override-conflict"
	DiagUnseenPlural     DiagnosticKind = "unseen-plural"
	DiagLemmaNotWord     DiagnosticKind = "lemma-not-word"
)

// Diagnostic describes a non-fatal problem found while compiling.
type Diagnostic struct {
	Kind   DiagnosticKind
	Line   string
	Word   string
	Lemma  string
	Tag    string
	Detail string
}

// String formats the diagnostic as a tab-separated line.
func (d Diagnostic) String() string {
	return strings.Join([]string{string(d.Kind), d.Line, d.Word, d.Lemma, d.Tag, d.Detail}, "\t")
}
