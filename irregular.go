package brlex

import "sort"

// pluralTriggerField marks masculine plural person nouns, which lenite the
// adjective that follows them.
const pluralTriggerField = "T"

// SeenSet tracks which reference keys were matched during a run.
type SeenSet struct {
	keys map[string]bool
}

// NewSeenSet returns a set holding keys, none of them seen.
func NewSeenSet(keys []string) *SeenSet {
	s := &SeenSet{keys: make(map[string]bool, len(keys))}
	for _, k := range keys {
		s.keys[k] = false
	}
	return s
}

// Mark flags k as seen. Unknown keys are ignored and marking twice is a no-op.
func (s *SeenSet) Mark(k string) {
	if _, ok := s.keys[k]; ok {
		s.keys[k] = true
	}
}

// Seen reports whether k was marked.
func (s *SeenSet) Seen(k string) bool {
	return s.keys[k]
}

// Unseen returns the keys never marked, sorted.
func (s *SeenSet) Unseen() []string {
	var out []string
	for k, seen := range s.keys {
		if !seen {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// IsEpicene reports whether (lemma, word) matches an epicene rule.
func (d *Data) IsEpicene(lemma, word string) bool {
	for _, m := range d.epicene {
		if m.lemma.MatchString(lemma) && m.word.MatchString(word) {
			return true
		}
	}
	return false
}

// IsPluralTrigger reports whether word is a listed person plural or a
// capitalized demonym plural.
func (d *Data) IsPluralTrigger(word string) bool {
	if d.plurals[word] {
		return true
	}
	return d.demonym != nil && d.demonym.MatchString(word)
}

// annotate applies the epicene override, then the plural-trigger override.
func (d *Data) annotate(e InputEntry, tag Tag, seen *SeenSet) (Tag, []Diagnostic) {
	var diags []Diagnostic
	diag := func(kind DiagnosticKind, detail string) {
		diags = append(diags, Diagnostic{
			Kind: kind, Line: e.Line, Word: e.Word, Lemma: e.Lemma,
			Tag: tag.String(), Detail: detail,
		})
	}

	epicene := false
	if g := tag.Gender(); (g == "m" || g == "f") && d.IsEpicene(e.Lemma, e.Word) {
		tag = tag.WithGender("e")
		epicene = true
	}

	if tag.Category() != CatNoun || !d.IsPluralTrigger(e.Word) {
		return tag, diags
	}
	switch {
	case epicene:
		diag(DiagOverrideConflict, "epicene override and plural trigger both apply; plural marker not added")
	case tag.Gender() == "m" && tag.Number() == "p":
		tag = tag.Append(pluralTriggerField)
		seen.Mark(e.Word)
	default:
		diag(DiagPluralMismatch, "plural trigger word tagged as "+tag.Gender()+" "+tag.Number())
	}
	return tag, diags
}
