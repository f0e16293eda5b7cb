// Package brlex compiles the word:lemma<tags> expansion of a Breton
// morphological dictionary into the tab-separated lexicon read by the
// grammar checker, simplifying tags and annotating initial consonant
// mutations.
package brlex

// Compiler holds the read-only tables and curated data of a compilation.
// It keeps no per-run state and may be shared between goroutines.
type Compiler struct {
	data *Data
}

// New returns a Compiler using data, or the embedded word lists when data
// is nil.
func New(data *Data) (*Compiler, error) {
	if data == nil {
		d, err := DefaultData()
		if err != nil {
			return nil, err
		}
		data = d
	}
	return &Compiler{data: data}, nil
}

// Data returns the curated word lists in use.
func (c *Compiler) Data() *Data {
	return c.data
}

// CompileEntry runs the per-entry pipeline on e: tag simplification,
// mutation classification, irregular-class overrides and spelling
// synthesis. Records are empty when the tag is not recognized.
func (c *Compiler) CompileEntry(e InputEntry) ([]OutputRecord, []Diagnostic) {
	recs, diags, _ := c.compileEntry(e, NewSeenSet(nil))
	return recs, diags
}

func (c *Compiler) compileEntry(e InputEntry, seen *SeenSet) ([]OutputRecord, []Diagnostic, bool) {
	e.Lemma = ResolveLemma(e.Word, e.Lemma)

	tag, ok := Simplify(e.RawTag)
	if !ok {
		return nil, []Diagnostic{{
			Kind: DiagUnrecognized, Line: e.Line, Word: e.Word, Lemma: e.Lemma,
			Tag: e.RawTag, Detail: "no simplification rule",
		}}, false
	}

	var diags []Diagnostic
	tag, an := Classify(e.Lemma, e.Word, tag)
	if an != nil {
		diags = append(diags, Diagnostic{
			Kind: DiagMutationAnomaly, Line: e.Line, Word: e.Word, Lemma: e.Lemma,
			Tag: an.Tag, Detail: an.String(),
		})
	}

	tag, ds := c.data.annotate(e, tag, seen)
	diags = append(diags, ds...)

	rec := OutputRecord{Word: e.Word, Lemma: e.Lemma, Tag: tag}
	recs := []OutputRecord{rec}
	if extra, ok := Synthesize(rec); ok {
		recs = append(recs, extra)
	}
	return recs, diags, true
}
