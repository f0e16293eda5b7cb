package brlex

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// Emitter receives the compiled lexicon and the diagnostics of a run.
type Emitter interface {
	Emit(rec OutputRecord) error
	Report(d Diagnostic)
}

// Stats accumulates the counters of one Compile call.
type Stats struct {
	Lines        int
	Skipped      int
	Recognized   int
	Unrecognized int
	Anomalies    int
	Synthesized  int
	Patches      int

	// Lemmas and Words are the distinct lemmas and words of derived records.
	Lemmas map[string]struct{}
	Words  map[string]struct{}
	// TagCounts counts every tag written to the lexicon, patches included.
	TagCounts map[string]int

	// LemmasNotWords lists lemmas never seen as a word, sorted.
	LemmasNotWords []string
	// UnseenPlurals lists plural-trigger entries never matched, sorted.
	UnseenPlurals []string
}

func newStats() *Stats {
	return &Stats{
		Lemmas:    make(map[string]struct{}),
		Words:     make(map[string]struct{}),
		TagCounts: make(map[string]int),
	}
}

// Tags returns the distinct tags written, sorted.
func (s *Stats) Tags() []string {
	tags := make([]string, 0, len(s.TagCounts))
	for t := range s.TagCounts {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// maxLine bounds the length of an analyzer line. Longer lines are skipped.
const maxLine = 1 << 20

// readLine returns the next line of br without its line ending. tooLong is
// set when the line exceeded maxLine; its content is then discarded.
func readLine(br *bufio.Reader) (line string, tooLong bool, err error) {
	var buf []byte
	started := false
	for {
		chunk, isPrefix, rerr := br.ReadLine()
		if rerr != nil {
			if rerr == io.EOF && started {
				return string(buf), tooLong, nil
			}
			return "", false, rerr
		}
		started = true
		if !tooLong {
			if len(buf)+len(chunk) > maxLine {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// Compile reads analyzer lines from r and sends records and diagnostics to
// em. Per-entry problems are reported as diagnostics; only read and emit
// errors are returned.
func (c *Compiler) Compile(r io.Reader, em Emitter) (*Stats, error) {
	st := newStats()
	seen := NewSeenSet(c.data.PluralPersons)

	emit := func(rec OutputRecord) error {
		st.TagCounts[rec.Tag.String()]++
		if err := em.Emit(rec); err != nil {
			return fmt.Errorf("emit %q: %w", rec.Word, err)
		}
		return nil
	}

	br := bufio.NewReaderSize(r, 64*1024)
	for {
		text, tooLong, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return st, fmt.Errorf("read input: %w", err)
		}
		st.Lines++
		if tooLong {
			st.Skipped++
			continue
		}
		e, ok := ParseLine(text)
		if !ok {
			st.Skipped++
			continue
		}

		recs, diags, recognized := c.compileEntry(e, seen)
		if recognized {
			st.Recognized++
		} else {
			st.Unrecognized++
		}
		for _, d := range diags {
			if d.Kind == DiagMutationAnomaly {
				st.Anomalies++
			}
			em.Report(d)
		}
		for i, rec := range recs {
			if i > 0 {
				st.Synthesized++
			}
			st.Lemmas[rec.Lemma] = struct{}{}
			st.Words[rec.Word] = struct{}{}
			if err := emit(rec); err != nil {
				return st, err
			}
		}
	}

	for _, p := range c.data.Patches {
		if err := emit(OutputRecord{Word: p.Word, Lemma: p.Lemma, Tag: ParseTag(p.Tag)}); err != nil {
			return st, err
		}
		st.Patches++
	}

	for lemma := range st.Lemmas {
		if _, ok := st.Words[lemma]; !ok {
			st.LemmasNotWords = append(st.LemmasNotWords, lemma)
		}
	}
	sort.Strings(st.LemmasNotWords)
	for _, lemma := range st.LemmasNotWords {
		em.Report(Diagnostic{Kind: DiagLemmaNotWord, Lemma: lemma, Detail: "lemma never seen as a word"})
	}

	st.UnseenPlurals = seen.Unseen()
	for _, w := range st.UnseenPlurals {
		em.Report(Diagnostic{Kind: DiagUnseenPlural, Word: w, Detail: "plural trigger never found as a masculine plural noun"})
	}
	return st, nil
}
