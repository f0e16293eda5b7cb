package brlex

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

var testInput = strings.Join([]string{
	"komz:komz<vblex><pri><p3><sg>",
	"gomz:komz<vblex><pri><p3><sg>",
	"foo:bar<xyz>",
	"# comment",
	"not a record",
	"Gemper:Kemper<np><top><sg>",
	"paotred:paotr<n><m><pl>",
	"kaout:<:kaout<vbhaver><inf>",
	"bras:bras<adj><mf><sp> # comment",
	"me:prpers<prn><subj><p1><mf><sg>",
}, "\n")

func newTestCompiler(t *testing.T) *Compiler {
	t.Helper()
	c, err := New(mustData(t, testData))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestCompile(t *testing.T) {
	c := newTestCompiler(t)
	col := &Collector{}
	st, err := c.Compile(strings.NewReader(testInput), col)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	want := []string{
		"komz\tkomz\tV pres 3 s",
		"gomz\tkomz\tV pres 3 s M:1:1a:",
		"Gemper\tKemper\tZ e s top M:1:1a:",
		"C’hemper\tKemper\tZ e s top M:1:1a:",
		"paotred\tpaotr\tN m p T",
		"bras\tbras\tJ",
		"me\tme\tR suj 1 s",
		"ba\te\tP",
	}
	if len(col.Records) != len(want) {
		t.Fatalf("got %d records, want %d: %v", len(col.Records), len(want), col.Records)
	}
	for i, rec := range col.Records {
		if rec.String() != want[i] {
			t.Errorf("record %d = %q, want %q", i, rec.String(), want[i])
		}
	}

	if st.Lines != 10 || st.Skipped != 3 {
		t.Errorf("Lines, Skipped = %d, %d; want 10, 3", st.Lines, st.Skipped)
	}
	if st.Recognized != 6 || st.Unrecognized != 1 {
		t.Errorf("Recognized, Unrecognized = %d, %d; want 6, 1", st.Recognized, st.Unrecognized)
	}
	if st.Synthesized != 1 || st.Patches != 1 || st.Anomalies != 0 {
		t.Errorf("Synthesized, Patches, Anomalies = %d, %d, %d; want 1, 1, 0", st.Synthesized, st.Patches, st.Anomalies)
	}
	if len(st.Lemmas) != 5 || len(st.Words) != 7 {
		t.Errorf("distinct lemmas, words = %d, %d; want 5, 7", len(st.Lemmas), len(st.Words))
	}
	if got := strings.Join(st.LemmasNotWords, ","); got != "Kemper,paotr" {
		t.Errorf("LemmasNotWords = %q, want %q", got, "Kemper,paotr")
	}
	if got := strings.Join(st.UnseenPlurals, ","); got != "tud" {
		t.Errorf("UnseenPlurals = %q, want %q", got, "tud")
	}

	unrec := col.DiagnosticsOf(DiagUnrecognized)
	if len(unrec) != 1 || unrec[0].Line != "foo:bar<xyz>" || unrec[0].Word != "foo" || unrec[0].Lemma != "bar" || unrec[0].Tag != "<xyz>" {
		t.Errorf("unrecognized diagnostics = %+v", unrec)
	}
	if n := len(col.DiagnosticsOf(DiagLemmaNotWord)); n != 2 {
		t.Errorf("lemma-not-word diagnostics = %d, want 2", n)
	}
	if n := len(col.DiagnosticsOf(DiagUnseenPlural)); n != 1 {
		t.Errorf("unseen-plural diagnostics = %d, want 1", n)
	}
}

func TestCompileAnomalyStillEmitted(t *testing.T) {
	c := newTestCompiler(t)
	col := &Collector{}
	st, err := c.Compile(strings.NewReader("zo:bezañ<vbser><pri><p3><sg>"), col)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if st.Anomalies != 1 {
		t.Errorf("Anomalies = %d, want 1", st.Anomalies)
	}
	if len(col.Records) == 0 || col.Records[0].String() != "zo\tbezañ\tV pres 3 s" {
		t.Errorf("records = %v, want zo emitted without annotation", col.Records)
	}
	an := col.DiagnosticsOf(DiagMutationAnomaly)
	if len(an) != 1 || an[0].Tag != "V pres 3 s" {
		t.Errorf("anomaly diagnostics = %+v", an)
	}
}

func TestCompilePluralMismatch(t *testing.T) {
	c := newTestCompiler(t)
	col := &Collector{}
	st, err := c.Compile(strings.NewReader("paotred:paotr<n><m><sg>"), col)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if col.Records[0].String() != "paotred\tpaotr\tN m s" {
		t.Errorf("record = %q, want tag unchanged", col.Records[0])
	}
	if n := len(col.DiagnosticsOf(DiagPluralMismatch)); n != 1 {
		t.Errorf("plural-mismatch diagnostics = %d, want 1", n)
	}
	if got := strings.Join(st.UnseenPlurals, ","); got != "paotred,tud" {
		t.Errorf("UnseenPlurals = %q, want %q", got, "paotred,tud")
	}
}

func TestCompileIsRepeatable(t *testing.T) {
	c := newTestCompiler(t)
	first, err := c.Compile(strings.NewReader(testInput), &Collector{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	second, err := c.Compile(strings.NewReader(testInput), &Collector{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if first.Recognized != second.Recognized || len(first.TagCounts) != len(second.TagCounts) ||
		strings.Join(first.UnseenPlurals, ",") != strings.Join(second.UnseenPlurals, ",") {
		t.Errorf("second run differs: %+v vs %+v", first, second)
	}
}

func TestCompileTSV(t *testing.T) {
	c := newTestCompiler(t)
	var lex, diag bytes.Buffer
	em := NewTSVEmitter(&lex, &diag)
	st, err := c.Compile(strings.NewReader(testInput), em)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := em.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(lex.String(), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("lexicon has %d lines, want 8:\n%s", len(lines), lex.String())
	}
	if lines[len(lines)-1] != "ba\te\tP" {
		t.Errorf("last line = %q, want the patch line", lines[len(lines)-1])
	}
	if !strings.HasPrefix(diag.String(), "unrecognized\tfoo:bar<xyz>\tfoo\tbar\t<xyz>\t") {
		t.Errorf("diagnostics start with %q", diag.String())
	}

	var report bytes.Buffer
	if err := WriteTagReport(&report, st); err != nil {
		t.Fatalf("WriteTagReport: %v", err)
	}
	wantReport := "J\t1\n" +
		"N m p T\t1\n" +
		"P\t1\n" +
		"R suj 1 s\t1\n" +
		"V pres 3 s\t1\n" +
		"V pres 3 s M:1:1a:\t1\n" +
		"Z e s top M:1:1a:\t2\n"
	if report.String() != wantReport {
		t.Errorf("tag report =\n%s\nwant\n%s", report.String(), wantReport)
	}
}

func TestCompileReadError(t *testing.T) {
	c := newTestCompiler(t)
	boom := errors.New("boom")
	_, err := c.Compile(iotest.ErrReader(boom), &Collector{})
	if !errors.Is(err, boom) {
		t.Errorf("Compile error = %v, want wrapped boom", err)
	}
}

func TestCompileSkipsLongLine(t *testing.T) {
	c := newTestCompiler(t)
	long := "x:" + strings.Repeat("a", maxLine) + "<n><m><sg>"
	input := "komz:komz<vblex><pri><p3><sg>\n" + long + "\n" + "gomz:komz<vblex><pri><p3><sg>"
	col := &Collector{}
	st, err := c.Compile(strings.NewReader(input), col)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if st.Lines != 3 || st.Skipped != 1 || st.Recognized != 2 {
		t.Errorf("Lines, Skipped, Recognized = %d, %d, %d; want 3, 1, 2", st.Lines, st.Skipped, st.Recognized)
	}
	if len(col.Records) < 2 || col.Records[1].Word != "gomz" {
		t.Errorf("records = %v, want gomz after the long line", col.Records)
	}
}

func TestCompileCRLF(t *testing.T) {
	c := newTestCompiler(t)
	col := &Collector{}
	if _, err := c.Compile(strings.NewReader("komz:komz<vblex><pri><p3><sg>\r\n"), col); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(col.Records) == 0 || col.Records[0].String() != "komz\tkomz\tV pres 3 s" {
		t.Errorf("records = %v", col.Records)
	}
}

type failingEmitter struct{ Collector }

func (failingEmitter) Emit(OutputRecord) error { return errors.New("disk full") }

func TestCompileEmitError(t *testing.T) {
	c := newTestCompiler(t)
	if _, err := c.Compile(strings.NewReader(testInput), &failingEmitter{}); err == nil {
		t.Error("Compile succeeded with a failing emitter")
	}
}

func TestCompileEntry(t *testing.T) {
	c := newTestCompiler(t)
	recs, diags := c.CompileEntry(InputEntry{Word: "word", Lemma: "lemma", RawTag: "<tag>", Line: "word:lemma<tag>"})
	if len(recs) != 0 {
		t.Errorf("unrecognized entry produced records: %v", recs)
	}
	if len(diags) != 1 || diags[0].Kind != DiagUnrecognized {
		t.Errorf("diagnostics = %v, want one unrecognized", diags)
	}

	recs, _ = c.CompileEntry(InputEntry{Word: "Gemper", Lemma: "Kemper", RawTag: "<np><top><sg>"})
	if len(recs) != 2 || recs[1].Word != "C’hemper" {
		t.Errorf("CompileEntry(Gemper) = %v, want source and C’hemper", recs)
	}
}
