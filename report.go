package brlex

import (
	"bufio"
	"fmt"
	"io"
)

// TSVEmitter writes lexicon lines and diagnostic lines to two writers.
// Write errors are kept and returned by Emit or Flush.
type TSVEmitter struct {
	lex  *bufio.Writer
	diag *bufio.Writer
	err  error
}

// NewTSVEmitter returns an emitter writing the lexicon to lex and the
// diagnostics to diag. diag may be nil to drop diagnostics.
func NewTSVEmitter(lex, diag io.Writer) *TSVEmitter {
	e := &TSVEmitter{lex: bufio.NewWriter(lex)}
	if diag != nil {
		e.diag = bufio.NewWriter(diag)
	}
	return e
}

// Emit writes rec as word\tlemma\ttag.
func (e *TSVEmitter) Emit(rec OutputRecord) error {
	if e.err != nil {
		return e.err
	}
	if _, err := e.lex.WriteString(rec.String() + "\n"); err != nil {
		e.err = err
	}
	return e.err
}

// Report writes d as one tab-separated line.
func (e *TSVEmitter) Report(d Diagnostic) {
	if e.diag == nil || e.err != nil {
		return
	}
	if _, err := e.diag.WriteString(d.String() + "\n"); err != nil {
		e.err = err
	}
}

// Flush flushes both writers and returns the first error seen.
func (e *TSVEmitter) Flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.lex.Flush(); err != nil {
		return err
	}
	if e.diag != nil {
		return e.diag.Flush()
	}
	return nil
}

// Collector keeps records and diagnostics in memory.
type Collector struct {
	Records     []OutputRecord
	Diagnostics []Diagnostic
}

func (c *Collector) Emit(rec OutputRecord) error {
	c.Records = append(c.Records, rec)
	return nil
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// DiagnosticsOf returns the collected diagnostics of kind k.
func (c *Collector) DiagnosticsOf(k DiagnosticKind) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diagnostics {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

type tee []Emitter

// Tee returns an Emitter forwarding to every emitter in order.
func Tee(emitters ...Emitter) Emitter {
	return tee(emitters)
}

func (t tee) Emit(rec OutputRecord) error {
	for _, e := range t {
		if err := e.Emit(rec); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) Report(d Diagnostic) {
	for _, e := range t {
		e.Report(d)
	}
}

// WriteTagReport writes one "tag\tcount" line per distinct tag, sorted by tag.
func WriteTagReport(w io.Writer, st *Stats) error {
	bw := bufio.NewWriter(w)
	for _, t := range st.Tags() {
		if _, err := fmt.Fprintf(bw, "%s\t%d\n", t, st.TagCounts[t]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
