// Command server exposes the lexicon compiler as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/simplify?tag=<analyzer tag>
//	GET  /api/classify?lemma=<lemma>&word=<word>[&tag=<simplified tag>]
//	POST /api/compile   body: analyzer lines (text/plain)
//	GET  /api/health
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"strings"

	"github.com/brezhoneg/brlex"
	"github.com/rs/cors"
)

// ---- JSON response types ------------------------------------------------

type simplifyResponse struct {
	Raw        string `json:"raw"`
	Tag        string `json:"tag,omitempty"`
	Recognized bool   `json:"recognized"`
}

type classifyResponse struct {
	Lemma      string `json:"lemma"`
	Word       string `json:"word"`
	LemmaClass string `json:"lemma_class"`
	WordClass  string `json:"word_class"`
	Class      string `json:"class"`
	Annotation string `json:"annotation,omitempty"`
	Tag        string `json:"tag,omitempty"`
	Anomaly    string `json:"anomaly,omitempty"`
}

type recordJSON struct {
	Word  string `json:"word"`
	Lemma string `json:"lemma"`
	Tag   string `json:"tag"`
}

type diagnosticJSON struct {
	Kind   string `json:"kind"`
	Line   string `json:"line,omitempty"`
	Word   string `json:"word,omitempty"`
	Lemma  string `json:"lemma,omitempty"`
	Tag    string `json:"tag,omitempty"`
	Detail string `json:"detail"`
}

type statsJSON struct {
	Recognized   int            `json:"recognized"`
	Unrecognized int            `json:"unrecognized"`
	Anomalies    int            `json:"anomalies"`
	Synthesized  int            `json:"synthesized"`
	TagCounts    map[string]int `json:"tag_counts"`
}

type compileResponse struct {
	Records     []recordJSON     `json:"records"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
	Stats       statsJSON        `json:"stats"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// maxBody bounds the size of a compile request.
const maxBody = 8 << 20

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// ---- handlers -----------------------------------------------------------

func handleSimplify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		raw := r.URL.Query().Get("tag")
		if raw == "" {
			writeError(w, http.StatusBadRequest, "missing 'tag' query parameter")
			return
		}
		resp := simplifyResponse{Raw: raw}
		status := http.StatusNotFound
		if t, ok := brlex.Simplify(raw); ok {
			resp.Tag, resp.Recognized = t.String(), true
			status = http.StatusOK
		}
		writeJSON(w, status, resp)
	}
}

func handleClassify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		q := r.URL.Query()
		lemma, word := q.Get("lemma"), q.Get("word")
		if lemma == "" || word == "" {
			writeError(w, http.StatusBadRequest, "missing 'lemma' or 'word' query parameter")
			return
		}
		resp := classifyResponse{
			Lemma:      lemma,
			Word:       word,
			LemmaClass: brlex.InitialClass(lemma),
			WordClass:  brlex.InitialClass(word),
		}
		m, an := brlex.DetectMutation(lemma, word)
		resp.Class = m.Class.String()
		resp.Annotation = m.Annotation()
		if an != nil {
			resp.Anomaly = an.String()
		}
		if tag := q.Get("tag"); tag != "" {
			t, _ := brlex.Classify(lemma, word, brlex.ParseTag(tag))
			resp.Tag = t.String()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleCompile(c *brlex.Compiler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		col := &brlex.Collector{}
		st, err := c.Compile(http.MaxBytesReader(w, r.Body, maxBody), col)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		resp := compileResponse{
			Records:     make([]recordJSON, 0, len(col.Records)),
			Diagnostics: make([]diagnosticJSON, 0, len(col.Diagnostics)),
			Stats: statsJSON{
				Recognized:   st.Recognized,
				Unrecognized: st.Unrecognized,
				Anomalies:    st.Anomalies,
				Synthesized:  st.Synthesized,
				TagCounts:    st.TagCounts,
			},
		}
		for _, rec := range col.Records {
			resp.Records = append(resp.Records, recordJSON{Word: rec.Word, Lemma: rec.Lemma, Tag: rec.Tag.String()})
		}
		for _, d := range col.Diagnostics {
			resp.Diagnostics = append(resp.Diagnostics, diagnosticJSON{
				Kind: string(d.Kind), Line: d.Line, Word: d.Word,
				Lemma: d.Lemma, Tag: d.Tag, Detail: d.Detail,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func newHandler(c *brlex.Compiler, origins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/simplify", handleSimplify())
	mux.HandleFunc("/api/classify", handleClassify())
	mux.HandleFunc("/api/compile", handleCompile(c))
	mux.HandleFunc("/api/health", handleHealth())

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
}

// ---- main ---------------------------------------------------------------

func main() {
	dataPath := flag.String("data", "", "YAML word lists (default: embedded)")
	addr := flag.String("addr", ":8080", "listen address")
	origins := flag.String("cors-origins", "*", "comma-separated allowed CORS origins")
	flag.Parse()

	var data *brlex.Data
	if *dataPath != "" {
		log.Printf("loading word lists from %s …", *dataPath)
		d, err := brlex.LoadDataFile(*dataPath)
		if err != nil {
			log.Fatalf("failed to load data: %v", err)
		}
		data = d
	}
	c, err := brlex.New(data)
	if err != nil {
		log.Fatalf("failed to load data: %v", err)
	}

	log.Printf("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, newHandler(c, strings.Split(*origins, ","))); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
