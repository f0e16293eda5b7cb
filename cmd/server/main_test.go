package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/brezhoneg/brlex"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := brlex.New(nil)
	if err != nil {
		t.Fatalf("brlex.New: %v", err)
	}
	srv := httptest.NewServer(newHandler(c, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, u string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(u)
	if err != nil {
		t.Fatalf("GET %s: %v", u, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", u, err)
	}
	return resp
}

func TestSimplifyEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var got simplifyResponse
	resp := getJSON(t, srv.URL+"/api/simplify?"+url.Values{"tag": {"<vblex><pri><p3><sg>"}}.Encode(), &got)
	if resp.StatusCode != http.StatusOK || !got.Recognized || got.Tag != "V pres 3 s" {
		t.Errorf("simplify = %d %+v", resp.StatusCode, got)
	}

	got = simplifyResponse{}
	resp = getJSON(t, srv.URL+"/api/simplify?"+url.Values{"tag": {"<xyz>"}}.Encode(), &got)
	if resp.StatusCode != http.StatusNotFound || got.Recognized {
		t.Errorf("simplify unknown = %d %+v", resp.StatusCode, got)
	}

	var e errorResponse
	resp = getJSON(t, srv.URL+"/api/simplify", &e)
	if resp.StatusCode != http.StatusBadRequest || e.Error == "" {
		t.Errorf("simplify without tag = %d %+v", resp.StatusCode, e)
	}
}

func TestClassifyEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var got classifyResponse
	q := url.Values{"lemma": {"komz"}, "word": {"gomz"}, "tag": {"V pres 3 s"}}
	resp := getJSON(t, srv.URL+"/api/classify?"+q.Encode(), &got)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got.LemmaClass != "k" || got.WordClass != "g" || got.Class != "lenition" ||
		got.Annotation != "M:1:1a:" || got.Tag != "V pres 3 s M:1:1a:" || got.Anomaly != "" {
		t.Errorf("classify = %+v", got)
	}

	got = classifyResponse{}
	q = url.Values{"lemma": {"bezañ"}, "word": {"zo"}}
	getJSON(t, srv.URL+"/api/classify?"+q.Encode(), &got)
	if got.Anomaly == "" || got.Annotation != "" {
		t.Errorf("classify anomaly = %+v", got)
	}
}

func TestCompileEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body := "gomz:komz<vblex><pri><p3><sg>\nGemper:Kemper<np><top><sg>\nfoo:bar<xyz>\n"
	resp, err := http.Post(srv.URL+"/api/compile", "text/plain", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got compileResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Stats.Recognized != 2 || got.Stats.Unrecognized != 1 || got.Stats.Synthesized != 1 {
		t.Errorf("stats = %+v", got.Stats)
	}
	if len(got.Records) < 3 || got.Records[0].Tag != "V pres 3 s M:1:1a:" || got.Records[2].Word != "C’hemper" {
		t.Errorf("records = %+v", got.Records)
	}
	found := false
	for _, d := range got.Diagnostics {
		if d.Kind == string(brlex.DiagUnrecognized) && d.Word == "foo" {
			found = true
		}
	}
	if !found {
		t.Errorf("no unrecognized diagnostic for foo in %+v", got.Diagnostics)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/compile")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/compile = %d, want 405", resp.StatusCode)
	}
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/health", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Origin", "http://example.org")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
