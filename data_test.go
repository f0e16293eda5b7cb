package brlex

import (
	"strings"
	"testing"
)

func TestDefaultData(t *testing.T) {
	d, err := DefaultData()
	if err != nil {
		t.Fatalf("DefaultData: %v", err)
	}
	if len(d.PluralPersons) == 0 {
		t.Error("no plural persons loaded")
	}
	if len(d.Patches) == 0 {
		t.Error("no patches loaded")
	}
	if !d.IsPluralTrigger("tud") || !d.IsPluralTrigger("Breizhiz") {
		t.Error("IsPluralTrigger misses tud or Breizhiz")
	}
	if d.IsPluralTrigger("breizhiz") {
		t.Error("IsPluralTrigger matched a lower-case demonym")
	}
	if !d.IsEpicene("mignon", "mignon") {
		t.Error("IsEpicene(mignon) = false")
	}
}

func TestLoadDataErrors(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"bad demonym", "demonym_pattern: '('"},
		{"bad epicene lemma", "epicene:\n  - lemma: '['"},
		{"bad epicene word", "epicene:\n  - lemma: 'a'\n    word: '['"},
		{"incomplete patch", "patches:\n  - word: ba\n    tag: P"},
		{"not yaml", "plural_persons: {"},
	}
	for _, tt := range tests {
		if _, err := LoadData(strings.NewReader(tt.yml)); err == nil {
			t.Errorf("%s: LoadData succeeded, want error", tt.name)
		}
	}
}

func TestLoadDataEmpty(t *testing.T) {
	d, err := LoadData(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadData(empty): %v", err)
	}
	if d.IsPluralTrigger("Breizhiz") {
		t.Error("empty data matched a demonym")
	}
}
