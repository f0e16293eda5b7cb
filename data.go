package brlex

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed data/irregulars.yaml
var defaultData []byte

// EpiceneRule marks a lemma as usable with either gender.
type EpiceneRule struct {
	Lemma string `yaml:"lemma"`
	Word  string `yaml:"word"`
}

// Patch is a lexicon line appended verbatim after the derived records.
type Patch struct {
	Word  string `yaml:"word"`
	Lemma string `yaml:"lemma"`
	Tag   string `yaml:"tag"`
}

// Data holds the curated word lists used by the irregular-class annotator.
type Data struct {
	PluralPersons  []string      `yaml:"plural_persons"`
	DemonymPattern string        `yaml:"demonym_pattern"`
	Epicene        []EpiceneRule `yaml:"epicene"`
	Patches        []Patch       `yaml:"patches"`

	plurals map[string]bool
	demonym *regexp.Regexp
	epicene []epiceneMatcher
}

type epiceneMatcher struct {
	lemma, word *regexp.Regexp
}

// DefaultData returns the word lists shipped with the package.
func DefaultData() (*Data, error) {
	return LoadData(bytes.NewReader(defaultData))
}

// LoadDataFile reads word lists from a YAML file.
func LoadDataFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()
	return LoadData(f)
}

// LoadData decodes word lists from YAML and compiles their patterns.
func LoadData(r io.Reader) (*Data, error) {
	d := &Data{}
	if err := yaml.NewDecoder(r).Decode(d); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	if err := d.compile(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Data) compile() error {
	d.plurals = make(map[string]bool, len(d.PluralPersons))
	for _, w := range d.PluralPersons {
		d.plurals[w] = true
	}
	if d.DemonymPattern != "" {
		re, err := regexp.Compile(d.DemonymPattern)
		if err != nil {
			return fmt.Errorf("demonym_pattern: %w", err)
		}
		d.demonym = re
	}
	d.epicene = d.epicene[:0]
	for i, e := range d.Epicene {
		lre, err := regexp.Compile(e.Lemma)
		if err != nil {
			return fmt.Errorf("epicene[%d].lemma: %w", i, err)
		}
		word := e.Word
		if word == "" {
			word = ".*"
		}
		wre, err := regexp.Compile(word)
		if err != nil {
			return fmt.Errorf("epicene[%d].word: %w", i, err)
		}
		d.epicene = append(d.epicene, epiceneMatcher{lre, wre})
	}
	for i, p := range d.Patches {
		if p.Word == "" || p.Lemma == "" || p.Tag == "" {
			return fmt.Errorf("patches[%d]: word, lemma and tag are required", i)
		}
	}
	return nil
}
