package brlex

import (
	"regexp"
	"strings"
)

// reEntry matches an analyzer line: word:lemma<t1>...<tN>, with an optional
// direction marker (":>:" or ":<:") and an optional trailing # comment.
var reEntry = regexp.MustCompile(`^([^:#]+):(?:([<>]):)?([^<#]+)((?:<[^<>]+>)+)\s*(?:#.*)?$`)

// ParseLine parses one analyzer line. It returns false for blank lines,
// comments, malformed lines and generation-only (":<:") entries.
func ParseLine(line string) (InputEntry, bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
		return InputEntry{}, false
	}
	m := reEntry.FindStringSubmatch(line)
	if m == nil {
		return InputEntry{}, false
	}
	if m[2] == "<" {
		return InputEntry{}, false
	}
	return InputEntry{
		Word:   m[1],
		Lemma:  m[3],
		RawTag: m[4],
		Line:   line,
	}, true
}
