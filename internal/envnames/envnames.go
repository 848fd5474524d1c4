// Package envnames derives environment-variable names from configuration
// section and key names.
package envnames

import (
	"strings"
	"unicode/utf8"

	"github.com/gandalfthegui/confenv/internal/configdoc"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Group holds the variable names generated for one configuration section.
type Group struct {
	Section string   `yaml:"section" json:"section"`
	Names   []string `yaml:"names" json:"names"`
}

// Capitalize converts the first character of s to title case and the rest to
// lower case, so "myKey" becomes "Mykey" and "DB" becomes "Db".
// Full case mappings apply: "ßeta" becomes "Sseta" and "ΑΣ" becomes "Ας".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	head := cases.Title(language.Und, cases.NoLower).String(s[:size])

	// Lower the whole string so context-sensitive mappings such as the
	// final sigma see the first character.
	lower := cases.Lower(language.Und)
	all := lower.String(s)
	first := lower.String(s[:size])
	if !strings.HasPrefix(all, first) {
		return head + lower.String(s[size:])
	}
	return head + all[len(first):]
}

// Name returns the variable name for key in section: PREFIX_Section_Key.
func Name(prefix, section, key string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('_')
	b.WriteString(Capitalize(section))
	b.WriteByte('_')
	b.WriteString(Capitalize(key))
	return b.String()
}

// Build returns one group per section of doc, in document order. A section
// without keys yields a group with no names.
func Build(doc *configdoc.Document, prefix string) []Group {
	groups := make([]Group, 0, len(doc.Sections))
	for _, sec := range doc.Sections {
		g := Group{Section: sec.Name, Names: make([]string, 0, len(sec.Keys))}
		for _, key := range sec.Keys {
			g.Names = append(g.Names, Name(prefix, sec.Name, key))
		}
		groups = append(groups, g)
	}
	return groups
}
