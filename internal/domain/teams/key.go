package teams

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Key returns a comparison key for a club name: accents stripped, case folded,
// punctuation dropped and whitespace collapsed. "Brighton & Hove Albion FC" and
// "brighton & hove albion fc" share a key; distinct clubs never do.
func Key(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}
	folded := folder.String(stripped)
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '&'
	})
	return strings.Join(fields, " ")
}

// Canonicalizer maps every spelling of a club seen so far onto the first one
// observed, so that data from different competitions agrees on identity.
type Canonicalizer struct {
	names map[string]string
}

// NewCanonicalizer returns an empty Canonicalizer.
func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{names: make(map[string]string)}
}

// Canonical returns the first-seen spelling for name's key, registering name if new.
func (c *Canonicalizer) Canonical(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	key := Key(name)
	if existing, ok := c.names[key]; ok {
		return existing
	}
	c.names[key] = name
	return name
}
