// Package naming resolves the singular/plural identifiers under which
// association results are exposed to decoders.
//
// A Key wraps a base name together with an inflection mode. The name a
// key contributes depends on the context it is consumed in: a to-one
// association is read under a singular name ("author"), a to-many
// association under a plural one ("books"). The four key kinds control
// how far the base name may be bent toward the requested form.
package naming

import (
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var rules = defaultRuleset()

// defaultRuleset builds the inflection ruleset with acronyms that are
// common in database identifiers.
func defaultRuleset() *inflect.Ruleset {
	r := inflect.NewDefaultRuleset()
	for _, w := range []string{
		"ID", "SQL", "URL", "URI", "UUID", "API", "JSON", "HTTP", "ACL",
	} {
		r.AddAcronym(w)
	}
	return r
}

// Pluralize returns the plural form of the given word.
func Pluralize(s string) string { return rules.Pluralize(s) }

// Singularize returns the singular form of the given word.
func Singularize(s string) string { return rules.Singularize(s) }

// KeyKind determines how a key's base name reacts to the singular or
// plural context it is resolved in.
type KeyKind uint8

const (
	// KindInflected keys are transformed freely toward the requested form.
	KindInflected KeyKind = iota
	// KindFixedSingular keys are used verbatim in singular context and
	// pluralized when a plural name is needed.
	KindFixedSingular
	// KindFixedPlural keys are used verbatim in plural context and
	// singularized when a singular name is needed.
	KindFixedPlural
	// KindFixed keys are used verbatim in both contexts.
	KindFixed
)

// String returns the kind name.
func (k KeyKind) String() string {
	switch k {
	case KindInflected:
		return "inflected"
	case KindFixedSingular:
		return "fixed-singular"
	case KindFixedPlural:
		return "fixed-plural"
	case KindFixed:
		return "fixed"
	}
	return "unknown"
}

// Key is a base name plus the inflection mode it is resolved under.
// The zero value is an inflected key with an empty base name.
type Key struct {
	kind KeyKind
	name string
}

// Inflected returns a key that is singularized or pluralized freely.
func Inflected(name string) Key { return Key{kind: KindInflected, name: name} }

// FixedSingular returns a key used verbatim in singular context.
func FixedSingular(name string) Key { return Key{kind: KindFixedSingular, name: name} }

// FixedPlural returns a key used verbatim in plural context.
func FixedPlural(name string) Key { return Key{kind: KindFixedPlural, name: name} }

// Fixed returns a key that is never transformed.
func Fixed(name string) Key { return Key{kind: KindFixed, name: name} }

// Kind returns the inflection mode of the key.
func (k Key) Kind() KeyKind { return k.kind }

// Base returns the untransformed base name of the key.
func (k Key) Base() string { return k.name }

// Name resolves the key under the given context. Fixed forms pass
// through unchanged when the context already matches their form.
func (k Key) Name(singular bool) string {
	switch k.kind {
	case KindFixedSingular:
		if singular {
			return k.name
		}
		return rules.Pluralize(k.name)
	case KindFixedPlural:
		if !singular {
			return k.name
		}
		return rules.Singularize(k.name)
	case KindFixed:
		return k.name
	default:
		if singular {
			return rules.Singularize(k.name)
		}
		return rules.Pluralize(k.name)
	}
}

// WithPrefix returns a key of the same kind whose base name is
// prefixed. Used for internal join-through keys that must never shadow
// a user-declared key.
func (k Key) WithPrefix(prefix string) Key {
	return Key{kind: k.kind, name: prefix + k.name}
}

var title = cases.Title(language.Und, cases.NoLower)

// Pascal converts a snake_case identifier to PascalCase, preserving
// registered acronyms ("author_id" becomes "AuthorID").
func Pascal(s string) string {
	var b strings.Builder
	for _, w := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	}) {
		if a := strings.ToUpper(w); isAcronym(a) {
			b.WriteString(a)
			continue
		}
		b.WriteString(title.String(strings.ToLower(w)))
	}
	return b.String()
}

// acronyms mirrors the words registered on the ruleset. The inflect
// package does not expose its acronym table, so it is kept here too.
var acronyms = map[string]struct{}{
	"ID": {}, "SQL": {}, "URL": {}, "URI": {}, "UUID": {},
	"API": {}, "JSON": {}, "HTTP": {}, "ACL": {},
}

func isAcronym(s string) bool {
	_, ok := acronyms[s]
	return ok
}
