package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rowandb/rowan/naming"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		name     string
		key      naming.Key
		singular string
		plural   string
	}{
		{
			name:     "Inflected",
			key:      naming.Inflected("book"),
			singular: "book",
			plural:   "books",
		},
		{
			name:     "InflectedFromPlural",
			key:      naming.Inflected("books"),
			singular: "book",
			plural:   "books",
		},
		{
			name:     "InflectedIrregular",
			key:      naming.Inflected("person"),
			singular: "person",
			plural:   "people",
		},
		{
			name:     "FixedSingular",
			key:      naming.FixedSingular("child"),
			singular: "child",
			plural:   "children",
		},
		{
			name:     "FixedPlural",
			key:      naming.FixedPlural("fish"),
			singular: "fish",
			plural:   "fish",
		},
		{
			name:     "Fixed",
			key:      naming.Fixed("x"),
			singular: "x",
			plural:   "x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.singular, tt.key.Name(true))
			assert.Equal(t, tt.plural, tt.key.Name(false))
		})
	}
}

func TestKeyKind(t *testing.T) {
	assert.Equal(t, naming.KindInflected, naming.Inflected("a").Kind())
	assert.Equal(t, naming.KindFixedSingular, naming.FixedSingular("a").Kind())
	assert.Equal(t, naming.KindFixedPlural, naming.FixedPlural("a").Kind())
	assert.Equal(t, naming.KindFixed, naming.Fixed("a").Kind())

	assert.Equal(t, "inflected", naming.KindInflected.String())
	assert.Equal(t, "fixed", naming.KindFixed.String())
}

func TestKeyWithPrefix(t *testing.T) {
	k := naming.Fixed("pivot").WithPrefix("rw_")
	assert.Equal(t, "rw_pivot", k.Base())
	assert.Equal(t, naming.KindFixed, k.Kind())
	assert.Equal(t, "rw_pivot", k.Name(true))
	assert.Equal(t, "rw_pivot", k.Name(false))

	// The kind survives prefixing.
	ik := naming.Inflected("passports").WithPrefix("rw_")
	assert.Equal(t, naming.KindInflected, ik.Kind())
	assert.Equal(t, "rw_passport", ik.Name(true))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "books", naming.Pluralize("book"))
	assert.Equal(t, "people", naming.Pluralize("person"))
	assert.Equal(t, "book", naming.Singularize("books"))
	assert.Equal(t, "person", naming.Singularize("people"))
}

func TestPascal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"author", "Author"},
		{"author_id", "AuthorID"},
		{"http_url", "HTTPURL"},
		{"created_at", "CreatedAt"},
		{"api-key", "APIKey"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, naming.Pascal(tt.in))
		})
	}
}
