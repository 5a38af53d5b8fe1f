package relgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowandb/rowan/dialect"
	"github.com/rowandb/rowan/dialect/sql"
	"github.com/rowandb/rowan/dialect/sql/relgraph"
)

func TestConditionPairs(t *testing.T) {
	c := relgraph.OnColumns("author_id", "id").AndColumns("tenant_id", "tenant_id")
	pairs := c.Pairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, relgraph.ColumnPair{Own: "author_id", Parent: "id"}, pairs[0])
	assert.Equal(t, relgraph.ColumnPair{Own: "tenant_id", Parent: "tenant_id"}, pairs[1])

	// Pairs returns a copy.
	pairs[0].Own = "mutated"
	assert.Equal(t, "author_id", c.Pairs()[0].Own)
}

func TestConditionReversed(t *testing.T) {
	c := relgraph.OnColumns("author_id", "id")
	r := c.Reversed()
	assert.Equal(t, []relgraph.ColumnPair{{Own: "id", Parent: "author_id"}}, r.Pairs())

	// Reversing twice restores the original orientation.
	assert.Equal(t, c.Pairs(), r.Reversed().Pairs())
}

func renderWhere(t *testing.T, p relgraph.Predicate) (string, []any) {
	t.Helper()
	s := sql.Select().Dialect(dialect.SQLite).From("books").As("t0")
	p(s)
	return s.Query()
}

func TestFilteringPredicate(t *testing.T) {
	c := relgraph.OnColumns("author_id", "id")

	t.Run("NoRows", func(t *testing.T) {
		query, args := renderWhere(t, c.FilteringPredicate(nil))
		assert.Equal(t, `SELECT * FROM "books" AS "t0" WHERE FALSE`, query)
		assert.Empty(t, args)
	})

	t.Run("OneRow", func(t *testing.T) {
		query, args := renderWhere(t, c.FilteringPredicate([]relgraph.Row{{"id": int64(1)}}))
		assert.Equal(t, `SELECT * FROM "books" AS "t0" WHERE "t0"."author_id" = ?`, query)
		assert.Equal(t, []any{int64(1)}, args)
	})

	t.Run("ManyRows", func(t *testing.T) {
		query, args := renderWhere(t, c.FilteringPredicate([]relgraph.Row{
			{"id": int64(1)}, {"id": int64(2)},
		}))
		assert.Equal(t, `SELECT * FROM "books" AS "t0" WHERE "t0"."author_id" IN (?, ?)`, query)
		assert.Equal(t, []any{int64(1), int64(2)}, args)
	})

	t.Run("CompositeKey", func(t *testing.T) {
		composite := c.AndColumns("tenant_id", "tenant_id")
		query, args := renderWhere(t, composite.FilteringPredicate([]relgraph.Row{
			{"id": int64(1), "tenant_id": int64(7)},
			{"id": int64(2), "tenant_id": int64(8)},
		}))
		assert.Equal(t,
			`SELECT * FROM "books" AS "t0" WHERE `+
				`(("t0"."author_id" = ?) AND ("t0"."tenant_id" = ?)) OR `+
				`(("t0"."author_id" = ?) AND ("t0"."tenant_id" = ?))`,
			query)
		assert.Equal(t, []any{int64(1), int64(7), int64(2), int64(8)}, args)
	})
}
