package relgraph_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/rowandb/rowan"
	"github.com/rowandb/rowan/dialect"
	"github.com/rowandb/rowan/dialect/sql"
	"github.com/rowandb/rowan/dialect/sql/relgraph"
	"github.com/rowandb/rowan/naming"
)

var (
	aliceID = uuid.NewString()
	bobID   = uuid.NewString()
	carolID = uuid.NewString()
)

func openTestDB(t *testing.T) dialect.Driver {
	t.Helper()
	drv, err := sql.Open(dialect.SQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	drv.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { drv.Close() })

	ctx := context.Background()
	for _, stmt := range []string{
		`CREATE TABLE countries (id INTEGER PRIMARY KEY, code TEXT NOT NULL)`,
		`CREATE TABLE citizens (id TEXT PRIMARY KEY, name TEXT NOT NULL)`,
		`CREATE TABLE passports (id INTEGER PRIMARY KEY, country_id INTEGER NOT NULL, citizen_id TEXT NOT NULL)`,
	} {
		require.NoError(t, drv.Exec(ctx, stmt, []any{}, nil))
	}
	seed := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO countries (id, code) VALUES (?, ?)`, []any{1, "FR"}},
		{`INSERT INTO countries (id, code) VALUES (?, ?)`, []any{2, "DE"}},
		{`INSERT INTO citizens (id, name) VALUES (?, ?)`, []any{aliceID, "alice"}},
		{`INSERT INTO citizens (id, name) VALUES (?, ?)`, []any{bobID, "bob"}},
		{`INSERT INTO citizens (id, name) VALUES (?, ?)`, []any{carolID, "carol"}},
		{`INSERT INTO passports (id, country_id, citizen_id) VALUES (?, ?, ?)`, []any{10, 1, aliceID}},
		{`INSERT INTO passports (id, country_id, citizen_id) VALUES (?, ?, ?)`, []any{11, 1, bobID}},
		{`INSERT INTO passports (id, country_id, citizen_id) VALUES (?, ?, ?)`, []any{12, 2, carolID}},
	}
	for _, s := range seed {
		require.NoError(t, drv.Exec(ctx, s.query, s.args, nil))
	}
	return drv
}

func passportsOf() relgraph.Association {
	return relgraph.New(
		naming.Inflected("passports"),
		relgraph.OnColumns("country_id", "id"),
		relgraph.NewRelation("passports"),
		relgraph.ToMany,
	)
}

func citizensOf() relgraph.Association {
	holder := relgraph.New(
		naming.Inflected("citizens"),
		relgraph.OnColumns("id", "citizen_id"),
		relgraph.NewRelation("citizens"),
		relgraph.ToOne,
	)
	// The chain ends in a to-one step, but the association as a whole is
	// to-many from the origin's point of view, so it is exposed under a
	// fixed plural name.
	return holder.Through(passportsOf()).WithDestinationKey(naming.Fixed("citizens"))
}

func names(rows []relgraph.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r["name"].(string))
	}
	return out
}

func TestAllRows(t *testing.T) {
	drv := openTestDB(t)
	origins := relgraph.FixedRows(relgraph.Row{"id": int64(1)})

	rows, err := relgraph.AllRows(context.Background(), drv, citizensOf().DestinationRelation(origins))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, names(rows))

	// Citizen ids round-trip as the uuid strings they were seeded with.
	for _, row := range rows {
		_, err := uuid.Parse(row["id"].(string))
		assert.NoError(t, err)
	}
}

func TestAllRowsNoOrigins(t *testing.T) {
	drv := openTestDB(t)

	rows, err := relgraph.AllRows(context.Background(), drv, citizensOf().DestinationRelation(relgraph.FixedRows()))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRowsOf(t *testing.T) {
	drv := openTestDB(t)

	// Origins produced by another relation instead of literal rows.
	origins := relgraph.RowsOf(relgraph.NewRelation("countries").Filter(sql.FieldEQ("code", "DE")))
	rows, err := relgraph.AllRows(context.Background(), drv, citizensOf().DestinationRelation(origins))
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, names(rows))
}

func TestOneRow(t *testing.T) {
	drv := openTestDB(t)
	ctx := context.Background()
	origins := relgraph.FixedRows(relgraph.Row{"id": int64(1)})

	t.Run("Singular", func(t *testing.T) {
		rel := citizensOf().DestinationRelation(origins).Filter(sql.FieldEQ("name", "alice"))
		row, err := relgraph.OneRow(ctx, drv, rel)
		require.NoError(t, err)
		assert.Equal(t, "alice", row["name"])
	})

	t.Run("NotFound", func(t *testing.T) {
		rel := citizensOf().DestinationRelation(origins).Filter(sql.FieldEQ("name", "nobody"))
		_, err := relgraph.OneRow(ctx, drv, rel)
		assert.True(t, rowan.IsNotFound(err))
	})

	t.Run("NotSingular", func(t *testing.T) {
		rel := citizensOf().DestinationRelation(origins)
		_, err := relgraph.OneRow(ctx, drv, rel)
		require.True(t, rowan.IsNotSingular(err))
		var nse *rowan.NotSingularError
		require.ErrorAs(t, err, &nse)
		assert.Equal(t, 2, nse.Count())
	})
}

func TestFirstRow(t *testing.T) {
	drv := openTestDB(t)
	ctx := context.Background()
	origins := relgraph.FixedRows(relgraph.Row{"id": int64(1)})

	row, err := relgraph.FirstRow(ctx, drv, citizensOf().DestinationRelation(origins))
	require.NoError(t, err)
	assert.Contains(t, []string{"alice", "bob"}, row["name"])

	_, err = relgraph.FirstRow(ctx, drv, citizensOf().DestinationRelation(relgraph.FixedRows()))
	assert.True(t, rowan.IsNotFound(err))
}

func TestProviderErrorPropagates(t *testing.T) {
	drv := openTestDB(t)
	boom := errors.New("origins unavailable")
	origins := func(context.Context, dialect.Driver) ([]relgraph.Row, error) {
		return nil, boom
	}
	_, err := relgraph.AllRows(context.Background(), drv, citizensOf().DestinationRelation(origins))
	assert.ErrorIs(t, err, boom)
}

func TestLoadAll(t *testing.T) {
	drv := openTestDB(t)
	origins := relgraph.FixedRows(relgraph.Row{"id": int64(1)})

	loaded, err := relgraph.LoadAll(context.Background(), drv, origins, passportsOf(), citizensOf())
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Len(t, loaded["passports"], 2)
	assert.ElementsMatch(t, []string{"alice", "bob"}, names(loaded["citizens"]))
}

func TestLoadAllError(t *testing.T) {
	drv := openTestDB(t)
	origins := relgraph.FixedRows(relgraph.Row{"id": int64(1)})
	broken := relgraph.New(
		naming.Inflected("missing"),
		relgraph.OnColumns("country_id", "id"),
		relgraph.NewRelation("missing_table"),
		relgraph.ToMany,
	)
	_, err := relgraph.LoadAll(context.Background(), drv, origins, passportsOf(), broken)
	require.Error(t, err)
	assert.True(t, rowan.IsQueryError(err))
}

// memCache is an in-memory rowan.Cache for tests.
type memCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{items: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[key], nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string][]byte)
	return nil
}

func TestCachedRows(t *testing.T) {
	base := openTestDB(t)
	drv := sql.NewLogDriver(base, sql.WithLogger(slog.New(slog.DiscardHandler)))
	ctx := context.Background()
	cache := newMemCache()
	origins := relgraph.FixedRows(relgraph.Row{"id": int64(1)})
	rel := citizensOf().DestinationRelation(origins)

	rows, err := relgraph.CachedRows(ctx, drv, rel, cache, time.Minute)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, names(rows))
	assert.Equal(t, int64(1), drv.Stats().Queries)

	// The second call is served from the cache.
	again, err := relgraph.CachedRows(ctx, drv, rel, cache, time.Minute)
	require.NoError(t, err)
	assert.ElementsMatch(t, names(rows), names(again))
	assert.Equal(t, int64(1), drv.Stats().Queries)

	// After invalidation the database is consulted again.
	require.NoError(t, cache.Clear(ctx))
	_, err = relgraph.CachedRows(ctx, drv, rel, cache, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), drv.Stats().Queries)
}
