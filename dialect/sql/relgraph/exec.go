package relgraph

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"

	"github.com/rowandb/rowan"
	"github.com/rowandb/rowan/dialect"
	"github.com/rowandb/rowan/dialect/sql"
)

// AllRows resolves the relation and executes it, returning every
// matching row.
func AllRows(ctx context.Context, drv dialect.Driver, rel *Relation) ([]Row, error) {
	resolved, err := rel.resolve(ctx, drv)
	if err != nil {
		return nil, err
	}
	selector, err := resolved.Selector(drv.Dialect())
	if err != nil {
		return nil, err
	}
	query, args := selector.Query()
	var rows sql.Rows
	if err := drv.Query(ctx, query, args, &rows); err != nil {
		return nil, rowan.NewQueryError(rel.Table(), "all", err)
	}
	defer rows.Close()
	return scanRows(&rows)
}

// OneRow executes the relation and requires exactly one matching row.
// It returns a NotFoundError for zero rows and a NotSingularError for
// more than one.
func OneRow(ctx context.Context, drv dialect.Driver, rel *Relation) (Row, error) {
	rows, err := AllRows(ctx, drv, rel)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 1:
		return rows[0], nil
	case 0:
		return nil, rowan.NewNotFoundError(rel.Table())
	default:
		return nil, rowan.NewNotSingularErrorWithCount(rel.Table(), len(rows))
	}
}

// FirstRow executes the relation narrowed to a single row and returns
// it, or a NotFoundError when nothing matches.
func FirstRow(ctx context.Context, drv dialect.Driver, rel *Relation) (Row, error) {
	rows, err := AllRows(ctx, drv, rel.WithSingleRow())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, rowan.NewNotFoundError(rel.Table())
	}
	return rows[0], nil
}

// FixedRows returns a provider yielding a fixed set of rows, typically
// origin rows already in memory.
func FixedRows(rows ...Row) RowsProvider {
	return func(context.Context, dialect.Driver) ([]Row, error) {
		return rows, nil
	}
}

// RowsOf returns a provider that executes the relation on demand. It
// is how a relation becomes the origin of a further association
// resolution.
func RowsOf(rel *Relation) RowsProvider {
	return func(ctx context.Context, drv dialect.Driver) ([]Row, error) {
		return AllRows(ctx, drv, rel)
	}
}

// CachedRows behaves like AllRows but consults the cache first, keyed
// by the rendered query. Cache read and write failures fall back to
// the database; only query errors propagate.
func CachedRows(ctx context.Context, drv dialect.Driver, rel *Relation, cache rowan.Cache, ttl time.Duration) ([]Row, error) {
	resolved, err := rel.resolve(ctx, drv)
	if err != nil {
		return nil, err
	}
	selector, err := resolved.Selector(drv.Dialect())
	if err != nil {
		return nil, err
	}
	query, args := selector.Query()
	key := rowan.CacheKey{
		Dialect: drv.Dialect(),
		Query:   query,
		Args:    fmt.Sprintf("%v", args),
	}.String()
	if data, err := cache.Get(ctx, key); err == nil && data != nil {
		var rows []Row
		if err := msgpack.Unmarshal(data, &rows); err == nil {
			return rows, nil
		}
	}
	var raw sql.Rows
	if err := drv.Query(ctx, query, args, &raw); err != nil {
		return nil, rowan.NewQueryError(rel.Table(), "cached", err)
	}
	defer raw.Close()
	rows, err := scanRows(&raw)
	if err != nil {
		return nil, err
	}
	if data, err := msgpack.Marshal(rows); err == nil {
		_ = cache.Set(ctx, key, data, ttl)
	}
	return rows, nil
}

// LoadAll resolves and executes several associations against the same
// origin rows concurrently. Results are keyed by each association's
// destination key name; the first error cancels the rest.
func LoadAll(ctx context.Context, drv dialect.Driver, origins RowsProvider, assocs ...Association) (map[string][]Row, error) {
	results := make([][]Row, len(assocs))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range assocs {
		g.Go(func() error {
			rows, err := AllRows(gctx, drv, a.DestinationRelation(origins))
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	loaded := make(map[string][]Row, len(assocs))
	for i, a := range assocs {
		loaded[a.DestinationKeyName()] = results[i]
	}
	return loaded, nil
}

// scanRows drains a column scanner into generic rows. Values arrive as
// whatever the driver produced; byte slices are copied to strings so
// rows stay valid after the scanner advances.
func scanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []Row
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for i, c := range columns {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
			} else {
				row[c] = values[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
